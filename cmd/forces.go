/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/Tudore/SU2/InputParameters"
	"github.com/Tudore/SU2/coloring"
	"github.com/Tudore/SU2/comm"
	"github.com/Tudore/SU2/geometry"
	"github.com/Tudore/SU2/solver"
)

type ModelForces struct {
	SurfaceFile string
	ICFile      string
	NWorkers    int
	NVar        int
	Profile     bool
}

// ForcesCmd represents the forces command
var ForcesCmd = &cobra.Command{
	Use:   "forces",
	Short: "Integrate surface forces and plan the parallel edge loop",
	Long: `
Reads a surface mesh and an input parameters file, integrates the
pressure, momentum and friction forces over the boundary markers with a
free stream initial state, and reports the coloring strategy selected
for the parallel edge loop.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mf := &ModelForces{}
		if mf.SurfaceFile, err = cmd.Flags().GetString("surfaceFile"); err != nil {
			panic(err)
		}
		if mf.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mf.NWorkers, _ = cmd.Flags().GetInt("workers")
		mf.NVar, _ = cmd.Flags().GetInt("nVar")
		mf.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processForcesInput(mf)
		RunForces(mf, ip)
	},
}

func processForcesInput(mf *ModelForces) (ip *InputParameters.Parameters) {
	var (
		err      error
		willExit bool
	)
	if len(mf.SurfaceFile) == 0 {
		err := fmt.Errorf("must supply a surface mesh file (-F, --surfaceFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if len(mf.ICFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "NACA 0012"
Regime: COMPRESSIBLE
AoA: 1.25
RefArea: 1.
Gamma: 1.4
GasConstant: 287.058
FreeStream:
    Pressure: 101325.
    Density: 1.2886
    Velocity: [170.1, 0., 0.]
Markers:
    - {Tag: airfoil, Kind: HEATFLUX, Monitoring: true}
    - {Tag: farfield, Kind: FARFIELD}
Monitoring:
    - {Tag: airfoil, Origin: [0.25, 0., 0.]}
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mf.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.Parameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func RunForces(mf *ModelForces, ip *InputParameters.Parameters) {
	var (
		err error
	)
	if mf.Profile {
		defer profile.Start().Stop()
	}
	ip.Print()

	mesh, err := geometry.ReadSurfaceMesh(mf.SurfaceFile)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Read mesh: %d nodes, %d edges, %d markers\n",
		mesh.NNode(), mesh.NEdge(), mesh.NMarker())

	nodes := freeStreamState(ip, mesh)
	s, err := solver.NewFVMFlowSolver(ip, mesh, nodes, comm.Serial{})
	if err != nil {
		panic(err)
	}
	s.PressureForces()
	s.MomentumForces()
	s.FrictionForces()
	s.PrintCoefficients()

	plan := coloring.NewPlan(mesh, ip.GetEdgeColorGroupSize(), mf.NVar, mf.NWorkers,
		comm.Serial{}, ip.GetCommLevel() == InputParameters.COMM_FULL)
	fmt.Printf("Edge loop strategy: %s, %d colors, efficiency %5.3f\n",
		plan.Strategy, plan.NColors(), plan.Efficiency)
}

// freeStreamState fills a node state with the free stream primitives,
// the usual cold start before any iteration has run
func freeStreamState(ip *InputParameters.Parameters, mesh *geometry.Mesh) (ns *solver.NodeState) {
	nVarGrad := mesh.NDim + 2
	ns = solver.NewNodeState(mesh.NNode(), mesh.NDim, nVarGrad)
	for i := 0; i < mesh.NNode(); i++ {
		ns.Press[i] = ip.FreeStream.Pressure
		ns.Dens[i] = ip.FreeStream.Density
		for iDim := 0; iDim < mesh.NDim && iDim < len(ip.FreeStream.Velocity); iDim++ {
			ns.Vel[i][iDim] = ip.FreeStream.Velocity[iDim]
		}
	}
	return
}

func init() {
	rootCmd.AddCommand(ForcesCmd)
	ForcesCmd.Flags().StringP("surfaceFile", "F", "", "Surface mesh file to read in YAML format")
	ForcesCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- AoA\n\t- Markers and Monitoring")
	ForcesCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "worker goroutines for the parallel edge loop")
	ForcesCmd.Flags().IntP("nVar", "v", 4, "number of conservative variables per edge flux")
	ForcesCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the run")
}
