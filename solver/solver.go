package solver

import (
	"fmt"

	"github.com/Tudore/SU2/InputParameters"
	"github.com/Tudore/SU2/comm"
	"github.com/Tudore/SU2/geometry"
)

/*
	FVMFlowSolver is the force/coefficient integration core of the flow
	solver. It owns the coefficient accumulators at three granularities:
		- per marker (InvCoeff, MntCoeff, ViscCoeff)
		- per monitored surface (Surface*Coeff, SurfaceCoeff)
		- global totals (AllBound*Coeff, TotalCoeff)
	plus the per-vertex arrays exported for visualization (CPressure,
	HeatFlux, YPlus, CSkinFriction). One instance per solver; all state
	is explicit and process-local, combined across processes only
	through the Reducer.
*/
type FVMFlowSolver struct {
	Config *InputParameters.Parameters
	Mesh   *geometry.Mesh
	Nodes  FlowState
	Red    comm.Reducer

	NDim, NMarker, NMarkerMon int
	Regime                    InputParameters.FlowRegime

	// Free-stream reference state
	PressureInf, DensityInf, TemperatureInf float64
	VelocityInf                             []float64
	Gamma, GasConstant                      float64

	// Non-dimensional aerodynamic coefficients
	InvCoeff, MntCoeff, ViscCoeff                    AeroCoeffsArray // Per marker
	SurfaceInvCoeff, SurfaceMntCoeff                 AeroCoeffsArray // Per monitored surface
	SurfaceViscCoeff, SurfaceCoeff                   AeroCoeffsArray
	AllBoundInvCoeff, AllBoundMntCoeff               AeroCoeffs
	AllBoundViscCoeff, TotalCoeff                    AeroCoeffs

	// Near-field pressure objective
	CNearFieldOFInv      []float64
	AllBoundCNearFieldOF float64
	TotalCNearFieldOF    float64

	// Heat flux accumulators
	HFVisc, MaxHFVisc               []float64 // Per marker
	SurfaceHFVisc, SurfaceMaxHFVisc []float64 // Per monitored surface
	AllBoundHFVisc, AllBoundMaxHFVisc float64
	TotalHeat, TotalMaxHeat           float64

	// Per-marker, per-vertex outputs for visualization. Values are
	// recorded at halo nodes too; only force sums exclude halos.
	CPressure     [][]float64
	HeatFlux      [][]float64
	YPlus         [][]float64
	CSkinFriction [][][]float64 // Indexed [marker][dim][vertex]

	// Monitored-surface tag lookup, built once at setup
	monitorIndex map[string]int
}

// NewFVMFlowSolver allocates the accumulator state for the given mesh
// and configuration. Sizes are fixed here for the solver's lifetime.
func NewFVMFlowSolver(cfg *InputParameters.Parameters, mesh *geometry.Mesh,
	nodes FlowState, red comm.Reducer) (s *FVMFlowSolver, err error) {

	if err = mesh.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Markers) != mesh.NMarker() {
		return nil, fmt.Errorf("config declares %d markers, mesh has %d",
			len(cfg.Markers), mesh.NMarker())
	}
	s = &FVMFlowSolver{
		Config:         cfg,
		Mesh:           mesh,
		Nodes:          nodes,
		Red:            red,
		NDim:           mesh.NDim,
		NMarker:        mesh.NMarker(),
		NMarkerMon:     cfg.NMarkerMonitoring(),
		Regime:         cfg.GetRegime(),
		PressureInf:    cfg.FreeStream.Pressure,
		DensityInf:     cfg.FreeStream.Density,
		TemperatureInf: cfg.FreeStream.Temperature,
		VelocityInf:    append([]float64{}, cfg.FreeStream.Velocity...),
		Gamma:          cfg.Gamma,
		GasConstant:    cfg.GasConstant,
		monitorIndex:   cfg.MonitorIndex(),
	}
	if len(s.VelocityInf) < s.NDim {
		s.VelocityInf = append(s.VelocityInf, make([]float64, s.NDim-len(s.VelocityInf))...)
	}

	s.InvCoeff.Allocate(s.NMarker)
	s.MntCoeff.Allocate(s.NMarker)
	s.ViscCoeff.Allocate(s.NMarker)
	s.SurfaceInvCoeff.Allocate(s.NMarkerMon)
	s.SurfaceMntCoeff.Allocate(s.NMarkerMon)
	s.SurfaceViscCoeff.Allocate(s.NMarkerMon)
	s.SurfaceCoeff.Allocate(s.NMarkerMon)

	s.CNearFieldOFInv = make([]float64, s.NMarker)
	s.HFVisc = make([]float64, s.NMarker)
	s.MaxHFVisc = make([]float64, s.NMarker)
	s.SurfaceHFVisc = make([]float64, s.NMarkerMon)
	s.SurfaceMaxHFVisc = make([]float64, s.NMarkerMon)

	s.CPressure = make([][]float64, s.NMarker)
	s.HeatFlux = make([][]float64, s.NMarker)
	s.YPlus = make([][]float64, s.NMarker)
	s.CSkinFriction = make([][][]float64, s.NMarker)
	for iMarker := 0; iMarker < s.NMarker; iMarker++ {
		nVertex := mesh.NVertex(iMarker)
		s.CPressure[iMarker] = make([]float64, nVertex)
		s.HeatFlux[iMarker] = make([]float64, nVertex)
		s.YPlus[iMarker] = make([]float64, nVertex)
		s.CSkinFriction[iMarker] = make([][]float64, s.NDim)
		for iDim := 0; iDim < s.NDim; iDim++ {
			s.CSkinFriction[iMarker][iDim] = make([]float64, nVertex)
		}
	}
	return
}

// MonitorIndexOf resolves a marker tag to its monitored-surface slot,
// returning -1 when the tag is not monitored
func (s *FVMFlowSolver) MonitorIndexOf(tag string) int {
	if i, ok := s.monitorIndex[tag]; ok {
		return i
	}
	return -1
}

// PrintCoefficients writes the coefficient summary in the solver's
// fixed-width table format
func (s *FVMFlowSolver) PrintCoefficients() {
	format := "%11.4e"
	fmt.Printf("%-16s         CD         CL        CSF        CMx        CMy        CMz\n", "surface")
	for iMon, mon := range s.Config.Monitoring {
		fmt.Printf("%-16s", mon.Tag)
		fmt.Printf(format, s.SurfaceCoeff.CD[iMon])
		fmt.Printf(format, s.SurfaceCoeff.CL[iMon])
		fmt.Printf(format, s.SurfaceCoeff.CSF[iMon])
		fmt.Printf(format, s.SurfaceCoeff.CMx[iMon])
		fmt.Printf(format, s.SurfaceCoeff.CMy[iMon])
		fmt.Printf(format, s.SurfaceCoeff.CMz[iMon])
		fmt.Printf("\n")
	}
	fmt.Printf("%-16s", "total")
	fmt.Printf(format, s.TotalCoeff.CD)
	fmt.Printf(format, s.TotalCoeff.CL)
	fmt.Printf(format, s.TotalCoeff.CSF)
	fmt.Printf(format, s.TotalCoeff.CMx)
	fmt.Printf(format, s.TotalCoeff.CMy)
	fmt.Printf(format, s.TotalCoeff.CMz)
	fmt.Printf("\n")
	fmt.Printf("CEff = %11.4e, CT = %11.4e, CQ = %11.4e, CMerit = %11.4e\n",
		s.TotalCoeff.CEff, s.TotalCoeff.CT, s.TotalCoeff.CQ, s.TotalCoeff.CMerit)
	fmt.Printf("Total heat = %11.4e, max heat = %11.4e\n", s.TotalHeat, s.TotalMaxHeat)
}
