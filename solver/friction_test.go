package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tudore/SU2/comm"
	"github.com/Tudore/SU2/geometry"
)

// A flat wall under pure shear: one boundary vertex at the origin with
// its interior neighbor a wall distance 0.1 above it, du/dy = 2 and
// mu = 0.5, so tau_xy = 1 and the traction on the outward (0,-1)
// normal is (-1, 0).
func shearWallMesh() *geometry.Mesh {
	return &geometry.Mesh{
		NDim: 2,
		Coords: [][3]float64{
			{0, 0, 0},
			{0, 0.1, 0},
			{1, 0, 0},
			{1, 0.1, 0},
		},
		Markers: []geometry.Marker{
			{Tag: "wall", Vertices: []geometry.Vertex{
				{Node: 0, NormalNeighbor: 1, Normal: [3]float64{0, -1, 0}},
			}},
		},
		Edges: [][2]int{{0, 1}, {2, 3}},
	}
}

func TestFrictionForces_Shear(t *testing.T) {
	var (
		mesh = shearWallMesh()
		cfg  = squareWallConfig()
		ns   = freeStreamNodes(mesh, cfg)
		tol  = 1.e-12
	)
	ns.LamVisc[0] = 0.5
	ns.Grad[0][1][1] = 2  // du/dy
	ns.Grad[0][0][1] = -3 // dT/dy (compressible layout: T at index 0)

	s, err := NewFVMFlowSolver(cfg, mesh, ns, comm.Serial{})
	assert.NoError(t, err)
	s.PressureForces() // zero with the free stream state; assigns the totals
	s.FrictionForces()

	// dynPressure = 0.5 * rho * |V|^2 * RefArea = 0.5
	assert.InDelta(t, -2, s.CSkinFriction[0][0][0], tol)
	assert.InDelta(t, 0, s.CSkinFriction[0][1][0], tol)

	// u_tau = sqrt(tau_w / rho) = 1, y+ = 0.1 * 1 / (0.5 / 1)
	assert.InDelta(t, 0.2, s.YPlus[0][0], tol)

	// q = -k dT/dn with k = cp mu / Pr
	var (
		cp = (cfg.Gamma / (cfg.Gamma - 1)) * cfg.GasConstant
		k  = cp * 0.5 / cfg.PrandtlLam
		q  = 3 * k
	)
	assert.InDelta(t, q, s.HeatFlux[0][0], tol*q)
	assert.InDelta(t, q, s.TotalHeat, tol*q)
	assert.InDelta(t, q, s.TotalMaxHeat, tol*q)

	// Traction force (-1,0) * area * factor = (-2, 0)
	assert.InDelta(t, -2, s.TotalCoeff.CD, tol)
	assert.InDelta(t, 0, s.TotalCoeff.CL, tol)
	assert.InDelta(t, -2, s.ViscCoeff.CD[0], tol)
	assert.InDelta(t, -2, s.SurfaceCoeff.CD[0], tol)
}

func TestFrictionForces_MaxHeatNorm(t *testing.T) {
	var (
		mesh = shearWallMesh()
		cfg  = squareWallConfig()
	)
	mesh.Markers[0].Vertices = append(mesh.Markers[0].Vertices,
		geometry.Vertex{Node: 2, NormalNeighbor: 3, Normal: [3]float64{0, -1, 0}})

	ns := freeStreamNodes(mesh, cfg)
	ns.LamVisc[0], ns.LamVisc[2] = 0.5, 0.5
	ns.Grad[0][0][1] = -3
	ns.Grad[2][0][1] = -6

	s, err := NewFVMFlowSolver(cfg, mesh, ns, comm.Serial{})
	assert.NoError(t, err)
	s.PressureForces()
	s.FrictionForces()

	var (
		cp = (cfg.Gamma / (cfg.Gamma - 1)) * cfg.GasConstant
		k  = cp * 0.5 / cfg.PrandtlLam
		q1 = 3 * k
		q2 = 6 * k
	)
	// Increasing-norm aggregate: the 8th powers add, the root comes last
	want := math.Pow(math.Pow(q1, 8)+math.Pow(q2, 8), 1.0/8.0)
	assert.InDelta(t, want, s.TotalMaxHeat, 1.e-9*want)
	assert.InDelta(t, q1+q2, s.TotalHeat, 1.e-9*(q1+q2))
}

func TestStressTensor_QCR(t *testing.T) {
	var (
		s       = &FVMFlowSolver{NDim: 2}
		gradVel [3][3]float64
		tol     = 1.e-12
	)
	gradVel[0][1] = 2 // du/dy, pure shear

	tau := s.stressTensor(gradVel, 0.5, false)
	assert.InDelta(t, 0, tau[0][0], tol)
	assert.InDelta(t, 1, tau[0][1], tol)
	assert.InDelta(t, 1, tau[1][0], tol)
	assert.InDelta(t, 0, tau[1][1], tol)

	// QCR2000: O_01 = 1, normal stresses pick up -+0.3 * 2
	tau = s.stressTensor(gradVel, 0.5, true)
	assert.InDelta(t, -0.6, tau[0][0], tol)
	assert.InDelta(t, 1, tau[0][1], tol)
	assert.InDelta(t, 0.6, tau[1][1], tol)
}
