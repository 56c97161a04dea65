package InputParameters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tudore/SU2/types"
)

var inputYAML = `
Title: "NACA 0012"
Regime: COMPRESSIBLE
AoA: 1.25
FreeStream:
    Pressure: 101325.
    Density: 1.2886
    Velocity: [170.1, 0., 0.]
CommLevel: FULL
Markers:
    - {Tag: airfoil, Kind: HEATFLUX, Monitoring: true}
    - {Tag: farfield, Kind: FARFIELD}
Monitoring:
    - {Tag: airfoil, Origin: [0.25, 0., 0.]}
`

func TestParameters_Parse(t *testing.T) {
	ip := &Parameters{}
	assert.NoError(t, ip.Parse([]byte(inputYAML)))

	assert.Equal(t, "NACA 0012", ip.Title)
	assert.Equal(t, COMPRESSIBLE, ip.GetRegime())
	assert.Equal(t, COMM_FULL, ip.GetCommLevel())
	assert.InDelta(t, 1.25*math.Pi/180, ip.AlphaRad(), 1.e-12)
	assert.InDelta(t, 0, ip.BetaRad(), 1.e-12)

	// Unset fields take the solver defaults
	assert.Equal(t, 1.4, ip.Gamma)
	assert.Equal(t, 0.72, ip.PrandtlLam)
	assert.Equal(t, 1.0, ip.RefArea)
	assert.Equal(t, 1.0, ip.RefLength)
	assert.Equal(t, 1.0, ip.HeatFluxRef)
	assert.Equal(t, DefaultEdgeColorGroupSize, ip.GetEdgeColorGroupSize())

	assert.Equal(t, types.BCHeatFlux, ip.MarkerKind(0))
	assert.Equal(t, types.BCFarfield, ip.MarkerKind(1))
	assert.Equal(t, 1, ip.NMarkerMonitoring())
	assert.InDelta(t, 0.25, ip.Monitoring[0].Origin[0], 1.e-12)
}

func TestParameters_EdgeColorGroupSize(t *testing.T) {
	// An explicit zero forces the reducer strategy and must survive
	// parsing; only a fully absent field takes the default
	ip := &Parameters{}
	assert.NoError(t, ip.Parse([]byte("EdgeColorGroupSize: 0")))
	assert.Equal(t, 0, ip.GetEdgeColorGroupSize())

	ip = &Parameters{}
	assert.NoError(t, ip.Parse([]byte("EdgeColorGroupSize: 128")))
	assert.Equal(t, 128, ip.GetEdgeColorGroupSize())

	ip = &Parameters{}
	assert.NoError(t, ip.Parse([]byte("Title: none")))
	assert.Equal(t, DefaultEdgeColorGroupSize, ip.GetEdgeColorGroupSize())
}

func TestParameters_Enums(t *testing.T) {
	ip := &Parameters{}
	assert.Equal(t, COMPRESSIBLE, ip.GetRegime())
	assert.Equal(t, COMM_FULL, ip.GetCommLevel()) // full unless disabled
	assert.Equal(t, DIMENSIONAL, ip.GetIncNonDim())

	ip.Regime = "INCOMPRESSIBLE"
	ip.CommLevel = "NONE"
	ip.IncNonDim = "REFERENCE_VALUES"
	assert.Equal(t, INCOMPRESSIBLE, ip.GetRegime())
	assert.Equal(t, COMM_NONE, ip.GetCommLevel())
	assert.Equal(t, REFERENCE_VALUES, ip.GetIncNonDim())
}

func TestParameters_MonitorIndex(t *testing.T) {
	ip := &Parameters{
		Monitoring: []MonitorSpec{
			{Tag: "wing"},
			{Tag: "tail"},
			{Tag: "wing"}, // duplicate: first match wins
		},
	}
	idx := ip.MonitorIndex()
	assert.Equal(t, 0, idx["wing"])
	assert.Equal(t, 1, idx["tail"])
	_, ok := idx["fuselage"]
	assert.False(t, ok)
}
