package InputParameters

import (
	"fmt"
	"math"

	"github.com/ghodss/yaml"

	"github.com/Tudore/SU2/types"
)

// FlowRegime selects the governing equation set
type FlowRegime uint8

const (
	COMPRESSIBLE FlowRegime = iota
	INCOMPRESSIBLE
)

// IncNonDimMode selects how incompressible forces are non-dimensionalized
type IncNonDimMode uint8

const (
	DIMENSIONAL IncNonDimMode = iota
	INITIAL_VALUES
	REFERENCE_VALUES
)

// CommLevel gates the expensive diagnostic reductions
type CommLevel uint8

const (
	COMM_NONE CommLevel = iota
	COMM_FULL
)

const (
	// DefaultEdgeColorGroupSize applies when the input file does not
	// set the option
	DefaultEdgeColorGroupSize = 512
)

// MarkerSpec declares one boundary marker in the input file
type MarkerSpec struct {
	Tag        string `yaml:"Tag"`
	Kind       string `yaml:"Kind"` // Parsed via types.ParseBCName
	Monitoring bool   `yaml:"Monitoring"`
}

// MonitorSpec declares one monitored surface and its moment origin
type MonitorSpec struct {
	Tag    string     `yaml:"Tag"`
	Origin [3]float64 `yaml:"Origin"`
}

// FreeStreamSpec holds the far-field reference state
type FreeStreamSpec struct {
	Pressure    float64   `yaml:"Pressure"`
	Density     float64   `yaml:"Density"`
	Temperature float64   `yaml:"Temperature"`
	Velocity    []float64 `yaml:"Velocity"`
	MachMotion  float64   `yaml:"MachMotion"`
}

// Parameters obtained from the YAML input file
type Parameters struct {
	Title              string         `yaml:"Title"`
	Regime             string         `yaml:"Regime"`    // COMPRESSIBLE or INCOMPRESSIBLE
	AoA                float64        `yaml:"AoA"`       // Angle of attack (degrees)
	AoS                float64        `yaml:"AoS"`       // Sideslip angle (degrees)
	RefArea            float64        `yaml:"RefArea"`
	RefLength          float64        `yaml:"RefLength"`
	Gamma              float64        `yaml:"Gamma"`
	GasConstant        float64        `yaml:"GasConstant"`
	PrandtlLam         float64        `yaml:"PrandtlLam"`
	HeatFluxRef        float64        `yaml:"HeatFluxRef"`
	IncNonDim          string         `yaml:"IncNonDim"` // DIMENSIONAL, INITIAL_VALUES, REFERENCE_VALUES
	IncDensityRef      float64        `yaml:"IncDensityRef"`
	IncVelocityRef     float64        `yaml:"IncVelocityRef"`
	FreeStream         FreeStreamSpec `yaml:"FreeStream"`
	DynamicGrid        bool           `yaml:"DynamicGrid"`
	QCR                bool           `yaml:"QCR"`
	Axisymmetric       bool           `yaml:"Axisymmetric"`
	EnergyEquation     bool           `yaml:"EnergyEquation"`
	CommLevel          string         `yaml:"CommLevel"` // NONE or FULL
	EdgeColorGroupSize *int           `yaml:"EdgeColorGroupSize"` // Zero forces the reducer strategy
	Markers            []MarkerSpec   `yaml:"Markers"`
	Monitoring         []MonitorSpec  `yaml:"Monitoring"`
}

func (ip *Parameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	ip.applyDefaults()
	return nil
}

func (ip *Parameters) applyDefaults() {
	if ip.Gamma == 0 {
		ip.Gamma = 1.4
	}
	if ip.PrandtlLam == 0 {
		ip.PrandtlLam = 0.72
	}
	if ip.RefArea == 0 {
		ip.RefArea = 1
	}
	if ip.RefLength == 0 {
		ip.RefLength = 1
	}
	if ip.HeatFluxRef == 0 {
		ip.HeatFluxRef = 1
	}
}

// GetRegime parses the Regime field, compressible when unset
func (ip *Parameters) GetRegime() FlowRegime {
	if ip.Regime == "INCOMPRESSIBLE" {
		return INCOMPRESSIBLE
	}
	return COMPRESSIBLE
}

// GetIncNonDim parses the IncNonDim field, dimensional when unset
func (ip *Parameters) GetIncNonDim() IncNonDimMode {
	switch ip.IncNonDim {
	case "INITIAL_VALUES":
		return INITIAL_VALUES
	case "REFERENCE_VALUES":
		return REFERENCE_VALUES
	}
	return DIMENSIONAL
}

// GetEdgeColorGroupSize returns the configured edge coloring group size.
// An explicit zero forces the reducer strategy; an absent field takes
// the default.
func (ip *Parameters) GetEdgeColorGroupSize() int {
	if ip.EdgeColorGroupSize == nil {
		return DefaultEdgeColorGroupSize
	}
	return *ip.EdgeColorGroupSize
}

// GetCommLevel parses the CommLevel field, full when unset
func (ip *Parameters) GetCommLevel() CommLevel {
	if ip.CommLevel == "NONE" {
		return COMM_NONE
	}
	return COMM_FULL
}

// AlphaRad and BetaRad return the wind-axis rotation angles in radians
func (ip *Parameters) AlphaRad() float64 { return ip.AoA * math.Pi / 180. }
func (ip *Parameters) BetaRad() float64  { return ip.AoS * math.Pi / 180. }

// MarkerKind returns the parsed BC kind of marker i
func (ip *Parameters) MarkerKind(i int) types.BCType {
	return types.ParseBCName(ip.Markers[i].Kind)
}

// NMarkerMonitoring is the number of monitored surfaces
func (ip *Parameters) NMarkerMonitoring() int { return len(ip.Monitoring) }

// MonitorIndex builds the tag to monitored-surface index map once at setup.
// Tags with no matching marker simply never receive contributions.
func (ip *Parameters) MonitorIndex() map[string]int {
	m := make(map[string]int, len(ip.Monitoring))
	for i, mon := range ip.Monitoring {
		if _, exists := m[mon.Tag]; !exists { // first match wins
			m[mon.Tag] = i
		}
	}
	return m
}

func (ip *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Regime\n", ip.Regime)
	fmt.Printf("%8.5f\t\t= AoA\n", ip.AoA)
	fmt.Printf("%8.5f\t\t= AoS\n", ip.AoS)
	fmt.Printf("%8.5f\t\t= RefArea\n", ip.RefArea)
	fmt.Printf("%8.5f\t\t= RefLength\n", ip.RefLength)
	fmt.Printf("[%d]\t\t\t= EdgeColorGroupSize\n", ip.GetEdgeColorGroupSize())
	for _, mk := range ip.Markers {
		fmt.Printf("Marker[%s] = %s, monitoring: %v\n", mk.Tag, mk.Kind, mk.Monitoring)
	}
	for _, mon := range ip.Monitoring {
		fmt.Printf("Monitored[%s] origin = %v\n", mon.Tag, mon.Origin)
	}
}
