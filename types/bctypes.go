package types

import "strings"

// BCType represents the boundary condition kind assigned to a marker
type BCType uint16

const (
	// BCNone indicates no boundary condition (interior face)
	BCNone BCType = iota

	// Flow boundary conditions
	BCEulerWall // Inviscid/slip wall
	BCInlet     // Inlet flow
	BCOutlet    // Outlet flow
	BCSymmetry  // Symmetry plane
	BCFarfield  // Far-field boundary
	BCNearfield // Near-field pressure matching boundary

	// Viscous wall boundary conditions
	BCHeatFlux   // Prescribed heat flux wall
	BCIsothermal // Fixed temperature wall
	BCCHTWall    // Conjugate heat transfer wall interface

	// Engine / actuator disk boundaries
	BCActDiskInlet  // Actuator disk upstream face
	BCActDiskOutlet // Actuator disk downstream face
	BCEngineInflow  // Engine inflow
	BCEngineExhaust // Engine exhaust

	// Special boundary conditions
	BCMovingWall // Moving wall boundary
	BCCustom     // User defined
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:          "None",
		BCEulerWall:     "EulerWall",
		BCInlet:         "Inlet",
		BCOutlet:        "Outlet",
		BCSymmetry:      "Symmetry",
		BCFarfield:      "Farfield",
		BCNearfield:     "Nearfield",
		BCHeatFlux:      "HeatFlux",
		BCIsothermal:    "Isothermal",
		BCCHTWall:       "CHTWallInterface",
		BCActDiskInlet:  "ActDiskInlet",
		BCActDiskOutlet: "ActDiskOutlet",
		BCEngineInflow:  "EngineInflow",
		BCEngineExhaust: "EngineExhaust",
		BCMovingWall:    "MovingWall",
		BCCustom:        "Custom",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// SolidWall reports whether the marker is any kind of wall, viscous or not
func (bc BCType) SolidWall() bool {
	switch bc {
	case BCEulerWall, BCHeatFlux, BCIsothermal, BCCHTWall, BCMovingWall:
		return true
	}
	return false
}

// ViscousWall reports whether the marker participates in the viscous
// (friction/heat) force integration
func (bc BCType) ViscousWall() bool {
	switch bc {
	case BCHeatFlux, BCIsothermal, BCCHTWall:
		return true
	}
	return false
}

// FlowThrough reports whether the marker is an inlet/outlet type boundary
// that contributes momentum flux forces
func (bc BCType) FlowThrough() bool {
	switch bc {
	case BCInlet, BCOutlet, BCActDiskInlet, BCActDiskOutlet,
		BCEngineInflow, BCEngineExhaust:
		return true
	}
	return false
}

// PressureForceSurface reports whether the marker is integrated by the
// inviscid pressure force pass
func (bc BCType) PressureForceSurface() bool {
	return bc.SolidWall() || bc == BCNearfield || bc.FlowThrough()
}

// BCNameMap provides a mapping from common boundary condition names to BCType
// Keys are lowercase for case-insensitive matching
var BCNameMap = map[string]BCType{
	"euler_wall":     BCEulerWall,
	"wall":           BCEulerWall,
	"slip":           BCEulerWall,
	"inlet":          BCInlet,
	"inflow":         BCInlet,
	"outlet":         BCOutlet,
	"outflow":        BCOutlet,
	"symmetry":       BCSymmetry,
	"farfield":       BCFarfield,
	"far":            BCFarfield,
	"nearfield":      BCNearfield,
	"heat_flux":      BCHeatFlux,
	"heatflux":       BCHeatFlux,
	"isothermal":     BCIsothermal,
	"cht_wall":       BCCHTWall,
	"actdisk_inlet":  BCActDiskInlet,
	"actdisk_outlet": BCActDiskOutlet,
	"engine_inflow":  BCEngineInflow,
	"engine_exhaust": BCEngineExhaust,
	"moving_wall":    BCMovingWall,
}

// ParseBCName converts a boundary condition name string to BCType
// The matching is case-insensitive and trims whitespace
func ParseBCName(name string) BCType {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if bcType, ok := BCNameMap[lowerName]; ok {
		return bcType
	}
	return BCCustom
}
