package solver

// FlowState supplies the per-node primitive fields and gradients the
// force integration reads. The gradient/limiter kernels that populate
// it live elsewhere; this core only consumes the stored values.
type FlowState interface {
	Pressure(iPoint int) float64
	Density(iPoint int) float64
	Velocity(iPoint, iDim int) float64
	LaminarViscosity(iPoint int) float64
	ThermalConductivity(iPoint int) float64
	// GradientPrimitive is the stored primitive-variable gradient
	// d(prim[iVar])/d(x[iDim]). Variable layout follows the solver
	// regime: compressible stores temperature at index 0 and velocity
	// at 1..nDim, incompressible stores velocity at 1..nDim and
	// temperature at nDim+1.
	GradientPrimitive(iPoint, iVar, iDim int) float64
}

// NodeState is the slice-backed FlowState used by the CLI and tests
type NodeState struct {
	NDim     int
	Press    []float64
	Dens     []float64
	Vel      [][3]float64
	LamVisc  []float64
	ThermCond []float64
	// Grad is indexed [iPoint][iVar][iDim] with the regime-dependent
	// variable layout described on FlowState
	Grad [][][3]float64
}

// NewNodeState allocates zeroed fields for nPoint nodes and nVarGrad
// gradient variables
func NewNodeState(nPoint, nDim, nVarGrad int) (ns *NodeState) {
	ns = &NodeState{
		NDim:      nDim,
		Press:     make([]float64, nPoint),
		Dens:      make([]float64, nPoint),
		Vel:       make([][3]float64, nPoint),
		LamVisc:   make([]float64, nPoint),
		ThermCond: make([]float64, nPoint),
		Grad:      make([][][3]float64, nPoint),
	}
	for i := range ns.Grad {
		ns.Grad[i] = make([][3]float64, nVarGrad)
	}
	return
}

func (ns *NodeState) Pressure(iPoint int) float64            { return ns.Press[iPoint] }
func (ns *NodeState) Density(iPoint int) float64             { return ns.Dens[iPoint] }
func (ns *NodeState) Velocity(iPoint, iDim int) float64      { return ns.Vel[iPoint][iDim] }
func (ns *NodeState) LaminarViscosity(iPoint int) float64    { return ns.LamVisc[iPoint] }
func (ns *NodeState) ThermalConductivity(iPoint int) float64 { return ns.ThermCond[iPoint] }
func (ns *NodeState) GradientPrimitive(iPoint, iVar, iDim int) float64 {
	return ns.Grad[iPoint][iVar][iDim]
}
