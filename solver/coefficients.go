package solver

// EPS guards the derived-ratio divisions (CEff, CMerit) against a zero
// denominator. Values near the EPS floor are numerically meaningless,
// not an error signal.
const EPS = 1e-16

// AeroCoeffs is the fixed schema of non-dimensional force, moment and
// performance coefficients tracked for a single entity (one surface or
// the grand total). CEff and CMerit are derived quantities, recomputed
// from CL/CD and CT/CQ whenever those change.
type AeroCoeffs struct {
	CD, CL, CSF, CEff      float64 // Drag, lift, side force, efficiency
	CFx, CFy, CFz          float64 // Force components
	CMx, CMy, CMz          float64 // Moment components
	CoPx, CoPy, CoPz       float64 // Center of pressure components
	CT, CQ, CMerit         float64 // Thrust, torque, figure of merit
}

func (c *AeroCoeffs) SetZero() { *c = AeroCoeffs{} }

// AeroCoeffsArray holds the same 16 coefficients with one slot per
// entity (per marker, or per monitored surface). Allocated once at
// solver setup and never resized.
type AeroCoeffsArray struct {
	CD, CL, CSF, CEff      []float64
	CFx, CFy, CFz          []float64
	CMx, CMy, CMz          []float64
	CoPx, CoPy, CoPz       []float64
	CT, CQ, CMerit         []float64
	size                   int
}

// Allocate establishes n zero-initialized slots
func (c *AeroCoeffsArray) Allocate(n int) {
	c.size = n
	c.CD = make([]float64, n)
	c.CL = make([]float64, n)
	c.CSF = make([]float64, n)
	c.CEff = make([]float64, n)
	c.CFx = make([]float64, n)
	c.CFy = make([]float64, n)
	c.CFz = make([]float64, n)
	c.CMx = make([]float64, n)
	c.CMy = make([]float64, n)
	c.CMz = make([]float64, n)
	c.CoPx = make([]float64, n)
	c.CoPy = make([]float64, n)
	c.CoPz = make([]float64, n)
	c.CT = make([]float64, n)
	c.CQ = make([]float64, n)
	c.CMerit = make([]float64, n)
}

func (c *AeroCoeffsArray) Size() int { return c.size }

// SetZero resets slot i
func (c *AeroCoeffsArray) SetZero(i int) {
	c.CD[i], c.CL[i], c.CSF[i], c.CEff[i] = 0, 0, 0, 0
	c.CFx[i], c.CFy[i], c.CFz[i], c.CMx[i] = 0, 0, 0, 0
	c.CMy[i], c.CMz[i], c.CoPx[i], c.CoPy[i] = 0, 0, 0, 0
	c.CoPz[i], c.CT[i], c.CQ[i], c.CMerit[i] = 0, 0, 0, 0
}

// SetZeroAll resets every slot
func (c *AeroCoeffsArray) SetZeroAll() {
	for i := 0; i < c.size; i++ {
		c.SetZero(i)
	}
}

// At copies slot i into a scalar AeroCoeffs value
func (c *AeroCoeffsArray) At(i int) AeroCoeffs {
	return AeroCoeffs{
		CD: c.CD[i], CL: c.CL[i], CSF: c.CSF[i], CEff: c.CEff[i],
		CFx: c.CFx[i], CFy: c.CFy[i], CFz: c.CFz[i],
		CMx: c.CMx[i], CMy: c.CMy[i], CMz: c.CMz[i],
		CoPx: c.CoPx[i], CoPy: c.CoPy[i], CoPz: c.CoPz[i],
		CT: c.CT[i], CQ: c.CQ[i], CMerit: c.CMerit[i],
	}
}
