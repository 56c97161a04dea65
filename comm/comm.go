// Package comm provides the collective reduction primitives the solver
// treats as a black box. A Reducer combines scalars or fixed-size
// arrays across all participating ranks; every rank must call each
// collective, in the same order, or the participants deadlock.
package comm

// Reducer is the cross-rank combination contract. Implementations are
// synchronous: a call returns only once every rank has contributed.
type Reducer interface {
	Rank() int
	Size() int
	// SumFloat64 all-reduces a scalar by summation
	SumFloat64(x float64) float64
	// SumFloat64s all-reduces a fixed-size array by summation, in place.
	// All ranks must pass slices of the same length.
	SumFloat64s(xs []float64)
	// SumInt all-reduces an integer by summation
	SumInt(x int) int
	// MinFloat64 all-reduces a scalar by minimum
	MinFloat64(x float64) float64
}

// Serial is the single-process Reducer: every collective is an identity
type Serial struct{}

func (Serial) Rank() int                  { return 0 }
func (Serial) Size() int                  { return 1 }
func (Serial) SumFloat64(x float64) (y float64) { return x }
func (Serial) SumFloat64s(xs []float64)   {}
func (Serial) SumInt(x int) int           { return x }
func (Serial) MinFloat64(x float64) float64 { return x }
