package comm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerial(t *testing.T) {
	var red Reducer = Serial{}
	assert.Equal(t, 0, red.Rank())
	assert.Equal(t, 1, red.Size())
	assert.Equal(t, 3.5, red.SumFloat64(3.5))
	assert.Equal(t, 7, red.SumInt(7))
	assert.Equal(t, -1.0, red.MinFloat64(-1.0))
	xs := []float64{1, 2}
	red.SumFloat64s(xs)
	assert.Equal(t, []float64{1, 2}, xs)
}

func TestGroup_Collectives(t *testing.T) {
	var (
		NP  = 4
		tol = 1.e-12
	)
	err := RunGroup(NP, func(r *Rank) error {
		assert.Equal(t, NP, r.Size())

		// Scalar sum: 1 + 2 + 3 + 4
		got := r.SumFloat64(float64(r.Rank() + 1))
		assert.InDelta(t, 10, got, tol)

		// Vector sum, in place on every rank
		xs := []float64{float64(r.Rank()), 1}
		r.SumFloat64s(xs)
		assert.InDelta(t, 6, xs[0], tol)
		assert.InDelta(t, 4, xs[1], tol)

		// Integer sum and minimum
		assert.Equal(t, 6, r.SumInt(r.Rank()))
		assert.InDelta(t, 0, r.MinFloat64(float64(r.Rank())), tol)

		// Back-to-back collectives must not interleave phases
		for i := 0; i < 100; i++ {
			assert.InDelta(t, float64(NP*i), r.SumFloat64(float64(i)), tol)
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestRunGroup_Error(t *testing.T) {
	err := RunGroup(1, func(r *Rank) error {
		return assert.AnError
	})
	assert.Error(t, err)
}
