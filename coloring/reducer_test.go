package coloring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeFluxes_SumIntoNodes(t *testing.T) {
	var (
		rnd   = rand.New(rand.NewSource(42))
		nNode = 200
		nVar  = 4
		edges [][2]int
	)
	// Random connectivity, including repeated node pairs
	for i := 0; i < 1000; i++ {
		a, b := rnd.Intn(nNode), rnd.Intn(nNode)
		if a == b {
			continue
		}
		edges = append(edges, [2]int{a, b})
	}

	ef := NewEdgeFluxes(edges, nNode, nVar)
	flux := make([]float64, nVar)
	for ie := range edges {
		for n := 0; n < nVar; n++ {
			flux[n] = rnd.NormFloat64()
		}
		ef.Set(ie, flux)
	}

	// Sequential reference scatter: +flux at the first node, -flux at
	// the second
	want := make([]float64, nNode*nVar)
	for ie, e := range edges {
		for n := 0; n < nVar; n++ {
			want[e[0]*nVar+n] += ef.Flux[ie*nVar+n]
			want[e[1]*nVar+n] -= ef.Flux[ie*nVar+n]
		}
	}

	got := make([]float64, nNode*nVar)
	assert.NoError(t, ef.SumIntoNodes(got, 8))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1.e-12)
	}
}

func TestEdgeFluxes_SetZeroAdd(t *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}}
	ef := NewEdgeFluxes(edges, 3, 2)
	ef.Set(0, []float64{1, 2})
	ef.Add(0, []float64{0.5, -2})
	assert.InDelta(t, 1.5, ef.Flux[0], 1.e-12)
	assert.InDelta(t, 0, ef.Flux[1], 1.e-12)
	ef.SetZero()
	assert.InDelta(t, 0, ef.Flux[0], 1.e-12)
}
