package coloring

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tudore/SU2/comm"
	"github.com/Tudore/SU2/geometry"
)

// pathMesh is a 1D chain: nodes 0..n, edges (i, i+1). Adjacent edges
// share a node, so with groupSize 1 the greedy coloring alternates
// between exactly two colors.
func pathMesh(nEdge int) *geometry.Mesh {
	m := &geometry.Mesh{NDim: 2, Coords: make([][3]float64, nEdge+1)}
	for i := 0; i < nEdge; i++ {
		m.Edges = append(m.Edges, [2]int{i, i + 1})
	}
	return m
}

func TestColoring_Path(t *testing.T) {
	var (
		nEdge = 100
		mesh  = pathMesh(nEdge)
	)
	p := NewPlan(mesh, 1, 4, 4, comm.Serial{}, false)
	assert.Equal(t, Colored, p.Strategy)
	assert.Equal(t, 2, p.NColors())
	assert.InDelta(t, 1.0, p.Efficiency, 1.e-12)
	assert.Nil(t, p.EdgeFluxes)

	// Every edge appears exactly once across the color groups
	seen := make([]int, nEdge)
	for _, ie := range p.EdgeSet() {
		seen[ie]++
	}
	for ie := 0; ie < nEdge; ie++ {
		assert.Equal(t, 1, seen[ie])
	}

	// With groupSize 1 a chunk is a single edge, so within each color
	// no two edges share a node
	for _, g := range p.Groups {
		nodes := make(map[int]bool)
		for _, ie := range g.Edges {
			e := mesh.Edges[ie]
			assert.False(t, nodes[e[0]] || nodes[e[1]])
			nodes[e[0]], nodes[e[1]] = true, true
		}
	}
}

func TestColoring_ChunkDisjointness(t *testing.T) {
	// Conflict freedom of a groupSize > 1 coloring holds at chunk
	// granularity: within one color, two different chunks never share a
	// node, though the edges inside a chunk do on a path mesh
	var (
		mesh = pathMesh(256)
		p    = NewPlan(mesh, 64, 4, 4, comm.Serial{}, false)
	)
	assert.Equal(t, Colored, p.Strategy)
	for _, g := range p.Groups {
		owner := make(map[int]int) // node -> owning chunk
		for i, ie := range g.Edges {
			chunk := i / g.ChunkSize
			e := mesh.Edges[ie]
			for _, node := range []int{e[0], e[1]} {
				if prev, seen := owner[node]; seen {
					assert.Equal(t, prev, chunk)
				} else {
					owner[node] = chunk
				}
			}
		}
	}
}

func TestChunkAlignedRanges(t *testing.T) {
	cases := []struct{ n, chunk, workers int }{
		{256, 64, 4},
		{100, 7, 3},
		{5, 2, 8},
		{0, 4, 4},
		{128, 1, 4},
		{130, 64, 2},
	}
	for _, c := range cases {
		ranges := chunkAlignedRanges(c.n, c.chunk, c.workers)
		next := 0
		for _, r := range ranges {
			// Ranges tile [0, n) in order and only split on chunk
			// boundaries, so no chunk straddles two workers
			assert.Equal(t, next, r[0])
			assert.True(t, r[1] > r[0])
			if r[1] != c.n {
				assert.Equal(t, 0, r[1]%c.chunk)
			}
			next = r[1]
		}
		assert.Equal(t, c.n, next)
	}
}

func TestForEachEdge_WorkerNodeIsolation(t *testing.T) {
	// The worker split of a color group must not hand two edges sharing
	// a node to different goroutines: replay the scheduling and check
	// that the node sets touched by different workers are disjoint
	var (
		mesh = pathMesh(256)
		p    = NewPlan(mesh, 64, 4, 4, comm.Serial{}, false)
	)
	for _, g := range p.Groups {
		owner := make(map[int]int) // node -> worker
		for w, r := range chunkAlignedRanges(len(g.Edges), g.ChunkSize, 4) {
			for i := r[0]; i < r[1]; i++ {
				e := mesh.Edges[g.Edges[i]]
				for _, node := range []int{e[0], e[1]} {
					if prev, seen := owner[node]; seen {
						assert.Equal(t, prev, w)
					} else {
						owner[node] = w
					}
				}
			}
		}
	}
}

func TestColoring_LowEfficiencyFallsBack(t *testing.T) {
	// Four disjoint edges land in the first color; two more edges both
	// touching node 1 each need their own color. Efficiency
	// 6/(3*4) = 0.5 is under the threshold, so the plan reverts to the
	// reducer with a single natural color.
	mesh := &geometry.Mesh{
		NDim:   2,
		Coords: make([][3]float64, 10),
		Edges: [][2]int{
			{1, 2}, {3, 4}, {5, 6}, {7, 8},
			{1, 3},
			{1, 5},
		},
	}
	p := NewPlan(mesh, 1, 4, 4, comm.Serial{}, false)
	assert.Equal(t, Reducer, p.Strategy)
	assert.Equal(t, 1, p.NColors())
	assert.Equal(t, len(mesh.Edges), len(p.Groups[0].Edges))
	assert.NotNil(t, p.EdgeFluxes)
	assert.True(t, p.Efficiency < ColoringEffThresh)
}

func TestColoring_GroupSizeZeroForcesReducer(t *testing.T) {
	mesh := pathMesh(50)
	p := NewPlan(mesh, 0, 4, 4, comm.Serial{}, false)
	assert.Equal(t, Reducer, p.Strategy)
	assert.Equal(t, 1, p.NColors())
	assert.InDelta(t, 1.0, p.Efficiency, 1.e-12) // never measured
	assert.NotNil(t, p.EdgeFluxes)
}

func TestColoring_GroupGranularity(t *testing.T) {
	// With groupSize 2 the path chain claims pairs of consecutive edges;
	// consecutive pairs conflict, so the coloring still needs two colors
	mesh := pathMesh(100)
	p := NewPlan(mesh, 2, 4, 4, comm.Serial{}, false)
	assert.Equal(t, Colored, p.Strategy)
	assert.Equal(t, 2, p.NColors())
	assert.Equal(t, 100, len(p.EdgeSet()))
	for _, g := range p.Groups {
		assert.Equal(t, 2, g.ChunkSize)
	}
}

func TestForEachEdge(t *testing.T) {
	var (
		mesh  = pathMesh(257)
		p     = NewPlan(mesh, 1, 4, 4, comm.Serial{}, false)
		count = make([]int32, mesh.NEdge())
	)
	err := p.ForEachEdge(4, func(iEdge int) {
		atomic.AddInt32(&count[iEdge], 1)
	})
	assert.NoError(t, err)
	for ie := range count {
		assert.Equal(t, int32(1), count[ie])
	}
}

func TestStaticChunkSize(t *testing.T) {
	assert.Equal(t, 250, StaticChunkSize(1000, 4, MaxChunkSize))
	assert.Equal(t, MaxChunkSize, StaticChunkSize(1000000, 4, MaxChunkSize))
	assert.Equal(t, 1, StaticChunkSize(0, 4, MaxChunkSize))
	assert.Equal(t, 3, StaticChunkSize(3, 0, MaxChunkSize)) // degenerate worker count
}

func TestColoring_RankDiagnostics(t *testing.T) {
	// The diagnostic reduction must be entered by every rank even when
	// only some of them fall back to the reducer
	err := comm.RunGroup(2, func(r *comm.Rank) error {
		var mesh *geometry.Mesh
		if r.Rank() == 0 {
			mesh = pathMesh(100) // colors well
		} else {
			mesh = &geometry.Mesh{
				NDim:   2,
				Coords: make([][3]float64, 10),
				Edges: [][2]int{
					{1, 2}, {3, 4}, {5, 6}, {7, 8}, {1, 3}, {1, 5},
				},
			}
		}
		p := NewPlan(mesh, 1, 4, 2, r, true)
		if r.Rank() == 0 {
			assert.Equal(t, Colored, p.Strategy)
		} else {
			assert.Equal(t, Reducer, p.Strategy)
		}
		return nil
	})
	assert.NoError(t, err)
}
