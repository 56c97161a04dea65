// Package coloring partitions mesh edges into conflict-free groups so
// that per-edge flux contributions can be accumulated into shared node
// residuals concurrently. When the coloring would parallelize poorly it
// falls back to a reducer strategy: fluxes are written once per edge
// into a scratch buffer and summed into nodes in a second, race-free
// pass.
package coloring

import (
	log "github.com/sirupsen/logrus"

	"github.com/Tudore/SU2/comm"
	"github.com/Tudore/SU2/geometry"
)

const (
	// ColoringEffThresh is the parallel efficiency below which a rank
	// switches to the reducer strategy
	ColoringEffThresh = 0.875

	// MaxChunkSize caps the static chunk size of point loops
	MaxChunkSize = 1024
)

// Strategy selects how edge fluxes are accumulated into nodes
type Strategy uint8

const (
	Colored Strategy = iota // Fork-join loop per conflict-free color group
	Reducer                 // Edge-indexed scratch buffer, then node scatter
)

func (s Strategy) String() string {
	if s == Reducer {
		return "Reducer"
	}
	return "Colored"
}

// Group is one color, laid out as consecutive chunks of ChunkSize
// edges. Distinct chunks of a group never share an endpoint node;
// edges inside one chunk may, so scheduling hands out whole chunks.
type Group struct {
	Edges     []int
	ChunkSize int
}

// Plan is the per-rank accumulation strategy, computed once after the
// mesh partitioning is finalized and immutable afterward
type Plan struct {
	Strategy   Strategy
	Groups     []Group
	Efficiency float64     // Parallel efficiency of the natural coloring
	EdgeFluxes *EdgeFluxes // Non-nil only for the Reducer strategy
	PointChunk int         // Static chunk size for point loops
}

// NewPlan colors the edges of the local partition and decides between
// the colored and reducer strategies. groupSize == 0 forces a single
// color and the reducer. The decision is local to each rank; only the
// diagnostics are reduced, and only when commFull is set.
func NewPlan(mesh *geometry.Mesh, groupSize, nVar, nWorkers int, red comm.Reducer, commFull bool) (p *Plan) {
	var (
		nEdge  = mesh.NEdge()
		forced = groupSize == 0
	)
	p = &Plan{Efficiency: 1.0}

	if !forced {
		p.Groups, p.Efficiency = colorEdges(mesh.Edges, mesh.NNode(), groupSize)
		p.Strategy = Colored
	}

	if forced || p.Efficiency < ColoringEffThresh {
		p.Strategy = Reducer
		// A single natural color avoids paying color-loop overhead for
		// a strategy that no longer benefits from many colors
		p.Groups = naturalColoring(nEdge)
	}

	if p.Strategy == Reducer {
		p.EdgeFluxes = NewEdgeFluxes(mesh.Edges, mesh.NNode(), nVar)
	}

	p.PointChunk = StaticChunkSize(mesh.NNode(), nWorkers, MaxChunkSize)

	// When the reducer is not being forced outright, report how the
	// coloring fared across ranks
	if !forced && commFull {
		minEff := red.MinFloat64(p.Efficiency)
		usingReducer := 0
		if p.Strategy == Reducer {
			usingReducer = 1
		}
		numRanksUsingReducer := red.SumInt(usingReducer)
		if minEff < ColoringEffThresh && red.Rank() == 0 {
			log.WithFields(log.Fields{
				"minEfficiency": minEff,
				"threshold":     ColoringEffThresh,
				"ranks":         numRanksUsingReducer,
			}).Warn("low edge coloring efficiency, affected ranks use the reducer fallback; " +
				"a different EdgeColorGroupSize may perform better")
		}
	}
	return
}

// colorEdges assigns each run of groupSize consecutive edges to the
// first color whose node set it does not touch. Returns the color
// groups and the measured parallel efficiency of the partition.
func colorEdges(edges [][2]int, nNode, groupSize int) (groups []Group, efficiency float64) {
	var (
		colors []*edgeColor
		nEdge  = len(edges)
	)
	for start := 0; start < nEdge; start += groupSize {
		end := start + groupSize
		if end > nEdge {
			end = nEdge
		}
		assigned := false
		for _, c := range colors {
			conflict := false
			for ie := start; ie < end; ie++ {
				if c.seen[edges[ie][0]] || c.seen[edges[ie][1]] {
					conflict = true
					break
				}
			}
			if !conflict {
				c.claim(edges, start, end)
				assigned = true
				break
			}
		}
		if !assigned {
			c := &edgeColor{seen: make([]bool, nNode)}
			c.claim(edges, start, end)
			colors = append(colors, c)
		}
	}
	var maxSize int
	for _, c := range colors {
		if len(c.edges) > maxSize {
			maxSize = len(c.edges)
		}
		groups = append(groups, Group{Edges: c.edges, ChunkSize: groupSize})
	}
	if len(colors) > 0 {
		efficiency = float64(nEdge) / (float64(len(colors)) * float64(maxSize))
	} else {
		efficiency = 1.0
	}
	return
}

type edgeColor struct {
	edges []int
	seen  []bool // Nodes already touched by this color
}

func (c *edgeColor) claim(edges [][2]int, start, end int) {
	for ie := start; ie < end; ie++ {
		c.edges = append(c.edges, ie)
		c.seen[edges[ie][0]] = true
		c.seen[edges[ie][1]] = true
	}
}

// naturalColoring is the sequential layout: one group covering every edge
func naturalColoring(nEdge int) []Group {
	g := Group{Edges: make([]int, nEdge), ChunkSize: 1}
	for ie := 0; ie < nEdge; ie++ {
		g.Edges[ie] = ie
	}
	return []Group{g}
}

// StaticChunkSize splits n items over nWorkers with at most maxChunk
// items per chunk, for static scheduling of point loops
func StaticChunkSize(n, nWorkers, maxChunk int) (chunk int) {
	if nWorkers < 1 {
		nWorkers = 1
	}
	chunk = (n + nWorkers - 1) / nWorkers
	if chunk > maxChunk {
		chunk = maxChunk
	}
	if chunk < 1 {
		chunk = 1
	}
	return
}
