package coloring

import (
	"github.com/Tudore/SU2/utils"
	"golang.org/x/sync/errgroup"
)

// ForEachEdge drives the external flux-assembly loop under this plan.
// Colored strategy: a fork-join parallel loop per color group. Workers
// receive whole chunks of ChunkSize edges; conflict freedom holds
// between the chunks of a group, not between the edges inside one, so
// a chunk must never be divided between two workers. Reducer strategy:
// the same loop shape, but fn is expected to write into the plan's
// EdgeFluxes buffer (one slot per edge) rather than directly into
// shared node storage, with SumIntoNodes as the second pass.
func (p *Plan) ForEachEdge(nWorkers int, fn func(iEdge int)) error {
	if nWorkers < 1 {
		nWorkers = 1
	}
	for _, g := range p.Groups {
		var (
			eg = errgroup.Group{}
		)
		for _, r := range chunkAlignedRanges(len(g.Edges), g.ChunkSize, nWorkers) {
			var (
				iMin, iMax = r[0], r[1]
				edges      = g.Edges
			)
			eg.Go(func() error {
				for i := iMin; i < iMax; i++ {
					fn(edges[i])
				}
				return nil
			})
		}
		// Color groups are barriers: the next group may touch nodes
		// this one wrote
		if err := eg.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// chunkAlignedRanges splits nEdge items over nWorkers with every split
// point on a chunkSize boundary, so the edges of one chunk always land
// on the same worker. Empty ranges are elided.
func chunkAlignedRanges(nEdge, chunkSize, nWorkers int) (ranges [][2]int) {
	if chunkSize < 1 {
		chunkSize = 1
	}
	nChunk := (nEdge + chunkSize - 1) / chunkSize
	if nWorkers > nChunk {
		nWorkers = nChunk
	}
	pm := utils.NewPartitionMap(nWorkers, nChunk)
	for np := 0; np < nWorkers; np++ {
		cMin, cMax := pm.GetBucketRange(np)
		iMin, iMax := cMin*chunkSize, cMax*chunkSize
		if iMax > nEdge {
			iMax = nEdge
		}
		if iMin < iMax {
			ranges = append(ranges, [2]int{iMin, iMax})
		}
	}
	return
}

// EdgeSet returns every edge index in the plan, color by color. Each
// edge appears exactly once across all groups.
func (p *Plan) EdgeSet() (edges []int) {
	for _, g := range p.Groups {
		edges = append(edges, g.Edges...)
	}
	return
}

// NColors is the number of color groups in the plan
func (p *Plan) NColors() int { return len(p.Groups) }
