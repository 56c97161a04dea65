package coloring

import (
	"github.com/james-bowman/sparse"

	"github.com/Tudore/SU2/utils"
	"golang.org/x/sync/errgroup"
)

// EdgeFluxes is the reducer strategy's scratch buffer: one nVar-wide
// slot per edge, written exactly once per edge during the flux loop and
// scattered into node residuals afterward. The node-to-edge incidence
// is held as a CSR matrix with +1 for the edge's first node and -1 for
// the second, so the scatter pass visits each node's incident edges
// with the correct flux orientation.
type EdgeFluxes struct {
	NVar      int
	NEdge     int
	Flux      []float64 // Edge-major storage, length NEdge*NVar
	incidence *sparse.CSR
}

func NewEdgeFluxes(edges [][2]int, nNode, nVar int) (ef *EdgeFluxes) {
	var (
		nEdge = len(edges)
	)
	ef = &EdgeFluxes{
		NVar:  nVar,
		NEdge: nEdge,
		Flux:  make([]float64, nEdge*nVar),
	}
	dok := sparse.NewDOK(nNode, nEdge)
	for ie, e := range edges {
		dok.Set(e[0], ie, 1)
		dok.Set(e[1], ie, -1)
	}
	ef.incidence = dok.ToCSR()
	return
}

// SetZero clears the buffer before a flux pass
func (ef *EdgeFluxes) SetZero() {
	for i := range ef.Flux {
		ef.Flux[i] = 0
	}
}

// Set stores the flux contribution of edge iEdge
func (ef *EdgeFluxes) Set(iEdge int, vals []float64) {
	copy(ef.Flux[iEdge*ef.NVar:(iEdge+1)*ef.NVar], vals)
}

// Add accumulates into the flux slot of edge iEdge
func (ef *EdgeFluxes) Add(iEdge int, vals []float64) {
	base := iEdge * ef.NVar
	for n := 0; n < ef.NVar; n++ {
		ef.Flux[base+n] += vals[n]
	}
}

// SumIntoNodes scatters the buffered edge fluxes into the node-major
// residual vector res (length nNode*NVar). Each node is owned by a
// single worker, so the pass is race-free by construction.
func (ef *EdgeFluxes) SumIntoNodes(res []float64, nWorkers int) error {
	var (
		nNode, _ = ef.incidence.Dims()
		eg       = errgroup.Group{}
	)
	if nWorkers < 1 {
		nWorkers = 1
	}
	pm := utils.NewPartitionMap(nWorkers, nNode)
	for np := 0; np < nWorkers; np++ {
		iMin, iMax := pm.GetBucketRange(np)
		eg.Go(func() error {
			for iPoint := iMin; iPoint < iMax; iPoint++ {
				ef.incidence.DoRowNonZero(iPoint, func(i, iEdge int, sign float64) {
					base := iEdge * ef.NVar
					rBase := iPoint * ef.NVar
					for n := 0; n < ef.NVar; n++ {
						res[rBase+n] += sign * ef.Flux[base+n]
					}
				})
			}
			return nil
		})
	}
	return eg.Wait()
}
