package comm

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Group is an in-process rank group: NP goroutines, one per rank,
// exchanging contributions over channels. Rank 0 gathers, combines and
// broadcasts, the same fan-in/fan-out used for partition messaging in
// the solver's parallel loops.
type Group struct {
	NP    int
	Ranks []*Rank
	up    chan []float64 // Contributions to rank 0
}

// Rank is one participant's handle into its Group
type Rank struct {
	rank  int
	group *Group
	down  chan []float64 // Combined result from rank 0
}

func NewGroup(NP int) (g *Group) {
	g = &Group{
		NP:    NP,
		Ranks: make([]*Rank, NP),
		up:    make(chan []float64, NP),
	}
	for n := 0; n < NP; n++ {
		g.Ranks[n] = &Rank{
			rank:  n,
			group: g,
			down:  make(chan []float64, 1),
		}
	}
	return
}

func (r *Rank) Rank() int { return r.rank }
func (r *Rank) Size() int { return r.group.NP }

// allreduce combines xs across all ranks using op, leaving the result
// in xs on every rank. Every rank must call it or the group deadlocks.
func (r *Rank) allreduce(xs []float64, op func(dst, src []float64)) {
	g := r.group
	if r.rank != 0 {
		msg := make([]float64, len(xs))
		copy(msg, xs)
		g.up <- msg
		copy(xs, <-r.down)
		return
	}
	for n := 1; n < g.NP; n++ {
		op(xs, <-g.up)
	}
	for n := 1; n < g.NP; n++ {
		out := make([]float64, len(xs))
		copy(out, xs)
		g.Ranks[n].down <- out
	}
}

func sumOp(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

func minOp(dst, src []float64) {
	for i := range dst {
		dst[i] = math.Min(dst[i], src[i])
	}
}

func (r *Rank) SumFloat64(x float64) float64 {
	buf := [1]float64{x}
	r.allreduce(buf[:], sumOp)
	return buf[0]
}

func (r *Rank) SumFloat64s(xs []float64) {
	r.allreduce(xs, sumOp)
}

func (r *Rank) SumInt(x int) int {
	buf := [1]float64{float64(x)}
	r.allreduce(buf[:], sumOp)
	return int(buf[0])
}

func (r *Rank) MinFloat64(x float64) float64 {
	buf := [1]float64{x}
	r.allreduce(buf[:], minOp)
	return buf[0]
}

// RunGroup runs fn on NP concurrent ranks and waits for all of them,
// returning the first error. The fn for every rank must make the same
// sequence of collective calls.
func RunGroup(NP int, fn func(r *Rank) error) error {
	var (
		g  = NewGroup(NP)
		eg = errgroup.Group{}
	)
	for n := 0; n < NP; n++ {
		rank := g.Ranks[n]
		eg.Go(func() error {
			return fn(rank)
		})
	}
	return eg.Wait()
}
