package qap

import (
	"errors"
	"fmt"
)

// Evaluator computes assignment costs against one instance.
// It keeps no mutable state, so one Evaluator may be shared by concurrent callers.
type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

func (e *Evaluator) Instance() *Instance { return e.inst }

// Cost is the standard QAP objective: sum of flow[i][j] * distance[p[i]][p[j]].
func (e *Evaluator) Cost(p *Permutation) int64 {
	return e.cost(p.genes)
}

// CostOf validates genes before computing the standard cost.
func (e *Evaluator) CostOf(genes []int) (int64, error) {
	if e == nil || e.inst == nil {
		return 0, errors.New("nil evaluator")
	}
	if err := ValidatePermutation(genes, e.inst.Size); err != nil {
		return 0, err
	}
	return e.cost(genes), nil
}

func (e *Evaluator) cost(genes []int) int64 {
	n := e.inst.Size
	flows, dists := e.inst.Flows, e.inst.Distances
	var total int64
	for i := 0; i < n; i++ {
		row := flows[i*n : (i+1)*n]
		base := genes[i] * n
		for j, f := range row {
			if f == 0 {
				continue
			}
			total += f * dists[base+genes[j]]
		}
	}
	return total
}

// NearestNeighborCost is the Baldwinian surrogate. For every facility i the
// distances are taken greedily: the j-th flow of row i is paired with the nearest
// location from genes[i] not consumed yet in this row (ties go to the lowest index).
// The permutation itself is left untouched.
func (e *Evaluator) NearestNeighborCost(p *Permutation) int64 {
	n := e.inst.Size
	flows, dists := e.inst.Flows, e.inst.Distances
	checked := make([]bool, n)
	var total int64
	for i := 0; i < n; i++ {
		for k := range checked {
			checked[k] = false
		}
		row := dists[p.genes[i]*n : (p.genes[i]+1)*n]
		for j := 0; j < n; j++ {
			best := -1
			for k, d := range row {
				if checked[k] {
					continue
				}
				if best < 0 || d < row[best] {
					best = k
				}
			}
			checked[best] = true
			total += flows[i*n+j] * row[best]
		}
	}
	return total
}

// SwapDelta returns Cost(p after swapping positions r and s) - Cost(p) in O(n).
// Both matrices may be asymmetric and have non-zero diagonals.
func (e *Evaluator) SwapDelta(p *Permutation, r, s int) int64 {
	if r == s {
		return 0
	}
	n := e.inst.Size
	a, b := e.inst.Flows, e.inst.Distances
	g := p.genes
	pr, ps := g[r], g[s]

	delta := (a[r*n+r]-a[s*n+s])*(b[ps*n+ps]-b[pr*n+pr]) +
		(a[r*n+s]-a[s*n+r])*(b[ps*n+pr]-b[pr*n+ps])
	for k := 0; k < n; k++ {
		if k == r || k == s {
			continue
		}
		pk := g[k]
		delta += (a[k*n+r]-a[k*n+s])*(b[pk*n+ps]-b[pk*n+pr]) +
			(a[r*n+k]-a[s*n+k])*(b[ps*n+pk]-b[pr*n+pk])
	}
	return delta
}

func (e *Evaluator) MustCostOf(genes []int) int64 {
	c, err := e.CostOf(genes)
	if err != nil {
		panic(fmt.Errorf("cost: %w", err))
	}
	return c
}
