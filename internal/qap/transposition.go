package qap

// GreedyTransposition runs pairwise-swap local search from p until no swap of two
// positions lowers the standard cost. Every improving swap is applied as soon as it
// is found and the scan continues; a full pass without improvement ends the search.
// p is not modified. It returns the local optimum, its cost and the number of passes.
func GreedyTransposition(e *Evaluator, p *Permutation) (*Permutation, int64, int) {
	cur := p.Clone()
	cost := e.Cost(cur)
	n := cur.Size()

	passes := 0
	for {
		passes++
		improved := false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				d := e.SwapDelta(cur, i, j)
				if d >= 0 {
					continue
				}
				cur.Swap(i, j)
				cost += d
				improved = true
			}
		}
		if !improved {
			return cur, cost, passes
		}
	}
}
