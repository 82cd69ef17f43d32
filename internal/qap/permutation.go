package qap

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrInvalidPermutation = errors.New("qap: invalid permutation")

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidPermutation, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrInvalidPermutation, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate location %d", ErrInvalidPermutation, v)
		}
		seen[v] = true
	}
	return nil
}

// Permutation assigns facility i to location genes[i].
// The genes always form a bijection on [0, Size()).
type Permutation struct {
	genes []int
}

// NewRandomPermutation fills the genes by rejection sampling: a drawn location is
// kept only if it has not been used yet. A non-positive size gives an empty permutation.
func NewRandomPermutation(size int, rng *rand.Rand) *Permutation {
	if size <= 0 {
		return &Permutation{genes: []int{}}
	}
	genes := make([]int, 0, size)
	used := make([]bool, size)
	for len(genes) < size {
		g := rng.Intn(size)
		if used[g] {
			continue
		}
		used[g] = true
		genes = append(genes, g)
	}
	return &Permutation{genes: genes}
}

// PermutationFromGenes copies genes without repairing them.
// Callers that cannot guarantee a bijection should run ValidatePermutation first.
func PermutationFromGenes(genes []int) *Permutation {
	cp := make([]int, len(genes))
	copy(cp, genes)
	return &Permutation{genes: cp}
}

func (p *Permutation) Size() int { return len(p.genes) }

func (p *Permutation) Gene(i int) int { return p.genes[i] }

// Genes returns a copy of the assignment.
func (p *Permutation) Genes() []int {
	cp := make([]int, len(p.genes))
	copy(cp, p.genes)
	return cp
}

func (p *Permutation) Clone() *Permutation {
	return PermutationFromGenes(p.genes)
}

func (p *Permutation) Swap(i, j int) {
	p.genes[i], p.genes[j] = p.genes[j], p.genes[i]
}

// Equal reports whether both permutations hold the same assignment.
func (p *Permutation) Equal(o *Permutation) bool {
	if len(p.genes) != len(o.genes) {
		return false
	}
	for i := range p.genes {
		if p.genes[i] != o.genes[i] {
			return false
		}
	}
	return true
}

// Mutate performs swaps exchanges of two distinct random positions with the given probability.
func (p *Permutation) Mutate(rng *rand.Rand, probability float64, swaps int) {
	n := len(p.genes)
	if n < 2 {
		return
	}
	if rng.Float64() >= probability {
		return
	}
	for s := 0; s < swaps; s++ {
		i := rng.Intn(n)
		j := rng.Intn(n - 1)
		if j >= i {
			j++
		}
		p.genes[i], p.genes[j] = p.genes[j], p.genes[i]
	}
}
