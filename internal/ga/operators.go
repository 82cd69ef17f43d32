package ga

import (
	"math"
	"math/rand"
	"sort"

	"qapSolver/internal/qap"
)

// Scored — особь вместе с её приспособленностью (меньше — лучше).
type Scored struct {
	Perm    *qap.Permutation
	Fitness int64
}

// rankGeneration сортирует поколение по возрастанию приспособленности.
// Сортировка устойчивая: при равенстве сохраняется порядок оценки.
func rankGeneration(gen []Scored) {
	sort.SliceStable(gen, func(i, j int) bool {
		return gen[i].Fitness < gen[j].Fitness
	})
}

// EliteCount возвращает размер элиты: floor(size*ratio), но не меньше двух
// (чтобы для скрещивания всегда было двое родителей) и не больше size.
func EliteCount(size int, ratio float64) int {
	k := int(math.Floor(float64(size) * ratio))
	if k < 2 {
		k = 2
	}
	if k > size {
		k = size
	}
	if k < 0 {
		k = 0
	}
	return k
}

// sampleTwo выбирает два различных индекса из [0, n) без возвращения.
func sampleTwo(n int, rng *rand.Rand) (int, int) {
	a := rng.Intn(n)
	b := rng.Intn(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

// recombine строит гены потомка из родителя: сначала гены с позиции split до конца,
// затем с начала до split. Ген, который уже есть в потомке, заменяется значением,
// выбранным методом отбраковки среди ещё не использованных.
// used — рабочий буфер длины n.
func recombine(parent *qap.Permutation, split int, used []bool, rng *rand.Rand) *qap.Permutation {
	n := parent.Size()
	for i := range used {
		used[i] = false
	}
	child := make([]int, 0, n)

	place := func(gene int) {
		for used[gene] {
			gene = rng.Intn(n)
		}
		used[gene] = true
		child = append(child, gene)
	}

	for i := split; i < n; i++ {
		place(parent.Gene(i))
	}
	for i := 0; i < split; i++ {
		place(parent.Gene(i))
	}
	return qap.PermutationFromGenes(child)
}

// reproduce формирует следующее поколение.
// С вероятностью crossProbability первые eliteCount мест занимают копии элиты,
// остальные — потомки случайных пар родителей из элиты. Иначе поколение
// не продвигается: возвращаются копии текущей популяции.
// Результат никогда не разделяет память с population и ranked.
func reproduce(
	population []*qap.Permutation,
	ranked []Scored,
	eliteCount int,
	crossProbability float64,
	rng *rand.Rand,
) (next []*qap.Permutation, crossed bool) {
	popSize := len(population)

	if rng.Float64() >= crossProbability || eliteCount < 2 {
		next = make([]*qap.Permutation, popSize)
		for i, p := range population {
			next[i] = p.Clone()
		}
		return next, false
	}

	elite := ranked[:eliteCount]
	next = make([]*qap.Permutation, 0, popSize)

	// Элитизм (переносим лучших особей без изменений)
	for _, s := range elite {
		next = append(next, s.Perm.Clone())
	}

	n := elite[0].Perm.Size()
	used := make([]bool, n)
	for len(next) < popSize {
		split := 0
		if n > 0 {
			split = rng.Intn(n)
		}
		a, _ := sampleTwo(len(elite), rng)
		next = append(next, recombine(elite[a].Perm, split, used, rng))
	}
	return next, true
}
