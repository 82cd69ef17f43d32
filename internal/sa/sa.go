package sa

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"qapSolver/internal/opt"
	"qapSolver/internal/qap"
)

var ErrNilRand = errors.New("sa: генератор случайных чисел не инициализирован (nil)")

// Solver — имитация отжига для QAP, базовый алгоритм для сравнения с GA.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает SA-солвер с валидацией конфигурации.
// Используется в фабриках бенчмарка.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

func (s *Solver) Solve(ctx context.Context, inst *qap.Instance) (opt.Result, error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, ErrNilRand
	}
	eval, err := qap.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Size
	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerFacility * n
	}

	curr := qap.NewRandomPermutation(n, s.Rng)
	currCost := eval.Cost(curr)
	evals := 1

	best := curr.Genes()
	bestCost := currCost

	cand := make([]int, n)
	T := s.Cfg.InitialTemp
	iter := 0

	for ; n >= 2 && iter < maxIter && T > s.Cfg.FinalTemp; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Permutation: best,
				Cost:        bestCost,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(start),
				Meta:        map[string]any{"stopped": "context", "T": T},
			}, err
		}

		i, j := distinctPair(n, s.Rng)

		var delta int64
		switch s.Cfg.Neighborhood {
		case NeighborhoodInsert:
			// Окрестность на основе вставки: стоимость пересчитывается полностью
			copyGenes(cand, curr)
			applyInsert(cand, i, j)
			delta = eval.MustCostOf(cand) - currCost
		default:
			// Для обмена достаточно O(n) приращения
			delta = eval.SwapDelta(curr, i, j)
		}
		evals++

		// Критерий Метрополиса: ухудшение принимается с вероятностью exp(-delta/T)
		accept := delta <= 0 || s.Rng.Float64() < math.Exp(-float64(delta)/T)
		if accept {
			if s.Cfg.Neighborhood == NeighborhoodInsert {
				curr = qap.PermutationFromGenes(cand)
			} else {
				curr.Swap(i, j)
			}
			currCost += delta

			if currCost < bestCost {
				bestCost = currCost
				best = curr.Genes()
			}
		}

		// Охлаждение
		T *= s.Cfg.Alpha
	}

	return opt.Result{
		Permutation: best,
		Cost:        bestCost,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"initial_temp": s.Cfg.InitialTemp,
			"final_temp":   s.Cfg.FinalTemp,
			"alpha":        s.Cfg.Alpha,
			"neighborhood": string(s.Cfg.Neighborhood),
		},
	}, nil
}

// distinctPair выбирает две различные позиции.
func distinctPair(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

func copyGenes(dst []int, p *qap.Permutation) {
	for k := range dst {
		dst[k] = p.Gene(k)
	}
}

// applyInsert извлекает элемент из позиции from и вставляет его в позицию to.
func applyInsert(p []int, from, to int) {
	if from == to {
		return
	}
	val := p[from]
	if from < to {
		// Сдвиг элементов влево
		copy(p[from:to], p[from+1:to+1])
	} else {
		// Сдвиг элементов вправо
		copy(p[to+1:from+1], p[to:from])
	}
	p[to] = val
}
