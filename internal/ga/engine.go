package ga

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"qapSolver/internal/qap"
)

// SentinelFitness хуже любой реальной приспособленности.
const SentinelFitness int64 = math.MaxInt64

var (
	ErrNilInstance = errors.New("ga: экземпляр задачи не задан (nil)")
	ErrAlreadyRun  = errors.New("ga: поиск уже завершён")
)

type State int

const (
	StateInitialized State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// BestRecord — лучшее найденное решение за весь запуск.
type BestRecord struct {
	Genes      []int
	Fitness    int64
	Generation int
}

// Found сообщает, обновлялась ли запись хотя бы раз.
func (b BestRecord) Found() bool { return b.Fitness != SentinelFitness }

func (b BestRecord) clone() BestRecord {
	if b.Genes != nil {
		g := make([]int, len(b.Genes))
		copy(g, b.Genes)
		b.Genes = g
	}
	return b
}

// GenerationStats передаётся наблюдателю после каждого продвинувшегося поколения.
type GenerationStats struct {
	Variant        Variant
	Generation     int
	BestFitness    int64
	GenerationBest int64
	Crossed        bool
	Evaluations    int
	Duration       time.Duration
}

type Observer interface {
	ObserveGeneration(GenerationStats)
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine — генетический алгоритм для QAP.
// Engine не предназначен для конкурентного использования: генератор случайных
// чисел и буферы популяции принадлежат только ему.
type Engine struct {
	cfg  Config
	inst *qap.Instance
	eval *qap.Evaluator

	seed uuid.UUID
	rng  *rand.Rand

	popSize    int
	eliteCount int
	population []*qap.Permutation
	ranked     []Scored

	best        BestRecord
	generation  int
	evaluations int
	state       State
	runTime     time.Duration

	log      *slog.Logger
	observer Observer
}

// New проверяет конфигурацию, инициализирует генератор из seed и создаёт
// случайную начальную популяцию.
func New(inst *qap.Instance, cfg Config, opts ...Option) (*Engine, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eval, err := qap.NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	seed, err := resolveSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:  cfg,
		inst: inst,
		eval: eval,
		seed: seed,
		rng:  rngFromSeed(seed),
		best: BestRecord{Fitness: SentinelFitness},
		log:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(e)
	}

	e.popSize = cfg.PopulationSize
	if e.popSize == 0 {
		e.popSize = inst.Size
	}
	e.eliteCount = EliteCount(e.popSize, cfg.EliteRatio)

	e.population = make([]*qap.Permutation, e.popSize)
	for i := range e.population {
		e.population[i] = qap.NewRandomPermutation(inst.Size, e.rng)
	}

	if cfg.Variant == Regular {
		e.log.Warn("unrecognized variant, using regular fallback (all fitness values are zero)")
	}
	e.log.Info("ga initialized",
		"seed", seed.String(),
		"variant", cfg.Variant.String(),
		"size", inst.Size,
		"population", e.popSize,
		"elite", e.eliteCount,
		"generations", cfg.Generations,
	)
	return e, nil
}

// Run выполняет все оставшиеся поколения.
func (e *Engine) Run(ctx context.Context) error {
	if e.state == StateDone {
		return ErrAlreadyRun
	}
	start := time.Now()
	defer func() { e.runTime += time.Since(start) }()

	for e.generation < e.cfg.Generations {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			e.state = StateDone
			e.log.Info("ga stopped", "reason", err, "generation", e.generation)
			return err
		}
		e.Step()
	}

	e.log.Info("ga finished",
		"seed", e.seed.String(),
		"best_fitness", e.best.Fitness,
		"best_generation", e.best.Generation,
		"evaluations", e.evaluations,
		"elapsed", time.Since(start),
	)
	return nil
}

// Step выполняет одно поколение. Возвращает false, если бюджет поколений исчерпан.
func (e *Engine) Step() bool {
	if e.state == StateDone || e.generation >= e.cfg.Generations {
		e.state = StateDone
		return false
	}
	e.state = StateRunning
	start := time.Now()

	e.generation++
	last := e.generation == e.cfg.Generations
	if last {
		defer func() { e.state = StateDone }()
	}

	// Ламарковский вариант не продвигает поиск: цикл поколения пропускается.
	if e.cfg.Variant == Lamarckian {
		e.log.Debug("generation skipped", "generation", e.generation, "variant", e.cfg.Variant.String())
		return true
	}

	e.evaluate()
	next, crossed := reproduce(e.population, e.ranked, e.eliteCount, e.cfg.CrossProbability, e.rng)
	e.population = next

	// Мутация
	for _, p := range e.population {
		p.Mutate(e.rng, e.cfg.MutationProbability, e.cfg.GeneMutations)
	}

	// На последнем поколении оцениваем итоговую популяцию после мутации
	if last {
		e.evaluate()
	}
	e.updateBest()

	genBest := SentinelFitness
	if len(e.ranked) > 0 {
		genBest = e.ranked[0].Fitness
	}
	e.log.Debug("generation",
		"generation", e.generation,
		"generation_best", genBest,
		"best", e.best.Fitness,
		"crossed", crossed,
	)
	if e.observer != nil {
		e.observer.ObserveGeneration(GenerationStats{
			Variant:        e.cfg.Variant,
			Generation:     e.generation,
			BestFitness:    e.best.Fitness,
			GenerationBest: genBest,
			Crossed:        crossed,
			Evaluations:    e.evaluations,
			Duration:       time.Since(start),
		})
	}
	return true
}

func (e *Engine) fitness(p *qap.Permutation) int64 {
	switch e.cfg.Variant {
	case Baldwinian:
		return e.eval.NearestNeighborCost(p)
	case Regular:
		return 0
	default:
		return e.eval.Cost(p)
	}
}

func (e *Engine) evaluate() {
	gen := make([]Scored, len(e.population))
	for i, p := range e.population {
		gen[i] = Scored{Perm: p, Fitness: e.fitness(p)}
	}
	e.evaluations += len(gen)
	rankGeneration(gen)
	e.ranked = gen
}

func (e *Engine) updateBest() {
	if len(e.ranked) == 0 {
		return
	}
	top := e.ranked[0]
	if top.Fitness < e.best.Fitness {
		e.best = BestRecord{
			Genes:      top.Perm.Genes(),
			Fitness:    top.Fitness,
			Generation: e.generation,
		}
	}
}

func (e *Engine) Best() BestRecord { return e.best.clone() }

func (e *Engine) Seed() uuid.UUID { return e.seed }

func (e *Engine) State() State { return e.state }

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) GenerationsRun() int { return e.generation }

func (e *Engine) Evaluations() int { return e.evaluations }

func (e *Engine) PopulationSize() int { return e.popSize }

func (e *Engine) EliteSize() int { return e.eliteCount }

func (e *Engine) RunTime() time.Duration { return e.runTime }

// Population возвращает копии генов текущей популяции.
func (e *Engine) Population() [][]int {
	out := make([][]int, len(e.population))
	for i, p := range e.population {
		out[i] = p.Genes()
	}
	return out
}

// Result — внешний результат запуска.
type Result struct {
	Genes      []int  `json:"genes"`
	Fitness    int64  `json:"fitness"`
	Generation int    `json:"generation"`
	Seed       string `json:"seed"`
}

func (e *Engine) Result() Result {
	b := e.best.clone()
	return Result{
		Genes:      b.Genes,
		Fitness:    b.Fitness,
		Generation: b.Generation,
		Seed:       e.seed.String(),
	}
}

// Polish применяет жадную локальную оптимизацию перестановками к лучшему решению.
// Приспособленность результата считается по стандартной формуле.
// Второе значение — число проходов, третье false, если лучшее решение ещё не найдено.
func (e *Engine) Polish() (Result, int, bool) {
	if !e.best.Found() {
		return Result{}, 0, false
	}
	p, cost, passes := qap.GreedyTransposition(e.eval, qap.PermutationFromGenes(e.best.Genes))
	return Result{
		Genes:      p.Genes(),
		Fitness:    cost,
		Generation: e.best.Generation,
		Seed:       e.seed.String(),
	}, passes, true
}
