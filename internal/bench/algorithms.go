package bench

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"qapSolver/internal/ga"
	"qapSolver/internal/opt"
	"qapSolver/internal/sa"
	"qapSolver/internal/ts"
)

// Фабрики

// GAFactory превращает целый сид запуска в детерминированный UUID движка.
func GAFactory(cfg ga.Config) Factory {
	return func(seed int64) (opt.Optimizer, error) {
		c := cfg
		c.Seed = ga.SeedFromInt(seed).String()
		return ga.NewSolver(c)
	}
}

func SAFactory(cfg sa.Config) Factory {
	return func(seed int64) (opt.Optimizer, error) {
		return sa.New(cfg, rand.New(rand.NewSource(seed)))
	}
}

func TSFactory(cfg ts.Config) Factory {
	return func(seed int64) (opt.Optimizer, error) {
		return ts.New(cfg, rand.New(rand.NewSource(seed)))
	}
}

// Registry — набор алгоритмов, доступных бенчмарку, по имени.
type Registry map[string]Algorithm

// DefaultRegistry: GA (стандартный), GA-B (болдуиновский), SA, TS.
// Ламарковский вариант не включён: он не производит решения.
func DefaultRegistry(gaCfg ga.Config, saCfg sa.Config, tsCfg ts.Config) Registry {
	baldwin := gaCfg
	baldwin.Variant = ga.Baldwinian
	std := gaCfg
	std.Variant = ga.Standard

	return Registry{
		"GA":   {Name: "GA", Factory: GAFactory(std)},
		"GA-B": {Name: "GA-B", Factory: GAFactory(baldwin)},
		"SA":   {Name: "SA", Factory: SAFactory(saCfg)},
		"TS":   {Name: "TS", Factory: TSFactory(tsCfg)},
	}
}

func (r Registry) Names() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Select возвращает алгоритмы в порядке перечисления имён.
func (r Registry) Select(names []string) ([]Algorithm, error) {
	out := make([]Algorithm, 0, len(names))
	for _, n := range names {
		a, ok := r[strings.ToUpper(n)]
		if !ok {
			return nil, fmt.Errorf("алгоритм %q не предоставлен; доступные: %v", n, r.Names())
		}
		out = append(out, a)
	}
	return out, nil
}

// ParseSizes разбирает список размеров через запятую ("12,20,30")
// и назначает каждому экземпляру детерминированный сид.
func ParseSizes(s string, baseInstanceSeed int64) ([]Case, error) {
	parts := SplitList(s)
	cases := make([]Case, 0, len(parts))
	for i, p := range parts {
		size, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("размер %q: %w", p, err)
		}
		if size <= 0 {
			return nil, fmt.Errorf("размер %q: должно быть целое > 0", p)
		}
		cases = append(cases, Case{
			Size:         size,
			InstanceSeed: baseInstanceSeed + int64(i)*10_000 + int64(size)*100,
		})
	}
	return cases, nil
}

func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
