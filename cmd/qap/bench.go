package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qapSolver/internal/bench"
	"qapSolver/internal/ga"
	"qapSolver/internal/sa"
	"qapSolver/internal/ts"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Сравнить GA с базовыми алгоритмами на случайных экземплярах",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}

	// CLI флаги для настройки параметров алгоритмов и политики запуска
	f := cmd.Flags()
	f.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
	f.String("sizes", "12,20,30", "размеры экземпляров (через запятую)")
	f.String("algos", "GA,GA-B,SA,TS", "список алгоритмов: GA, GA-B, SA, TS (через запятую)")
	f.Int("runs", 10, "количество запусков каждого алгоритма (с разными сидами)")
	f.Int("workers", 4, "количество параллельных запусков; 0 — без ограничения")
	f.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
	f.Int64("instance-seed", 777, "базовый сид для генерации экземпляров задачи")
	f.Duration("per-run-timeout", 0, "таймаут одного запуска; 0 — без ограничения")

	// --- Генетический алгоритм ---
	f.Int("ga-gen", 300, "количество поколений")
	f.Int("ga-pop", 0, "размер популяции (0 — размер задачи)")
	f.Float64("ga-mut", 0.5, "вероятность мутации")
	f.Float64("ga-cx", 0.5, "вероятность применения кроссовера")
	f.Int("ga-gene-mut", 2, "число обменов генов при мутации")
	f.Float64("ga-elite", 0.1, "доля элиты")

	// --- Алгоритм имитации отжига ---
	f.Int("sa-iter-per-facility", 2000, "итераций на один объект (используется, если sa-iter == 0)")
	f.Int("sa-iter", 0, "общее количество итераций")
	f.Float64("sa-t0", 5000.0, "начальная температура")
	f.Float64("sa-tmin", 0.5, "конечная температура")
	f.Float64("sa-alpha", 0.998, "коэффициент охлаждения (alpha)")
	f.String("sa-neigh", "swap", "тип окрестности: swap | insert")

	// --- Табу-поиск ---
	f.Int("ts-iter-per-facility", 100, "итераций на один объект (используется, если ts-iter == 0)")
	f.Int("ts-iter", 0, "общее количество итераций")
	f.Int("ts-tenure", 8, "длина табу (в итерациях)")
	f.Int("ts-tenure-rand", 4, "случайное добавление к сроку табу [0..rand]")
	f.Int("ts-neighbors", 60, "количество рассматриваемых соседей на итерацию")
	f.String("ts-neigh", "swap", "тип окрестности: swap | insert")
	return cmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	level, _ := cmd.Flags().GetString("log-level")
	log, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	sizes, _ := f.GetString("sizes")
	instanceSeed, _ := f.GetInt64("instance-seed")
	cases, err := bench.ParseSizes(sizes, instanceSeed)
	if err != nil {
		return err
	}

	gaCfg := ga.DefaultConfig()
	gaCfg.Generations, _ = f.GetInt("ga-gen")
	gaCfg.PopulationSize, _ = f.GetInt("ga-pop")
	gaCfg.MutationProbability, _ = f.GetFloat64("ga-mut")
	gaCfg.CrossProbability, _ = f.GetFloat64("ga-cx")
	gaCfg.GeneMutations, _ = f.GetInt("ga-gene-mut")
	gaCfg.EliteRatio, _ = f.GetFloat64("ga-elite")
	if err := gaCfg.Validate(); err != nil {
		return fmt.Errorf("конфигурация генетического алгоритма: %w", err)
	}

	saCfg := sa.DefaultConfig()
	saCfg.Iterations, _ = f.GetInt("sa-iter")
	saCfg.IterationsPerFacility, _ = f.GetInt("sa-iter-per-facility")
	saCfg.InitialTemp, _ = f.GetFloat64("sa-t0")
	saCfg.FinalTemp, _ = f.GetFloat64("sa-tmin")
	saCfg.Alpha, _ = f.GetFloat64("sa-alpha")
	saNeigh, _ := f.GetString("sa-neigh")
	saCfg.Neighborhood = sa.Neighborhood(saNeigh)
	if err := saCfg.Validate(); err != nil {
		return fmt.Errorf("конфигурация алгоритма имитации отжига: %w", err)
	}

	tsCfg := ts.DefaultConfig()
	tsCfg.Iterations, _ = f.GetInt("ts-iter")
	tsCfg.IterationsPerFacility, _ = f.GetInt("ts-iter-per-facility")
	tsCfg.TabuTenure, _ = f.GetInt("ts-tenure")
	tsCfg.TabuTenureRand, _ = f.GetInt("ts-tenure-rand")
	tsCfg.NeighborsPerIter, _ = f.GetInt("ts-neighbors")
	tsNeigh, _ := f.GetString("ts-neigh")
	tsCfg.Neighborhood = ts.Neighborhood(tsNeigh)
	if err := tsCfg.Validate(); err != nil {
		return fmt.Errorf("конфигурация табу-поиска: %w", err)
	}

	algos, _ := f.GetString("algos")
	selected, err := bench.DefaultRegistry(gaCfg, saCfg, tsCfg).Select(bench.SplitList(algos))
	if err != nil {
		return err
	}

	runner := bench.Runner{Logger: log}
	runner.Runs, _ = f.GetInt("runs")
	runner.Workers, _ = f.GetInt("workers")
	runner.BaseSeed, _ = f.GetInt64("seed")
	runner.PerRunTimeout, _ = f.GetDuration("per-run-timeout")
	if runner.Runs <= 0 {
		return fmt.Errorf("количество запусков должно быть > 0 (получено %d)", runner.Runs)
	}

	w := cmd.OutOrStdout()
	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Fprintf(w, "Запущен алгоритм %s; размер %d (общее кол-во запусков=%d)...\n", a.Name, c.Size, runner.Runs)

			rec, err := runner.RunCase(cmd.Context(), c, a)
			if err != nil {
				return fmt.Errorf("%s, размер %d: %w", a.Name, c.Size, err)
			}
			records = append(records, rec)

			fmt.Fprintf(w, "  Значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms отклонение=%.2fms\n",
				rec.CostBest, rec.CostMean, rec.CostStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	out, _ := f.GetString("out")
	if err := bench.WriteCSV(out, records); err != nil {
		return fmt.Errorf("ошибка при записи в CSV: %w", err)
	}
	fmt.Fprintln(w, "Saved:", out)
	return nil
}
