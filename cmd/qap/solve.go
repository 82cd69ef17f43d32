package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"qapSolver/internal/config"
	"qapSolver/internal/ga"
	"qapSolver/internal/qap"
	"qapSolver/internal/telemetry"
)

type polishedOutput struct {
	ga.Result
	Passes int `json:"passes"`
}

type solveOutput struct {
	ga.Summary
	Polished *polishedOutput `json:"polished,omitempty"`
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Решить экземпляр QAPLIB и вывести JSON-сводку",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	f := cmd.Flags()
	f.String("instance", "", "путь к файлу экземпляра (формат QAPLIB .dat)")
	f.String("config", "", "файл конфигурации (.yaml | .yml | .toml)")
	f.String("variant", "standard", "вариант: standard | lamarckian | baldwinian")
	f.String("seed", "", "UUID запуска (пусто — случайный)")
	f.Int("generations", 100, "количество поколений")
	f.Int("population", 0, "размер популяции (0 — размер задачи)")
	f.Float64("mutation", 0.5, "вероятность мутации")
	f.Float64("cross", 0.5, "вероятность кроссовера")
	f.Int("gene-mutations", 2, "число обменов генов при мутации")
	f.Float64("elite", 0.1, "доля элиты")
	f.Bool("polish", false, "применить жадную локальную оптимизацию к лучшему решению")
	f.String("metrics-out", "", "записать метрики Prometheus в текстовый файл")
	return cmd
}

// resolveSettings читает файл конфигурации (если задан) и накладывает явно
// переданные флаги поверх него.
func resolveSettings(cmd *cobra.Command) (config.File, error) {
	flags := cmd.Flags()

	file := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.File{}, err
		}
		file = loaded
	}

	if flags.Changed("instance") {
		file.Instance, _ = flags.GetString("instance")
	}
	if flags.Changed("variant") {
		file.GA.Variant, _ = flags.GetString("variant")
	}
	if flags.Changed("seed") {
		file.GA.Seed, _ = flags.GetString("seed")
	}
	if flags.Changed("generations") {
		file.GA.Generations, _ = flags.GetInt("generations")
	}
	if flags.Changed("population") {
		file.GA.PopulationSize, _ = flags.GetInt("population")
	}
	if flags.Changed("mutation") {
		file.GA.MutationProbability, _ = flags.GetFloat64("mutation")
	}
	if flags.Changed("cross") {
		file.GA.CrossProbability, _ = flags.GetFloat64("cross")
	}
	if flags.Changed("gene-mutations") {
		file.GA.GeneMutations, _ = flags.GetInt("gene-mutations")
	}
	if flags.Changed("elite") {
		file.GA.EliteRatio, _ = flags.GetFloat64("elite")
	}
	if flags.Changed("polish") {
		file.Polish, _ = flags.GetBool("polish")
	}
	if flags.Changed("metrics-out") {
		file.Metrics.Out, _ = flags.GetString("metrics-out")
	}
	if lf := cmd.Flag("log-level"); lf != nil && lf.Changed {
		file.Log.Level = lf.Value.String()
	}

	if err := file.Validate(); err != nil {
		return config.File{}, err
	}
	if file.Instance == "" {
		return config.File{}, errors.New("не задан файл экземпляра (--instance или instance в конфигурации)")
	}
	return file, nil
}

func runSolve(cmd *cobra.Command, _ []string) error {
	file, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd.ErrOrStderr(), file.Log.Level)
	if err != nil {
		return err
	}

	inst, err := qap.LoadInstance(file.Instance)
	if err != nil {
		return err
	}
	gaCfg, _ := file.ToGA()

	opts := []ga.Option{ga.WithLogger(log)}
	var rec *telemetry.Recorder
	if file.Metrics.Out != "" {
		rec = telemetry.NewRecorder()
		opts = append(opts, ga.WithObserver(rec))
	}

	engine, err := ga.New(inst, gaCfg, opts...)
	if err != nil {
		return err
	}
	if err := engine.Run(cmd.Context()); err != nil {
		return err
	}

	out := solveOutput{Summary: engine.Summary(filepath.Base(file.Instance))}
	if file.Polish {
		if res, passes, ok := engine.Polish(); ok {
			out.Polished = &polishedOutput{Result: res, Passes: passes}
			log.Info("polished best solution", "fitness", res.Fitness, "passes", passes)
		} else {
			log.Warn("nothing to polish: best solution was never updated", "variant", gaCfg.Variant.String())
		}
	}

	if rec != nil {
		if err := rec.WriteTextfile(file.Metrics.Out); err != nil {
			return fmt.Errorf("запись метрик: %w", err)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
