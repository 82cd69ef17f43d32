package ga

import "math"

// BestChromosome — лучшая особь в сводке запуска.
type BestChromosome struct {
	Genes      []int `json:"genes"`
	Fitness    int64 `json:"fitness"`
	Generation int   `json:"generation"`
}

// Summary — итоговая сводка запуска в формате JSON.
type Summary struct {
	Database            string         `json:"database"`
	Variant             string         `json:"variant"`
	PopulationSize      int            `json:"population_size"`
	MutationProbability float64        `json:"mutation_probability"`
	CrossProbability    float64        `json:"cross_probability"`
	Generations         int            `json:"generations"`
	Seed                string         `json:"seed"`
	RunTime             float64        `json:"run_time"`
	BestChromosome      BestChromosome `json:"best_chromosome"`
}

// Summary собирает сводку; database — имя файла экземпляра (может быть пустым).
// run_time указывается в секундах с округлением до сотых.
func (e *Engine) Summary(database string) Summary {
	b := e.best.clone()
	return Summary{
		Database:            database,
		Variant:             e.cfg.Variant.String(),
		PopulationSize:      e.popSize,
		MutationProbability: e.cfg.MutationProbability,
		CrossProbability:    e.cfg.CrossProbability,
		Generations:         e.cfg.Generations,
		Seed:                e.seed.String(),
		RunTime:             math.Round(e.runTime.Seconds()*100) / 100,
		BestChromosome: BestChromosome{
			Genes:      b.Genes,
			Fitness:    b.Fitness,
			Generation: b.Generation,
		},
	}
}
