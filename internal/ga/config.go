package ga

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("ga: некорректная конфигурация")

type Config struct {
	Variant Variant
	// PopulationSize == 0 означает размер популяции, равный размеру задачи.
	PopulationSize      int
	Generations         int
	MutationProbability float64
	CrossProbability    float64
	GeneMutations       int
	EliteRatio          float64
	// Seed — UUID запуска; пустая строка означает новый случайный UUID.
	Seed string
}

func (c Config) Validate() error {
	if c.Variant < Standard || c.Variant > Regular {
		return fmt.Errorf(
			"%w: неизвестный вариант %d",
			ErrInvalidConfig, int(c.Variant),
		)
	}
	if c.PopulationSize < 0 {
		return fmt.Errorf(
			"%w: размер популяции должен быть >= 0 (получено %d)",
			ErrInvalidConfig, c.PopulationSize,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"%w: количество поколений должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.Generations,
		)
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		return fmt.Errorf(
			"%w: вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			ErrInvalidConfig, c.MutationProbability,
		)
	}
	if c.CrossProbability < 0 || c.CrossProbability > 1 {
		return fmt.Errorf(
			"%w: вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			ErrInvalidConfig, c.CrossProbability,
		)
	}
	if c.GeneMutations <= 0 {
		return fmt.Errorf(
			"%w: число мутируемых пар генов должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.GeneMutations,
		)
	}
	if c.EliteRatio <= 0 || c.EliteRatio > 1 {
		return fmt.Errorf(
			"%w: доля элиты должна быть в диапазоне (0,1] (получено %f)",
			ErrInvalidConfig, c.EliteRatio,
		)
	}
	if c.Seed != "" {
		if _, err := ParseSeed(c.Seed); err != nil {
			return err
		}
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Variant:             Standard,
		PopulationSize:      0,
		Generations:         100,
		MutationProbability: 0.5,
		CrossProbability:    0.5,
		GeneMutations:       2,
		EliteRatio:          0.1,
	}
}
