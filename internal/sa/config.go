package sa

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("sa: некорректная конфигурация")

// Тип окрестности
type Neighborhood string

const (
	NeighborhoodSwap   Neighborhood = "swap"
	NeighborhoodInsert Neighborhood = "insert"
)

type Config struct {
	// Iterations == 0 означает IterationsPerFacility × размер задачи.
	Iterations            int
	IterationsPerFacility int

	InitialTemp float64
	FinalTemp   float64
	Alpha       float64

	Neighborhood Neighborhood
}

func DefaultConfig() Config {
	return Config{
		Iterations:            0,
		IterationsPerFacility: 2000,

		InitialTemp: 5000.0,
		FinalTemp:   0.5,
		Alpha:       0.998,

		Neighborhood: NeighborhoodSwap,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerFacility <= 0 {
		return fmt.Errorf(
			"%w: должно быть задано Iterations > 0 или IterationsPerFacility > 0",
			ErrInvalidConfig,
		)
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"%w: InitialTemp должно быть > 0 (получено %f)",
			ErrInvalidConfig, c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 || c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"%w: FinalTemp должно лежать в интервале (0, InitialTemp) (получено %f)",
			ErrInvalidConfig, c.FinalTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"%w: alpha должно лежать в интервале (0,1) (получено %f)",
			ErrInvalidConfig, c.Alpha,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodSwap, NeighborhoodInsert:
	default:
		return fmt.Errorf(
			"%w: неизвестный тип окрестности %q",
			ErrInvalidConfig, c.Neighborhood,
		)
	}
	return nil
}
