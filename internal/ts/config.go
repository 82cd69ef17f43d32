package ts

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("ts: некорректная конфигурация")

// Neighborhood определяет тип окрестности.
type Neighborhood string

const (
	NeighborhoodSwap   Neighborhood = "swap"
	NeighborhoodInsert Neighborhood = "insert"
)

type Config struct {
	// Iterations == 0 означает IterationsPerFacility × размер задачи.
	Iterations            int
	IterationsPerFacility int

	TabuTenure     int
	TabuTenureRand int

	NeighborsPerIter int

	Neighborhood Neighborhood
}

func DefaultConfig() Config {
	return Config{
		Iterations:            0,
		IterationsPerFacility: 100,

		TabuTenure:     8,
		TabuTenureRand: 4,

		NeighborsPerIter: 60,
		Neighborhood:     NeighborhoodSwap,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerFacility <= 0 {
		return fmt.Errorf(
			"%w: должно быть задано Iterations > 0 или IterationsPerFacility > 0",
			ErrInvalidConfig,
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"%w: TabuTenure должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf(
			"%w: TabuTenureRand должно быть >= 0 (получено %d)",
			ErrInvalidConfig, c.TabuTenureRand,
		)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf(
			"%w: NeighborsPerIter должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.NeighborsPerIter,
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
