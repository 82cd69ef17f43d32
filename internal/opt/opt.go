package opt

import (
	"context"
	"time"

	"qapSolver/internal/qap"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *qap.Instance) (Result, error)
}

type Result struct {
	Permutation []int
	Cost        int64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
