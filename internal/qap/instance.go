package qap

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrDimension reports flow/distance matrices that are not square or not of equal size.
	ErrDimension = errors.New("qap: invalid matrix dimension")
	// ErrNegativeValue reports a negative flow or distance entry.
	ErrNegativeValue = errors.New("qap: negative matrix value")
)

// Instance holds the flow and distance matrices of one QAP instance.
// Both matrices are stored row-major and must not be modified after construction.
type Instance struct {
	Size int
	// Flows and Distances length must be Size*Size.
	Flows     []int64
	Distances []int64
}

// NewInstance copies flow and distance into a validated Instance.
func NewInstance(flow, distance [][]int64) (*Instance, error) {
	n := len(flow)
	if len(distance) != n {
		return nil, fmt.Errorf("%w: flow has %d rows, distance has %d", ErrDimension, n, len(distance))
	}
	if n > MaxSize {
		return nil, fmt.Errorf("%w: size must be in [0, %d] (got %d)", ErrDimension, MaxSize, n)
	}
	inst := &Instance{
		Size:      n,
		Flows:     make([]int64, 0, n*n),
		Distances: make([]int64, 0, n*n),
	}
	for i := 0; i < n; i++ {
		if len(flow[i]) != n {
			return nil, fmt.Errorf("%w: flow row %d has %d columns (want %d)", ErrDimension, i, len(flow[i]), n)
		}
		if len(distance[i]) != n {
			return nil, fmt.Errorf("%w: distance row %d has %d columns (want %d)", ErrDimension, i, len(distance[i]), n)
		}
		inst.Flows = append(inst.Flows, flow[i]...)
		inst.Distances = append(inst.Distances, distance[i]...)
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// MaxSize bounds the instance dimension so that Size*Size fits in int on every platform.
const MaxSize = 1 << 15

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Size < 0 || inst.Size > MaxSize {
		return fmt.Errorf("%w: size must be in [0, %d] (got %d)", ErrDimension, MaxSize, inst.Size)
	}
	want := inst.Size * inst.Size
	if len(inst.Flows) != want {
		return fmt.Errorf("%w: flows length must be size*size=%d (got %d)", ErrDimension, want, len(inst.Flows))
	}
	if len(inst.Distances) != want {
		return fmt.Errorf("%w: distances length must be size*size=%d (got %d)", ErrDimension, want, len(inst.Distances))
	}
	for i, v := range inst.Flows {
		if v < 0 {
			return fmt.Errorf("%w: flow[%d][%d]=%d", ErrNegativeValue, i/inst.Size, i%inst.Size, v)
		}
	}
	for i, v := range inst.Distances {
		if v < 0 {
			return fmt.Errorf("%w: distance[%d][%d]=%d", ErrNegativeValue, i/inst.Size, i%inst.Size, v)
		}
	}
	return nil
}

func (inst *Instance) Flow(i, j int) int64 {
	return inst.Flows[i*inst.Size+j]
}

func (inst *Instance) Distance(a, b int) int64 {
	return inst.Distances[a*inst.Size+b]
}

// RandomInstance draws a symmetric instance with zero diagonals and entries in [minValue, maxValue].
func RandomInstance(size int, minValue, maxValue int64, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("random generator is nil")
	}
	if size < 0 || minValue < 0 || maxValue < minValue {
		panic("invalid instance bounds")
	}
	span := maxValue - minValue + 1
	draw := func() int64 {
		v := minValue
		if span > 1 {
			v += rng.Int63n(span)
		}
		return v
	}
	flows := make([]int64, size*size)
	dists := make([]int64, size*size)
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			f, d := draw(), draw()
			flows[i*size+j], flows[j*size+i] = f, f
			dists[i*size+j], dists[j*size+i] = d, d
		}
	}
	inst := &Instance{Size: size, Flows: flows, Distances: dists}
	if err := inst.Validate(); err != nil {
		panic(err)
	}
	return inst
}
