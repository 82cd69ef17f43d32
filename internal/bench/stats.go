package bench

import "gonum.org/v1/gonum/stat"

type Stats struct {
	N    int
	Best float64
	Mean float64
	Std  float64 // выборочное отклонение (n-1); 0 при N < 2
}

func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = values[0]
	for _, v := range values[1:] {
		if v < s.Best {
			s.Best = v
		}
	}
	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}

func CalcCostStats(values []int64) Stats {
	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}
	return CalcStats(fs)
}
