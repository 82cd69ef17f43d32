package qap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var ErrMalformedInput = errors.New("qap: malformed instance file")

// ReadInstance parses the QAPLIB layout: the size n, then n*n flow values and
// n*n distance values. Any run of whitespace, including blank lines, separates values.
func ReadInstance(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func(what string) (int64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformedInput, what)
		}
		v, err := strconv.ParseInt(sc.Text(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrMalformedInput, what, err)
		}
		return v, nil
	}

	size, err := next("size")
	if err != nil {
		return nil, err
	}
	if size < 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: size must be in [0, %d] (got %d)", ErrMalformedInput, MaxSize, size)
	}
	n := int(size)

	// A row is allocated only after its first value has been read.
	readMatrix := func(name string) ([][]int64, error) {
		var m [][]int64
		for i := 0; i < n; i++ {
			var row []int64
			for j := 0; j < n; j++ {
				v, err := next(fmt.Sprintf("%s[%d][%d]", name, i, j))
				if err != nil {
					return nil, err
				}
				if row == nil {
					row = make([]int64, 0, n)
				}
				row = append(row, v)
			}
			m = append(m, row)
		}
		return m, nil
	}

	flow, err := readMatrix("flow")
	if err != nil {
		return nil, err
	}
	dist, err := readMatrix("distance")
	if err != nil {
		return nil, err
	}
	return NewInstance(flow, dist)
}

func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := ReadInstance(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}
