package bench

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{
	"algo", "size", "runs",
	"time_best_ms", "time_mean_ms", "time_std_ms",
	"cost_best", "cost_mean", "cost_std",
}

func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeCSV(f, records)
}

func EncodeCSV(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Algo,
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			strconv.FormatInt(r.CostBest, 10),
			ftoa(r.CostMean),
			ftoa(r.CostStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
