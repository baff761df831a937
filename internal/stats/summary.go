package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummarizeOutputs reduces per-row predictions to one OutputSummary per
// quantity. columns[k] holds every row's value for output k. Non-finite
// values are excluded from the statistics and reported via NonFinite;
// encoding/json rejects NaN and Inf.
func SummarizeOutputs(names []string, columns [][]float64) ([]OutputSummary, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("summary has %d names for %d columns", len(names), len(columns))
	}

	out := make([]OutputSummary, 0, len(names))
	for k, name := range names {
		finite := make([]float64, 0, len(columns[k]))
		nonFinite := 0
		for _, v := range columns[k] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				nonFinite++
				continue
			}
			finite = append(finite, v)
		}

		summary := OutputSummary{Name: name, NonFinite: nonFinite}
		if len(finite) > 0 {
			sort.Float64s(finite)
			summary.Mean = stat.Mean(finite, nil)
			summary.Min = floats.Min(finite)
			summary.Max = floats.Max(finite)
			summary.P05 = stat.Quantile(0.05, stat.Empirical, finite, nil)
			summary.P50 = stat.Quantile(0.50, stat.Empirical, finite, nil)
			summary.P95 = stat.Quantile(0.95, stat.Empirical, finite, nil)
			if len(finite) > 1 {
				summary.Std = stat.StdDev(finite, nil)
			}
		}
		out = append(out, summary)
	}
	return out, nil
}
