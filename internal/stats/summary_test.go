package stats

import (
	"math"
	"testing"
)

func TestSummarizeOutputsBasic(t *testing.T) {
	summaries, err := SummarizeOutputs([]string{"pond_depth"}, [][]float64{{4.0, 1.0, 3.0, 2.0}})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	got := summaries[0]
	if got.Name != "pond_depth" {
		t.Fatalf("unexpected name: %q", got.Name)
	}
	if got.Mean != 2.5 {
		t.Fatalf("unexpected mean: %v", got.Mean)
	}
	if got.Min != 1.0 || got.Max != 4.0 {
		t.Fatalf("unexpected range: min=%v max=%v", got.Min, got.Max)
	}
	if got.P05 != 1.0 || got.P50 != 2.0 || got.P95 != 4.0 {
		t.Fatalf("unexpected quantiles: p05=%v p50=%v p95=%v", got.P05, got.P50, got.P95)
	}
	if math.Abs(got.Std-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Fatalf("unexpected std: %v", got.Std)
	}
	if got.NonFinite != 0 {
		t.Fatalf("unexpected non-finite count: %d", got.NonFinite)
	}
}

func TestSummarizeOutputsFiltersNonFinite(t *testing.T) {
	column := []float64{math.NaN(), 1.0, 3.0, math.Inf(1)}
	summaries, err := SummarizeOutputs([]string{"flux_fraction"}, [][]float64{column})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	got := summaries[0]
	if got.NonFinite != 2 {
		t.Fatalf("expected 2 non-finite values, got %d", got.NonFinite)
	}
	if got.Mean != 2.0 || got.Min != 1.0 || got.Max != 3.0 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if math.Abs(got.Std-math.Sqrt2) > 1e-12 {
		t.Fatalf("unexpected std: %v", got.Std)
	}
}

func TestSummarizeOutputsSingleValue(t *testing.T) {
	summaries, err := SummarizeOutputs([]string{"pond_area_fraction"}, [][]float64{{2.5}})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	got := summaries[0]
	if got.Mean != 2.5 || got.Min != 2.5 || got.Max != 2.5 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if got.P05 != 2.5 || got.P50 != 2.5 || got.P95 != 2.5 {
		t.Fatalf("unexpected quantiles: %+v", got)
	}
	if got.Std != 0.0 {
		t.Fatalf("expected zero std for a single value, got %v", got.Std)
	}
}

func TestSummarizeOutputsAllNonFinite(t *testing.T) {
	column := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	summaries, err := SummarizeOutputs([]string{"pond_ice_thickness"}, [][]float64{column})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	got := summaries[0]
	if got.NonFinite != 3 {
		t.Fatalf("expected 3 non-finite values, got %d", got.NonFinite)
	}
	if got.Mean != 0.0 || got.Std != 0.0 || got.Min != 0.0 || got.Max != 0.0 {
		t.Fatalf("expected zeroed stats, got %+v", got)
	}
}

func TestSummarizeOutputsLengthMismatch(t *testing.T) {
	if _, err := SummarizeOutputs([]string{"a", "b"}, [][]float64{{1.0}}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
