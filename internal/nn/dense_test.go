package nn

import "testing"

func TestNewDenseValidation(t *testing.T) {
	if _, err := NewDense(nil, nil); err == nil {
		t.Fatal("expected empty weights error")
	}
	if _, err := NewDense([][]float64{{}}, []float64{0}); err == nil {
		t.Fatal("expected empty row error")
	}
	if _, err := NewDense([][]float64{{1, 2}, {1}}, []float64{0, 0}); err == nil {
		t.Fatal("expected ragged weights error")
	}
	if _, err := NewDense([][]float64{{1, 2}}, []float64{0, 0}); err == nil {
		t.Fatal("expected bias length error")
	}
}

func TestDenseApply(t *testing.T) {
	dense, err := NewDense([][]float64{{1, 2, 3}, {0.5, 0, -0.5}}, []float64{1, -1})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	if dense.InputDim() != 3 || dense.OutputDim() != 2 {
		t.Fatalf("unexpected dims: in=%d out=%d", dense.InputDim(), dense.OutputDim())
	}

	got, err := dense.Apply([]float64{2, 1, 0.5})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// 1 + 2 + 2 + 1.5 = 6.5; -1 + 1 + 0 - 0.25 = -0.25
	if got[0] != 6.5 || got[1] != -0.25 {
		t.Fatalf("unexpected output: %+v", got)
	}
}

func TestDenseApplyInputLength(t *testing.T) {
	dense, err := NewDense([][]float64{{1, 1}}, []float64{0})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	if _, err := dense.Apply([]float64{1, 2, 3}); err == nil {
		t.Fatal("expected input length error")
	}
}

func TestDenseZeroWeightsReturnBiasExactly(t *testing.T) {
	bias := []float64{0.1, -2.75e-3, 3.3333333333333335}
	dense, err := NewDense([][]float64{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, bias)
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}

	got, err := dense.Apply([]float64{123.456, -9.5e8, 0.0, 7.25})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	for j := range bias {
		if got[j] != bias[j] {
			t.Fatalf("output %d: got=%v want=%v", j, got[j], bias[j])
		}
	}
}

func TestDenseApplyAccumulatesLeftToRight(t *testing.T) {
	// Walking columns in order, the big terms cancel before the unit term
	// lands: ((0 + 1e16) - 1e16) + 1 == 1. Folding from the right instead
	// absorbs the 1 into -1e16 and yields 0.
	dense, err := NewDense([][]float64{{1e16, -1e16, 1.0}}, []float64{0})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	got, err := dense.Apply([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got[0] != 1.0 {
		t.Fatalf("unexpected accumulation order: got=%v want=1", got[0])
	}
}

func TestDenseApplySeedsSumWithBias(t *testing.T) {
	// With the bias first the unit is absorbed by 1e16 before the
	// cancellation: ((1 + 1e16) - 1e16) == 0. Adding the bias last would
	// give 1.
	dense, err := NewDense([][]float64{{1e16, -1e16}}, []float64{1.0})
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}
	got, err := dense.Apply([]float64{1, 1})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got[0] != 0.0 {
		t.Fatalf("bias not seeding the accumulation: got=%v want=0", got[0])
	}
}

func TestDenseCopiesParameters(t *testing.T) {
	weights := [][]float64{{1, 2}}
	bias := []float64{3}
	dense, err := NewDense(weights, bias)
	if err != nil {
		t.Fatalf("new dense: %v", err)
	}

	weights[0][0] = 100
	bias[0] = 100

	got, err := dense.Apply([]float64{1, 1})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got[0] != 6 {
		t.Fatalf("layer shares caller memory: got=%v want=6", got[0])
	}
}
