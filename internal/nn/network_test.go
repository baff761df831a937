package nn

import (
	"math"
	"testing"

	"pondnet/internal/model"
)

func TestFeedForwardTwoLayers(t *testing.T) {
	layers := []model.LayerParams{
		{
			Activation: "identity",
			Weights:    [][]float64{{2, 0}, {0, -1}},
			Bias:       []float64{0.5, 0},
		},
		{
			Activation: "identity",
			Weights:    [][]float64{{1, 1}},
			Bias:       []float64{-0.25},
		},
	}

	net, err := NewFeedForward(layers)
	if err != nil {
		t.Fatalf("new feed forward: %v", err)
	}
	if net.InputDim() != 2 || net.OutputDim() != 1 {
		t.Fatalf("unexpected dims: in=%d out=%d", net.InputDim(), net.OutputDim())
	}

	got, err := net.Evaluate([]float64{1.0, 0.25})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// layer 1: [2*1+0.5, -0.25] = [2.5, -0.25]; layer 2: 2.5-0.25-0.25 = 2.0
	want := 2.0
	if math.Abs(got[0]-want) > 1e-9 {
		t.Fatalf("unexpected output: got=%f want=%f", got[0], want)
	}
}

func TestFeedForwardAppliesActivationPerLayer(t *testing.T) {
	layers := []model.LayerParams{
		{
			Activation: "relu",
			Weights:    [][]float64{{1}, {1}},
			Bias:       []float64{-2, 2},
		},
		{
			Activation: "identity",
			Weights:    [][]float64{{1, 1}},
			Bias:       []float64{0},
		},
	}

	net, err := NewFeedForward(layers)
	if err != nil {
		t.Fatalf("new feed forward: %v", err)
	}
	got, err := net.Evaluate([]float64{1})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// relu clips -1 to 0, passes 3 through.
	if got[0] != 3 {
		t.Fatalf("unexpected output: got=%f want=3", got[0])
	}
}

func TestFeedForwardValidation(t *testing.T) {
	if _, err := NewFeedForward(nil); err == nil {
		t.Fatal("expected empty layer list error")
	}

	mismatch := []model.LayerParams{
		{Activation: "identity", Weights: [][]float64{{1, 1}}, Bias: []float64{0}},
		{Activation: "identity", Weights: [][]float64{{1, 1, 1}}, Bias: []float64{0}},
	}
	if _, err := NewFeedForward(mismatch); err == nil {
		t.Fatal("expected dimension chain error")
	}

	unknown := []model.LayerParams{
		{Activation: "not-an-activation", Weights: [][]float64{{1}}, Bias: []float64{0}},
	}
	if _, err := NewFeedForward(unknown); err == nil {
		t.Fatal("expected unknown activation error")
	}
}

func TestFeedForwardInputLength(t *testing.T) {
	layers := []model.LayerParams{
		{Activation: "identity", Weights: [][]float64{{1, 1}}, Bias: []float64{0}},
	}
	net, err := NewFeedForward(layers)
	if err != nil {
		t.Fatalf("new feed forward: %v", err)
	}
	if _, err := net.Evaluate([]float64{1}); err == nil {
		t.Fatal("expected input length error")
	}
}

func TestFeedForwardLeavesInputIntact(t *testing.T) {
	layers := []model.LayerParams{
		{Activation: "selu", Weights: [][]float64{{3, -2}}, Bias: []float64{0.5}},
	}
	net, err := NewFeedForward(layers)
	if err != nil {
		t.Fatalf("new feed forward: %v", err)
	}

	in := []float64{0.75, -1.5}
	if _, err := net.Evaluate(in); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if in[0] != 0.75 || in[1] != -1.5 {
		t.Fatalf("input slice was modified: %+v", in)
	}
}
