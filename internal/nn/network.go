package nn

import (
	"errors"
	"fmt"

	"pondnet/internal/model"
)

// FeedForward is an immutable stack of dense layers with their activation
// functions resolved up front. Evaluation allocates only the per-layer
// output slices, so a single FeedForward is safe to share across
// goroutines.
type FeedForward struct {
	layers      []*Dense
	activations []ActivationFunc
}

func NewFeedForward(layers []model.LayerParams) (*FeedForward, error) {
	if len(layers) == 0 {
		return nil, errors.New("network requires at least one layer")
	}

	ff := &FeedForward{
		layers:      make([]*Dense, 0, len(layers)),
		activations: make([]ActivationFunc, 0, len(layers)),
	}
	for li, lp := range layers {
		dense, err := NewDense(lp.Weights, lp.Bias)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", li, err)
		}
		if li > 0 {
			prev := ff.layers[li-1].OutputDim()
			if dense.InputDim() != prev {
				return nil, fmt.Errorf("layer %d expects %d inputs but layer %d produces %d", li, dense.InputDim(), li-1, prev)
			}
		}
		fn, err := GetActivation(lp.Activation)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", li, err)
		}
		ff.layers = append(ff.layers, dense)
		ff.activations = append(ff.activations, fn)
	}
	return ff, nil
}

func (f *FeedForward) InputDim() int  { return f.layers[0].InputDim() }
func (f *FeedForward) OutputDim() int { return f.layers[len(f.layers)-1].OutputDim() }

// Evaluate runs the layer stack over one feature vector. The input slice is
// not modified.
func (f *FeedForward) Evaluate(in []float64) ([]float64, error) {
	cur := in
	for li, dense := range f.layers {
		out, err := dense.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", li, err)
		}
		fn := f.activations[li]
		for i, v := range out {
			out[i] = fn(v)
		}
		cur = out
	}
	return cur, nil
}
