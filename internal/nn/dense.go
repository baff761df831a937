package nn

import (
	"errors"
	"fmt"
)

// Dense is a fully connected affine layer. Weights are row-major: one row
// per output unit, one column per input feature.
type Dense struct {
	weights [][]float64
	bias    []float64
	inputs  int
}

func NewDense(weights [][]float64, bias []float64) (*Dense, error) {
	if len(weights) == 0 {
		return nil, errors.New("dense layer requires at least one output unit")
	}
	inputs := len(weights[0])
	if inputs == 0 {
		return nil, errors.New("dense layer requires at least one input")
	}
	for j, row := range weights {
		if len(row) != inputs {
			return nil, fmt.Errorf("dense layer weight row %d has %d columns, want %d", j, len(row), inputs)
		}
	}
	if len(bias) != len(weights) {
		return nil, fmt.Errorf("dense layer has %d bias terms for %d output units", len(bias), len(weights))
	}

	copied := make([][]float64, len(weights))
	for j, row := range weights {
		copied[j] = append([]float64(nil), row...)
	}
	return &Dense{
		weights: copied,
		bias:    append([]float64(nil), bias...),
		inputs:  inputs,
	}, nil
}

func (d *Dense) InputDim() int  { return d.inputs }
func (d *Dense) OutputDim() int { return len(d.weights) }

// Apply computes bias[j] + sum_i weights[j][i]*in[i] for each output unit.
// The sum starts from the bias and accumulates columns in index order so
// results are bit-reproducible across runs.
func (d *Dense) Apply(in []float64) ([]float64, error) {
	if len(in) != d.inputs {
		return nil, fmt.Errorf("dense layer got %d inputs, want %d", len(in), d.inputs)
	}
	out := make([]float64, len(d.weights))
	for j, row := range d.weights {
		total := d.bias[j]
		for i, w := range row {
			total += w * in[i]
		}
		out[j] = total
	}
	return out, nil
}
