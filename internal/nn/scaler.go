package nn

import (
	"errors"
	"fmt"
)

// Scaler holds per-component mean and standard deviation for a z-score
// transform and its inverse.
type Scaler struct {
	means []float64
	stds  []float64
}

func NewScaler(means, stds []float64) (*Scaler, error) {
	if len(means) == 0 {
		return nil, errors.New("scaler requires at least one component")
	}
	if len(means) != len(stds) {
		return nil, fmt.Errorf("scaler has %d means for %d standard deviations", len(means), len(stds))
	}
	return &Scaler{
		means: append([]float64(nil), means...),
		stds:  append([]float64(nil), stds...),
	}, nil
}

func (s *Scaler) Dim() int { return len(s.means) }

// Standardize maps each component to (x - mean) / std. Components whose
// recorded standard deviation is zero map to 0.0 no matter the input,
// including NaN and Inf; the training pipeline froze those columns.
func (s *Scaler) Standardize(in []float64) ([]float64, error) {
	if len(in) != len(s.means) {
		return nil, fmt.Errorf("scaler got %d components, want %d", len(in), len(s.means))
	}
	out := make([]float64, len(in))
	for i, x := range in {
		if s.stds[i] == 0 {
			out[i] = 0.0
			continue
		}
		out[i] = (x - s.means[i]) / s.stds[i]
	}
	return out, nil
}

// Invert maps each component back to x*std + mean. No zero-variance guard
// applies on the way out.
func (s *Scaler) Invert(in []float64) ([]float64, error) {
	if len(in) != len(s.means) {
		return nil, fmt.Errorf("scaler got %d components, want %d", len(in), len(s.means))
	}
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = x*s.stds[i] + s.means[i]
	}
	return out, nil
}
