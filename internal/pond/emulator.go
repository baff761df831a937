package pond

import (
	"fmt"

	"pondnet/internal/model"
	"pondnet/internal/nn"
)

// The training pipeline pinned the standardized minimum-ice-thickness
// column to this constant, and the shipped weights were fitted against it.
// Inference repeats the substitution verbatim, after the z-score loop and
// regardless of what that loop produced.
const (
	minIceThicknessOverride = 1.301043e-16
	minIceThicknessIndex    = 2
)

// Emulator evaluates one melt-pond checkpoint. All state is read-only
// after construction, so a single Emulator may serve concurrent callers
// without locking.
type Emulator struct {
	checkpointID string
	features     *nn.Scaler
	outputs      *nn.Scaler
	net          *nn.FeedForward
}

// New validates the checkpoint's shape against the 18-feature, 4-output
// contract and resolves its activations. Mismatched tables are a build or
// import defect, reported here rather than at inference time.
func New(cp model.Checkpoint) (*Emulator, error) {
	features, err := nn.NewScaler(cp.FeatureMeans, cp.FeatureStds)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: feature scaler: %w", cp.ID, err)
	}
	if features.Dim() != FeatureCount {
		return nil, fmt.Errorf("checkpoint %s: feature scaler has %d entries, want %d", cp.ID, features.Dim(), FeatureCount)
	}
	outputs, err := nn.NewScaler(cp.OutputMeans, cp.OutputStds)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: output scaler: %w", cp.ID, err)
	}
	if outputs.Dim() != OutputCount {
		return nil, fmt.Errorf("checkpoint %s: output scaler has %d entries, want %d", cp.ID, outputs.Dim(), OutputCount)
	}
	net, err := nn.NewFeedForward(cp.Layers)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", cp.ID, err)
	}
	if net.InputDim() != FeatureCount {
		return nil, fmt.Errorf("checkpoint %s: network takes %d inputs, want %d", cp.ID, net.InputDim(), FeatureCount)
	}
	if net.OutputDim() != OutputCount {
		return nil, fmt.Errorf("checkpoint %s: network produces %d outputs, want %d", cp.ID, net.OutputDim(), OutputCount)
	}
	return &Emulator{
		checkpointID: cp.ID,
		features:     features,
		outputs:      outputs,
		net:          net,
	}, nil
}

// Default returns an emulator over the compiled-in checkpoint.
func Default() *Emulator {
	em, err := New(DefaultCheckpoint())
	if err != nil {
		panic(err)
	}
	return em
}

// CheckpointID reports which checkpoint this emulator evaluates.
func (e *Emulator) CheckpointID() string { return e.checkpointID }

// Infer runs one forward pass: standardize, pin the minimum-ice-thickness
// column, two dense layers with their activations, de-standardize. Inputs
// are not range-checked; non-finite values flow through to the outputs.
func (e *Emulator) Infer(in Inputs) (Outputs, error) {
	scaled, err := e.features.Standardize(in.Vector())
	if err != nil {
		return Outputs{}, err
	}
	scaled[minIceThicknessIndex] = minIceThicknessOverride

	raw, err := e.net.Evaluate(scaled)
	if err != nil {
		return Outputs{}, err
	}
	final, err := e.outputs.Invert(raw)
	if err != nil {
		return Outputs{}, err
	}
	return outputsFromVector(final), nil
}
