package storage

import (
	"context"
	"sort"
	"sync"

	"pondnet/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	checkpoints map[string]model.Checkpoint
	runs        map[string]model.RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.checkpoints = make(map[string]model.Checkpoint)
	s.runs = make(map[string]model.RunRecord)
	return nil
}

func (s *MemoryStore) SaveCheckpoint(_ context.Context, checkpoint model.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkpoints[checkpoint.ID] = copyCheckpoint(checkpoint)
	return nil
}

func (s *MemoryStore) GetCheckpoint(_ context.Context, id string) (model.Checkpoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	checkpoint, ok := s.checkpoints[id]
	if !ok {
		return model.Checkpoint{}, false, nil
	}
	return copyCheckpoint(checkpoint), true, nil
}

func (s *MemoryStore) ListCheckpoints(_ context.Context) ([]model.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Checkpoint, 0, len(s.checkpoints))
	for _, checkpoint := range s.checkpoints {
		out = append(out, copyCheckpoint(checkpoint))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) DeleteCheckpoint(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.checkpoints, id)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAtUTC != out[j].StartedAtUTC {
			return out[i].StartedAtUTC > out[j].StartedAtUTC
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// copyCheckpoint detaches the nested parameter slices so stored snapshots
// cannot be mutated through the caller's copies.
func copyCheckpoint(checkpoint model.Checkpoint) model.Checkpoint {
	out := checkpoint
	out.FeatureMeans = append([]float64(nil), checkpoint.FeatureMeans...)
	out.FeatureStds = append([]float64(nil), checkpoint.FeatureStds...)
	out.OutputMeans = append([]float64(nil), checkpoint.OutputMeans...)
	out.OutputStds = append([]float64(nil), checkpoint.OutputStds...)
	out.Layers = make([]model.LayerParams, len(checkpoint.Layers))
	for li, layer := range checkpoint.Layers {
		weights := make([][]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			weights[j] = append([]float64(nil), row...)
		}
		out.Layers[li] = model.LayerParams{
			Activation: layer.Activation,
			Weights:    weights,
			Bias:       append([]float64(nil), layer.Bias...),
		}
	}
	return out
}
