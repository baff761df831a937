package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Checkpoint is a trained melt-pond network: the scaler statistics for the
// 18 input features and 4 output quantities, plus the dense layers in
// evaluation order. Weights are stored row-major, one row per output unit.
type Checkpoint struct {
	VersionedRecord
	ID           string        `json:"id"`
	Description  string        `json:"description,omitempty"`
	CreatedAtUTC string        `json:"created_at_utc,omitempty"`
	FeatureMeans []float64     `json:"feature_means"`
	FeatureStds  []float64     `json:"feature_stds"`
	OutputMeans  []float64     `json:"output_means"`
	OutputStds   []float64     `json:"output_stds"`
	Layers       []LayerParams `json:"layers"`
}

type LayerParams struct {
	Activation string      `json:"activation"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
}

// RunRecord describes one batch evaluation over a forcing table.
type RunRecord struct {
	VersionedRecord
	ID             string `json:"id"`
	CheckpointID   string `json:"checkpoint_id"`
	InputPath      string `json:"input_path"`
	OutputPath     string `json:"output_path"`
	Rows           int    `json:"rows"`
	Workers        int    `json:"workers"`
	StartedAtUTC   string `json:"started_at_utc"`
	CompletedAtUTC string `json:"completed_at_utc"`
}
