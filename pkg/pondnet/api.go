// Package pondnet is the embedding surface for the melt-pond emulator.
// It pairs the pure inference core with checkpoint storage, batch
// evaluation, and run artifact management.
package pondnet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pondnet/internal/dataset"
	"pondnet/internal/log"
	"pondnet/internal/model"
	"pondnet/internal/pond"
	"pondnet/internal/runner"
	"pondnet/internal/stats"
	"pondnet/internal/storage"
)

const (
	defaultRunsDir    = "runs"
	defaultExportsDir = "exports"
	defaultDBPath     = "pondnet.db"
)

type Options struct {
	StoreKind  string
	DBPath     string
	RunsDir    string
	ExportsDir string
}

type Client struct {
	store       storage.Store
	storeKind   string
	initialized bool

	runsDir    string
	exportsDir string
}

type InferRequest struct {
	CheckpointID string
	Inputs       pond.Inputs
}

type InferResult struct {
	CheckpointID string
	Outputs      pond.Outputs
}

type BatchRequest struct {
	CheckpointID string
	InputPath    string
	OutputPath   string
	Workers      int
}

type BatchSummary struct {
	RunID        string
	CheckpointID string
	ArtifactsDir string
	OutputPath   string
	Rows         int
	Workers      int
	Outputs      []stats.OutputSummary
}

type VerifySummary struct {
	CheckpointID string
	Tolerance    float64
	Results      []pond.VerifyResult
	Passed       bool
}

type CheckpointItem struct {
	ID           string
	Description  string
	CreatedAtUTC string
	Features     int
	Outputs      int
	Layers       int
}

type ImportCheckpointRequest struct {
	Path string
}

type ExportCheckpointRequest struct {
	ID   string
	Path string
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	StartedAtUTC string
	CheckpointID string
	Rows         int
	Workers      int
}

type RunShowRequest struct {
	RunID  string
	Latest bool
}

type RunDetail struct {
	Record  model.RunRecord
	Summary *stats.RunSummary
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

type GenerateForcingRequest struct {
	Path string
	Rows int
	Seed int64
}

type GenerateForcingSummary struct {
	Path string
	Rows int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	runsDir := opts.RunsDir
	if runsDir == "" {
		runsDir = defaultRunsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		storeKind:  storeKind,
		runsDir:    runsDir,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Init initializes the store and seeds the compiled-in checkpoint if the
// store does not hold it yet. Every operation calls this lazily, so
// callers only need it when they want the failure early.
func (c *Client) Init(ctx context.Context) error {
	return c.ensureStore(ctx)
}

func (c *Client) Infer(ctx context.Context, req InferRequest) (InferResult, error) {
	em, err := c.resolveEmulator(ctx, req.CheckpointID)
	if err != nil {
		return InferResult{}, err
	}
	outputs, err := em.Infer(req.Inputs)
	if err != nil {
		return InferResult{}, err
	}
	return InferResult{CheckpointID: em.CheckpointID(), Outputs: outputs}, nil
}

func (c *Client) Batch(ctx context.Context, req BatchRequest) (BatchSummary, error) {
	if req.InputPath == "" {
		return BatchSummary{}, errors.New("batch requires an input path")
	}
	if req.Workers <= 0 {
		req.Workers = 4
	}

	em, err := c.resolveEmulator(ctx, req.CheckpointID)
	if err != nil {
		return BatchSummary{}, err
	}

	inputs, err := dataset.ReadForcingFile(req.InputPath)
	if err != nil {
		return BatchSummary{}, err
	}
	if len(inputs) == 0 {
		return BatchSummary{}, fmt.Errorf("forcing table %s has no rows", req.InputPath)
	}

	pool, err := runner.NewPool(runner.Config{Emulator: em, Workers: req.Workers})
	if err != nil {
		return BatchSummary{}, err
	}

	started := time.Now().UTC()
	runID := fmt.Sprintf("%s-%d", em.CheckpointID(), started.Unix())

	outputs, err := pool.EvaluateBatch(ctx, inputs)
	if err != nil {
		return BatchSummary{}, err
	}
	completed := time.Now().UTC()

	columns := make([][]float64, pond.OutputCount)
	for j := range columns {
		columns[j] = make([]float64, len(outputs))
	}
	for i, out := range outputs {
		for j, value := range out.Vector() {
			columns[j][i] = value
		}
	}
	summaries, err := stats.SummarizeOutputs(pond.OutputNames(), columns)
	if err != nil {
		return BatchSummary{}, err
	}

	runDir, err := stats.WriteRunArtifacts(c.runsDir, stats.RunArtifacts{
		Config: stats.RunConfig{
			RunID:        runID,
			CheckpointID: em.CheckpointID(),
			InputPath:    req.InputPath,
			OutputPath:   req.OutputPath,
			Workers:      req.Workers,
			StoreKind:    c.storeKind,
			StartedAtUTC: started.Format(time.RFC3339Nano),
		},
		Summary: stats.RunSummary{
			RunID:          runID,
			CheckpointID:   em.CheckpointID(),
			Rows:           len(inputs),
			Workers:        req.Workers,
			StartedAtUTC:   started.Format(time.RFC3339Nano),
			CompletedAtUTC: completed.Format(time.RFC3339Nano),
			Outputs:        summaries,
		},
	})
	if err != nil {
		return BatchSummary{}, err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(runDir, "predictions.csv")
	}
	if err := dataset.WriteResultsFile(outputPath, inputs, outputs); err != nil {
		return BatchSummary{}, err
	}

	if err := stats.AppendRunIndex(c.runsDir, stats.RunIndexEntry{
		RunID:        runID,
		CheckpointID: em.CheckpointID(),
		Rows:         len(inputs),
		Workers:      req.Workers,
		CreatedAtUTC: started.Format(time.RFC3339Nano),
	}); err != nil {
		return BatchSummary{}, err
	}

	if err := c.store.SaveRun(ctx, model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:             runID,
		CheckpointID:   em.CheckpointID(),
		InputPath:      req.InputPath,
		OutputPath:     outputPath,
		Rows:           len(inputs),
		Workers:        req.Workers,
		StartedAtUTC:   started.Format(time.RFC3339Nano),
		CompletedAtUTC: completed.Format(time.RFC3339Nano),
	}); err != nil {
		return BatchSummary{}, err
	}

	log.Infow("batch complete",
		"run_id", runID,
		"checkpoint", em.CheckpointID(),
		"rows", len(inputs),
		"workers", req.Workers,
		"elapsed", completed.Sub(started).String(),
	)

	return BatchSummary{
		RunID:        runID,
		CheckpointID: em.CheckpointID(),
		ArtifactsDir: filepath.Clean(runDir),
		OutputPath:   outputPath,
		Rows:         len(inputs),
		Workers:      req.Workers,
		Outputs:      summaries,
	}, nil
}

func (c *Client) Verify(ctx context.Context, checkpointID string) (VerifySummary, error) {
	em, err := c.resolveEmulator(ctx, checkpointID)
	if err != nil {
		return VerifySummary{}, err
	}
	results, err := pond.Verify(em)
	if err != nil {
		return VerifySummary{}, err
	}
	passed := true
	for _, res := range results {
		if !res.Pass {
			passed = false
			break
		}
	}
	return VerifySummary{
		CheckpointID: em.CheckpointID(),
		Tolerance:    pond.VerifyTolerance,
		Results:      results,
		Passed:       passed,
	}, nil
}

func (c *Client) Checkpoints(ctx context.Context) ([]CheckpointItem, error) {
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	checkpoints, err := c.store.ListCheckpoints(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CheckpointItem, 0, len(checkpoints))
	for _, cp := range checkpoints {
		out = append(out, checkpointItem(cp))
	}
	return out, nil
}

func (c *Client) Checkpoint(ctx context.Context, id string) (CheckpointItem, error) {
	if id == "" {
		id = pond.DefaultCheckpointID
	}
	if err := c.ensureStore(ctx); err != nil {
		return CheckpointItem{}, err
	}
	cp, ok, err := c.store.GetCheckpoint(ctx, id)
	if err != nil {
		return CheckpointItem{}, err
	}
	if !ok {
		return CheckpointItem{}, fmt.Errorf("checkpoint not found: %s", id)
	}
	return checkpointItem(cp), nil
}

func (c *Client) ImportCheckpoint(ctx context.Context, req ImportCheckpointRequest) (CheckpointItem, error) {
	if req.Path == "" {
		return CheckpointItem{}, errors.New("import requires a checkpoint path")
	}
	if err := c.ensureStore(ctx); err != nil {
		return CheckpointItem{}, err
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return CheckpointItem{}, err
	}
	cp, err := storage.DecodeCheckpoint(data)
	if err != nil {
		return CheckpointItem{}, err
	}
	if _, err := pond.New(cp); err != nil {
		return CheckpointItem{}, err
	}
	if err := c.store.SaveCheckpoint(ctx, cp); err != nil {
		return CheckpointItem{}, err
	}
	log.Infow("checkpoint imported", "id", cp.ID, "path", req.Path)
	return checkpointItem(cp), nil
}

func (c *Client) ExportCheckpoint(ctx context.Context, req ExportCheckpointRequest) (CheckpointItem, error) {
	if req.Path == "" {
		return CheckpointItem{}, errors.New("export requires an output path")
	}
	id := req.ID
	if id == "" {
		id = pond.DefaultCheckpointID
	}
	if err := c.ensureStore(ctx); err != nil {
		return CheckpointItem{}, err
	}

	cp, ok, err := c.store.GetCheckpoint(ctx, id)
	if err != nil {
		return CheckpointItem{}, err
	}
	if !ok {
		return CheckpointItem{}, fmt.Errorf("checkpoint not found: %s", id)
	}

	data, err := storage.EncodeCheckpoint(cp)
	if err != nil {
		return CheckpointItem{}, err
	}
	if dir := filepath.Dir(req.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return CheckpointItem{}, err
		}
	}
	if err := os.WriteFile(req.Path, data, 0o644); err != nil {
		return CheckpointItem{}, err
	}
	return checkpointItem(cp), nil
}

// DeleteCheckpoint removes an imported checkpoint from the store. The
// compiled-in checkpoint cannot be deleted.
func (c *Client) DeleteCheckpoint(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete requires a checkpoint id")
	}
	if id == pond.DefaultCheckpointID {
		return fmt.Errorf("cannot delete built-in checkpoint: %s", id)
	}
	if err := c.ensureStore(ctx); err != nil {
		return err
	}
	return c.store.DeleteCheckpoint(ctx, id)
}

// Runs lists run records from the store, newest first. The artifact
// index under the runs directory is a per-machine convenience; the
// store is the system of record.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}

	records, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > req.Limit {
		records = records[:req.Limit]
	}

	out := make([]RunItem, 0, len(records))
	for _, r := range records {
		out = append(out, RunItem{
			RunID:        r.ID,
			StartedAtUTC: r.StartedAtUTC,
			CheckpointID: r.CheckpointID,
			Rows:         r.Rows,
			Workers:      r.Workers,
		})
	}
	return out, nil
}

func (c *Client) Run(ctx context.Context, req RunShowRequest) (RunDetail, error) {
	if req.RunID != "" && req.Latest {
		return RunDetail{}, errors.New("use either run id or latest")
	}

	runID := req.RunID
	if req.Latest {
		entries, err := stats.ListRunIndex(c.runsDir)
		if err != nil {
			return RunDetail{}, err
		}
		if len(entries) == 0 {
			return RunDetail{}, errors.New("no runs available")
		}
		runID = entries[0].RunID
	}
	if runID == "" {
		return RunDetail{}, errors.New("run requires run id or latest")
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunDetail{}, err
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return RunDetail{}, err
	}
	if !ok {
		return RunDetail{}, fmt.Errorf("run not found: %s", runID)
	}

	detail := RunDetail{Record: record}
	summary, ok, err := stats.ReadRunSummary(c.runsDir, runID)
	if err != nil {
		return RunDetail{}, err
	}
	if ok {
		detail.Summary = &summary
	}
	return detail, nil
}

func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	if req.RunID != "" && req.Latest {
		return ExportSummary{}, errors.New("use either run id or latest")
	}
	if req.RunID == "" && !req.Latest {
		return ExportSummary{}, errors.New("export requires run id or latest")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	runID := req.RunID
	if req.Latest {
		entries, err := stats.ListRunIndex(c.runsDir)
		if err != nil {
			return ExportSummary{}, err
		}
		if len(entries) == 0 {
			return ExportSummary{}, errors.New("no runs available to export")
		}
		runID = entries[0].RunID
	}

	exportedDir, err := stats.ExportRunArtifacts(c.runsDir, runID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

func (c *Client) GenerateForcing(_ context.Context, req GenerateForcingRequest) (GenerateForcingSummary, error) {
	if req.Path == "" {
		return GenerateForcingSummary{}, errors.New("generate requires an output path")
	}
	if req.Rows <= 0 {
		req.Rows = 1024
	}
	rows, err := dataset.GenerateForcingFile(req.Path, req.Seed, req.Rows)
	if err != nil {
		return GenerateForcingSummary{}, err
	}
	return GenerateForcingSummary{Path: req.Path, Rows: rows}, nil
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	_, ok, err := c.store.GetCheckpoint(ctx, pond.DefaultCheckpointID)
	if err != nil {
		return err
	}
	if !ok {
		if err := c.store.SaveCheckpoint(ctx, pond.DefaultCheckpoint()); err != nil {
			return err
		}
	}
	c.initialized = true
	return nil
}

func (c *Client) resolveEmulator(ctx context.Context, id string) (*pond.Emulator, error) {
	if id == "" {
		id = pond.DefaultCheckpointID
	}
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	cp, ok, err := c.store.GetCheckpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("checkpoint not found: %s", id)
	}
	return pond.New(cp)
}

func checkpointItem(cp model.Checkpoint) CheckpointItem {
	return CheckpointItem{
		ID:           cp.ID,
		Description:  cp.Description,
		CreatedAtUTC: cp.CreatedAtUTC,
		Features:     len(cp.FeatureMeans),
		Outputs:      len(cp.OutputMeans),
		Layers:       len(cp.Layers),
	}
}
