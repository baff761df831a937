package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pondnet/internal/dataset"
	"pondnet/internal/log"
	"pondnet/internal/model"
	"pondnet/internal/pond"
	"pondnet/internal/stats"
	"pondnet/internal/storage"
	pondapi "pondnet/pkg/pondnet"
)

const (
	runsDir    = "runs"
	exportsDir = "exports"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	if err := log.Init(*debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err := run(context.Background(), flag.Args())
	log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "infer":
		return runInfer(ctx, args[1:])
	case "batch":
		return runBatch(ctx, args[1:])
	case "verify":
		return runVerify(ctx, args[1:])
	case "gen-forcing":
		return runGenForcing(ctx, args[1:])
	case "checkpoints":
		return runCheckpoints(ctx, args[1:])
	case "checkpoint":
		return runCheckpoint(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s checkpoint=%s\n", *storeKind, pond.DefaultCheckpointID)
	return nil
}

func runInfer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional forcing config JSON path")
	checkpointID := fs.String("checkpoint", "", "checkpoint id (empty uses the compiled-in checkpoint)")
	dt := fs.Float64("dt", 3600, "timestep length in seconds")
	iceLayers := fs.Int("n-ice-layers", 7, "ice layer count")
	minIceThickness := fs.Float64("min-ice-thickness", 0.01, "minimum ice thickness in m")
	waterRetainFraction := fs.Float64("water-retain-fraction", 0, "retained meltwater fraction")
	topMeltRate := fs.Float64("top-melt-rate", 0, "top ice melt rate in m/s")
	snowMeltRate := fs.Float64("snow-melt-rate", 0, "snow melt rate in m/s")
	rainRate := fs.Float64("rain-rate", 0, "rainfall rate in m/s")
	airTemperature := fs.Float64("air-temperature", 0, "air temperature in K")
	surfaceHeatFlux := fs.Float64("surface-heat-flux", 0, "surface heat flux in W/m2")
	snowIceDepthDiff := fs.Float64("snow-ice-depth-diff", 0, "snow depth minus ice freeboard in m")
	iceAreaFraction := fs.Float64("ice-area-fraction", 0, "ice area fraction")
	iceVolume := fs.Float64("ice-volume", 0, "ice volume per unit area in m")
	snowVolume := fs.Float64("snow-volume", 0, "snow volume per unit area in m")
	surfaceTemperature := fs.Float64("surface-temperature", 0, "surface temperature in degC")
	levelIceFraction := fs.Float64("level-ice-fraction", 0, "level ice fraction")
	pondAreaFraction := fs.Float64("pond-area-fraction", 0, "current pond area fraction")
	pondDepth := fs.Float64("pond-depth", 0, "current pond depth in m")
	pondIceThickness := fs.Float64("pond-ice-thickness", 0, "current pond lid thickness in m")
	jsonOut := fs.Bool("json", false, "emit result as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultInferRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = pondapi.InferRequest{
			CheckpointID: *checkpointID,
			Inputs: pond.Inputs{
				Dt:                  *dt,
				IceLayers:           *iceLayers,
				MinIceThickness:     *minIceThickness,
				WaterRetainFraction: *waterRetainFraction,
				TopMeltRate:         *topMeltRate,
				SnowMeltRate:        *snowMeltRate,
				RainRate:            *rainRate,
				AirTemperature:      *airTemperature,
				SurfaceHeatFlux:     *surfaceHeatFlux,
				SnowIceDepthDiff:    *snowIceDepthDiff,
				IceAreaFraction:     *iceAreaFraction,
				IceVolume:           *iceVolume,
				SnowVolume:          *snowVolume,
				SurfaceTemperature:  *surfaceTemperature,
				LevelIceFraction:    *levelIceFraction,
				PondAreaFraction:    *pondAreaFraction,
				PondDepth:           *pondDepth,
				PondIceThickness:    *pondIceThickness,
			},
		}
	} else {
		overrideInferFromFlags(&req, setFlags, map[string]any{
			"checkpoint":            *checkpointID,
			"dt":                    *dt,
			"n-ice-layers":          *iceLayers,
			"min-ice-thickness":     *minIceThickness,
			"water-retain-fraction": *waterRetainFraction,
			"top-melt-rate":         *topMeltRate,
			"snow-melt-rate":        *snowMeltRate,
			"rain-rate":             *rainRate,
			"air-temperature":       *airTemperature,
			"surface-heat-flux":     *surfaceHeatFlux,
			"snow-ice-depth-diff":   *snowIceDepthDiff,
			"ice-area-fraction":     *iceAreaFraction,
			"ice-volume":            *iceVolume,
			"snow-volume":           *snowVolume,
			"surface-temperature":   *surfaceTemperature,
			"level-ice-fraction":    *levelIceFraction,
			"pond-area-fraction":    *pondAreaFraction,
			"pond-depth":            *pondDepth,
			"pond-ice-thickness":    *pondIceThickness,
		})
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	res, err := client.Infer(ctx, req)
	if err != nil {
		return err
	}
	if *jsonOut {
		out := struct {
			CheckpointID string       `json:"checkpoint_id"`
			Outputs      pond.Outputs `json:"outputs"`
		}{res.CheckpointID, res.Outputs}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("infer checkpoint=%s pond_area_fraction=%g pond_depth=%g pond_ice_thickness=%g flux_fraction=%g\n",
		res.CheckpointID,
		res.Outputs.PondAreaFraction,
		res.Outputs.PondDepth,
		res.Outputs.PondIceThickness,
		res.Outputs.MeltFluxFraction,
	)
	return nil
}

func runBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional batch config JSON path")
	inputPath := fs.String("in", "", "forcing CSV path")
	outputPath := fs.String("out", "", "predictions CSV path (empty writes into the run artifacts dir)")
	checkpointID := fs.String("checkpoint", "", "checkpoint id (empty uses the compiled-in checkpoint)")
	workers := fs.Int("workers", 4, "worker count")
	jsonOut := fs.Bool("json", false, "emit run summary as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultBatchRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = pondapi.BatchRequest{
			CheckpointID: *checkpointID,
			InputPath:    *inputPath,
			OutputPath:   *outputPath,
			Workers:      *workers,
		}
	} else {
		overrideBatchFromFlags(&req, setFlags, map[string]any{
			"checkpoint": *checkpointID,
			"in":         *inputPath,
			"out":        *outputPath,
			"workers":    *workers,
		})
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Batch(ctx, req)
	if err != nil {
		return err
	}
	if *jsonOut {
		out := struct {
			RunID        string                `json:"run_id"`
			CheckpointID string                `json:"checkpoint_id"`
			Rows         int                   `json:"rows"`
			Workers      int                   `json:"workers"`
			ArtifactsDir string                `json:"artifacts_dir"`
			OutputPath   string                `json:"output_path"`
			Outputs      []stats.OutputSummary `json:"outputs"`
		}{
			RunID:        summary.RunID,
			CheckpointID: summary.CheckpointID,
			Rows:         summary.Rows,
			Workers:      summary.Workers,
			ArtifactsDir: summary.ArtifactsDir,
			OutputPath:   summary.OutputPath,
			Outputs:      summary.Outputs,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("batch completed run_id=%s checkpoint=%s rows=%d workers=%d out=%s\n",
		summary.RunID,
		summary.CheckpointID,
		summary.Rows,
		summary.Workers,
		summary.OutputPath,
	)
	for _, o := range summary.Outputs {
		printOutputSummary(o)
	}
	fmt.Printf("artifacts_dir=%s\n", summary.ArtifactsDir)
	return nil
}

func runVerify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	checkpointID := fs.String("checkpoint", "", "checkpoint id (empty uses the compiled-in checkpoint)")
	jsonOut := fs.Bool("json", false, "emit verification results as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Verify(ctx, *checkpointID)
	if err != nil {
		return err
	}
	if *jsonOut {
		type verifyItem struct {
			Name       string  `json:"name"`
			MaxRelDiff float64 `json:"max_rel_diff"`
			Pass       bool    `json:"pass"`
		}
		items := make([]verifyItem, 0, len(summary.Results))
		for _, res := range summary.Results {
			items = append(items, verifyItem{Name: res.Name, MaxRelDiff: res.MaxRelDiff, Pass: res.Pass})
		}
		out := struct {
			CheckpointID string       `json:"checkpoint_id"`
			Tolerance    float64      `json:"tolerance"`
			Passed       bool         `json:"passed"`
			Cases        []verifyItem `json:"cases"`
		}{summary.CheckpointID, summary.Tolerance, summary.Passed, items}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		for _, res := range summary.Results {
			fmt.Printf("case=%s max_rel_diff=%g pass=%t\n", res.Name, res.MaxRelDiff, res.Pass)
		}
		fmt.Printf("verify checkpoint=%s tolerance=%g cases=%d passed=%t\n",
			summary.CheckpointID,
			summary.Tolerance,
			len(summary.Results),
			summary.Passed,
		)
	}
	if !summary.Passed {
		return fmt.Errorf("verification failed for checkpoint %s", summary.CheckpointID)
	}
	return nil
}

func runGenForcing(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("gen-forcing", flag.ContinueOnError)
	outputPath := fs.String("out", "", "forcing CSV output path")
	rows := fs.Int("rows", 1024, "row count")
	seed := fs.Int64("seed", 1, "rng seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outputPath == "" {
		return errors.New("gen-forcing requires --out")
	}

	written, err := dataset.GenerateForcingFile(*outputPath, *seed, *rows)
	if err != nil {
		return err
	}

	fmt.Printf("gen_forcing out=%s rows=%d seed=%d\n", *outputPath, written, *seed)
	return nil
}

func runCheckpoints(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkpoints", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit checkpoint list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	checkpoints, err := client.Checkpoints(ctx)
	if err != nil {
		return err
	}
	if len(checkpoints) == 0 {
		fmt.Println("no checkpoints found")
		return nil
	}
	if *jsonOut {
		type checkpointsItem struct {
			ID           string `json:"id"`
			Description  string `json:"description"`
			CreatedAtUTC string `json:"created_at_utc"`
			Features     int    `json:"features"`
			Outputs      int    `json:"outputs"`
			Layers       int    `json:"layers"`
		}
		items := make([]checkpointsItem, 0, len(checkpoints))
		for _, cp := range checkpoints {
			items = append(items, checkpointsItem{
				ID:           cp.ID,
				Description:  cp.Description,
				CreatedAtUTC: cp.CreatedAtUTC,
				Features:     cp.Features,
				Outputs:      cp.Outputs,
				Layers:       cp.Layers,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for _, cp := range checkpoints {
		fmt.Printf("checkpoint id=%s features=%d outputs=%d layers=%d created_at=%s description=%s\n",
			cp.ID,
			cp.Features,
			cp.Outputs,
			cp.Layers,
			cp.CreatedAtUTC,
			cp.Description,
		)
	}
	return nil
}

func runCheckpoint(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("checkpoint requires a subcommand: show|import|export|delete")
	}
	switch args[0] {
	case "show":
		return runCheckpointShow(ctx, args[1:])
	case "import":
		return runCheckpointImport(ctx, args[1:])
	case "export":
		return runCheckpointExport(ctx, args[1:])
	case "delete":
		return runCheckpointDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unsupported checkpoint subcommand: %s", args[0])
	}
}

func runCheckpointShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkpoint show", flag.ContinueOnError)
	id := fs.String("id", "", "checkpoint id (empty uses the compiled-in checkpoint)")
	jsonOut := fs.Bool("json", false, "emit checkpoint as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	cp, err := client.Checkpoint(ctx, *id)
	if err != nil {
		return err
	}
	if *jsonOut {
		out := struct {
			ID           string `json:"id"`
			Description  string `json:"description"`
			CreatedAtUTC string `json:"created_at_utc"`
			Features     int    `json:"features"`
			Outputs      int    `json:"outputs"`
			Layers       int    `json:"layers"`
		}{cp.ID, cp.Description, cp.CreatedAtUTC, cp.Features, cp.Outputs, cp.Layers}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("checkpoint id=%s features=%d outputs=%d layers=%d created_at=%s description=%s\n",
		cp.ID,
		cp.Features,
		cp.Outputs,
		cp.Layers,
		cp.CreatedAtUTC,
		cp.Description,
	)
	return nil
}

func runCheckpointImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkpoint import", flag.ContinueOnError)
	path := fs.String("path", "", "checkpoint JSON path")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("checkpoint import requires --path")
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	cp, err := client.ImportCheckpoint(ctx, pondapi.ImportCheckpointRequest{Path: *path})
	if err != nil {
		return err
	}
	fmt.Printf("checkpoint imported id=%s features=%d outputs=%d layers=%d\n", cp.ID, cp.Features, cp.Outputs, cp.Layers)
	return nil
}

func runCheckpointExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkpoint export", flag.ContinueOnError)
	id := fs.String("id", "", "checkpoint id (empty uses the compiled-in checkpoint)")
	outputPath := fs.String("out", "", "checkpoint JSON output path")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outputPath == "" {
		return errors.New("checkpoint export requires --out")
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	cp, err := client.ExportCheckpoint(ctx, pondapi.ExportCheckpointRequest{ID: *id, Path: *outputPath})
	if err != nil {
		return err
	}
	fmt.Printf("checkpoint exported id=%s to=%s\n", cp.ID, filepath.Clean(*outputPath))
	return nil
}

func runCheckpointDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkpoint delete", flag.ContinueOnError)
	id := fs.String("id", "", "checkpoint id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("checkpoint delete requires --id")
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.DeleteCheckpoint(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("checkpoint deleted id=%s\n", *id)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, pondapi.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		type runsItem struct {
			RunID        string `json:"run_id"`
			StartedAtUTC string `json:"started_at_utc"`
			CheckpointID string `json:"checkpoint_id"`
			Rows         int    `json:"rows"`
			Workers      int    `json:"workers"`
		}
		items := make([]runsItem, 0, len(runs))
		for _, r := range runs {
			items = append(items, runsItem{
				RunID:        r.RunID,
				StartedAtUTC: r.StartedAtUTC,
				CheckpointID: r.CheckpointID,
				Rows:         r.Rows,
				Workers:      r.Workers,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for _, r := range runs {
		fmt.Printf("run_id=%s started_at=%s checkpoint=%s rows=%d workers=%d\n",
			r.RunID,
			r.StartedAtUTC,
			r.CheckpointID,
			r.Rows,
			r.Workers,
		)
	}
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show the most recent run from run index")
	jsonOut := fs.Bool("json", false, "emit run detail as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pondnet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("run requires --run-id or --latest")
	}

	client, err := pondapi.New(pondapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	detail, err := client.Run(ctx, pondapi.RunShowRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}
	if *jsonOut {
		out := struct {
			Record  model.RunRecord   `json:"record"`
			Summary *stats.RunSummary `json:"summary,omitempty"`
		}{detail.Record, detail.Summary}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rec := detail.Record
	fmt.Printf("run_id=%s checkpoint=%s rows=%d workers=%d started_at=%s completed_at=%s in=%s out=%s\n",
		rec.ID,
		rec.CheckpointID,
		rec.Rows,
		rec.Workers,
		rec.StartedAtUTC,
		rec.CompletedAtUTC,
		rec.InputPath,
		rec.OutputPath,
	)
	if detail.Summary != nil {
		for _, o := range detail.Summary.Outputs {
			printOutputSummary(o)
		}
	}
	return nil
}

func runExport(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run from run index")
	outDir := fs.String("out", exportsDir, "export output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("export requires --run-id or --latest")
	}
	if *latest {
		entries, err := stats.ListRunIndex(runsDir)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return errors.New("no runs available to export")
		}
		*runID = entries[0].RunID
	}

	exportedDir, err := stats.ExportRunArtifacts(runsDir, *runID, *outDir)
	if err != nil {
		return err
	}

	fmt.Printf("exported run_id=%s to=%s\n", *runID, filepath.Clean(exportedDir))
	return nil
}

func printOutputSummary(o stats.OutputSummary) {
	fmt.Printf("output name=%s mean=%g std=%g min=%g max=%g p05=%g p50=%g p95=%g non_finite=%d\n",
		o.Name,
		o.Mean,
		o.Std,
		o.Min,
		o.Max,
		o.P05,
		o.P50,
		o.P95,
		o.NonFinite,
	)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: pondnetctl <init|infer|batch|verify|gen-forcing|checkpoints|checkpoint|runs|run|export> [flags]", msg)
}
