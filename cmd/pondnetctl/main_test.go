package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pondnet/internal/model"
	"pondnet/internal/pond"
	"pondnet/internal/stats"
)

func TestRunRejectsMissingAndUnknownCommands(t *testing.T) {
	err := run(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "missing command") {
		t.Fatalf("expected missing command error, got %v", err)
	}

	err = run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: bogus") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestGenForcingBatchAndExportCreatesArtifacts(t *testing.T) {
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	workdir := t.TempDir()
	if err := os.Chdir(workdir); err != nil {
		t.Fatalf("chdir tempdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origWD)
	})

	if err := run(context.Background(), []string{"gen-forcing", "--out", "forcing.csv", "--rows", "8", "--seed", "7"}); err != nil {
		t.Fatalf("gen-forcing command: %v", err)
	}
	if _, err := os.Stat("forcing.csv"); err != nil {
		t.Fatalf("expected forcing table: %v", err)
	}

	args := []string{
		"batch",
		"--store", "memory",
		"--in", "forcing.csv",
		"--workers", "2",
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("batch command: %v", err)
	}

	entries, err := stats.ListRunIndex(runsDir)
	if err != nil {
		t.Fatalf("list run index: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one indexed run, got %d", len(entries))
	}
	if entries[0].Rows != 8 || entries[0].Workers != 2 {
		t.Fatalf("unexpected index entry: %+v", entries[0])
	}

	runID := entries[0].RunID
	for _, file := range []string{"config.json", "summary.json", "predictions.csv"} {
		path := filepath.Join(runsDir, runID, file)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected artifact %s: %v", path, err)
		}
	}

	predictions, err := os.ReadFile(filepath.Join(runsDir, runID, "predictions.csv"))
	if err != nil {
		t.Fatalf("read predictions: %v", err)
	}
	if lines := strings.Count(string(predictions), "\n"); lines != 9 {
		t.Fatalf("expected header plus 8 prediction rows, got %d lines", lines)
	}

	summary, ok, err := stats.ReadRunSummary(runsDir, runID)
	if err != nil {
		t.Fatalf("read run summary: %v", err)
	}
	if !ok {
		t.Fatal("expected run summary artifact")
	}
	if summary.Rows != 8 || len(summary.Outputs) != pond.OutputCount {
		t.Fatalf("unexpected run summary: %+v", summary)
	}

	if err := run(context.Background(), []string{"export", "--latest"}); err != nil {
		t.Fatalf("export command: %v", err)
	}
	for _, file := range []string{"config.json", "summary.json", "predictions.csv"} {
		path := filepath.Join(exportsDir, runID, file)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected exported artifact %s: %v", path, err)
		}
	}
}

func TestBatchCommandRequiresInputPath(t *testing.T) {
	err := run(context.Background(), []string{"batch", "--store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "input path") {
		t.Fatalf("expected input path error, got %v", err)
	}
}

func TestVerifyCommand(t *testing.T) {
	if err := run(context.Background(), []string{"verify", "--store", "memory"}); err != nil {
		t.Fatalf("verify command: %v", err)
	}
}

func TestInferCommandWithConfigAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "infer_config.json")
	payload := map[string]any{
		"forcing": map[string]any{
			"dt":                    3600,
			"n_ice_layers":          7,
			"min_ice_thickness":     0.01,
			"water_retain_fraction": 0.5,
			"air_temperature":       272.9,
			"surface_heat_flux":     21.2,
			"ice_area_fraction":     0.93,
			"ice_volume":            1.4,
			"surface_temperature":   -0.4,
			"level_ice_fraction":    0.7,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	args := []string{
		"infer",
		"--store", "memory",
		"--config", path,
		"--air-temperature", "270.1",
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("infer command: %v", err)
	}
}

func TestRunAndExportSelectorValidation(t *testing.T) {
	err := run(context.Background(), []string{"run", "--run-id", "x", "--latest", "--store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "not both") {
		t.Fatalf("expected selector conflict error, got %v", err)
	}

	err = run(context.Background(), []string{"run", "--store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "requires --run-id or --latest") {
		t.Fatalf("expected selector required error, got %v", err)
	}

	err = run(context.Background(), []string{"export"})
	if err == nil || !strings.Contains(err.Error(), "requires --run-id or --latest") {
		t.Fatalf("expected export selector error, got %v", err)
	}
}

func TestCheckpointCommands(t *testing.T) {
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	workdir := t.TempDir()
	if err := os.Chdir(workdir); err != nil {
		t.Fatalf("chdir tempdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origWD)
	})

	if err := run(context.Background(), []string{"checkpoint", "export", "--store", "memory", "--out", "cp.json"}); err != nil {
		t.Fatalf("checkpoint export command: %v", err)
	}
	data, err := os.ReadFile("cp.json")
	if err != nil {
		t.Fatalf("read exported checkpoint: %v", err)
	}
	var cp model.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		t.Fatalf("decode exported checkpoint: %v", err)
	}
	if cp.ID != pond.DefaultCheckpointID {
		t.Fatalf("unexpected exported checkpoint id: %s", cp.ID)
	}

	if err := run(context.Background(), []string{"checkpoint", "import", "--store", "memory", "--path", "cp.json"}); err != nil {
		t.Fatalf("checkpoint import command: %v", err)
	}

	if err := run(context.Background(), []string{"checkpoint", "show", "--store", "memory"}); err != nil {
		t.Fatalf("checkpoint show command: %v", err)
	}
	if err := run(context.Background(), []string{"checkpoints", "--store", "memory"}); err != nil {
		t.Fatalf("checkpoints command: %v", err)
	}

	err = run(context.Background(), []string{"checkpoint", "delete", "--store", "memory", "--id", pond.DefaultCheckpointID})
	if err == nil || !strings.Contains(err.Error(), "cannot delete built-in checkpoint") {
		t.Fatalf("expected built-in delete rejection, got %v", err)
	}

	err = run(context.Background(), []string{"checkpoint", "frobnicate"})
	if err == nil || !strings.Contains(err.Error(), "unsupported checkpoint subcommand") {
		t.Fatalf("expected unsupported subcommand error, got %v", err)
	}
}
