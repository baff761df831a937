//go:build sqlite

package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pondnet/internal/model"
	"pondnet/internal/stats"
)

func TestBatchCommandSQLitePersistsRuns(t *testing.T) {
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

	dbPath := filepath.Join(workdir, "pondnet.db")
	if err := run(context.Background(), []string{"init", "--store", "sqlite", "--db-path", dbPath}); err != nil {
		t.Fatalf("init command: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite db at %s: %v", dbPath, err)
	}

	if err := run(context.Background(), []string{"gen-forcing", "--out", "forcing.csv", "--rows", "6", "--seed", "11"}); err != nil {
		t.Fatalf("gen-forcing command: %v", err)
	}

	args := []string{
		"batch",
		"--store", "sqlite",
		"--db-path", dbPath,
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

	// The run record must survive into fresh CLI invocations.
	if err := run(context.Background(), []string{"run", "--store", "sqlite", "--db-path", dbPath, "--latest"}); err != nil {
		t.Fatalf("run command: %v", err)
	}
	if err := run(context.Background(), []string{"runs", "--store", "sqlite", "--db-path", dbPath}); err != nil {
		t.Fatalf("runs command: %v", err)
	}
	if err := run(context.Background(), []string{"run", "--store", "sqlite", "--db-path", dbPath, "--run-id", entries[0].RunID, "--json"}); err != nil {
		t.Fatalf("run json command: %v", err)
	}
}

func TestCheckpointCommandsSQLiteRoundTrip(t *testing.T) {
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

	dbPath := filepath.Join(workdir, "pondnet.db")
	if err := run(context.Background(), []string{"checkpoint", "export", "--store", "sqlite", "--db-path", dbPath, "--out", "cp.json"}); err != nil {
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
	cp.ID = "mpnn-retrain-9"
	modified, err := json.Marshal(cp)
	if err != nil {
		t.Fatalf("marshal modified checkpoint: %v", err)
	}
	if err := os.WriteFile("cp_retrain.json", modified, 0o644); err != nil {
		t.Fatalf("write modified checkpoint: %v", err)
	}

	if err := run(context.Background(), []string{"checkpoint", "import", "--store", "sqlite", "--db-path", dbPath, "--path", "cp_retrain.json"}); err != nil {
		t.Fatalf("checkpoint import command: %v", err)
	}
	if err := run(context.Background(), []string{"checkpoint", "show", "--store", "sqlite", "--db-path", dbPath, "--id", "mpnn-retrain-9"}); err != nil {
		t.Fatalf("checkpoint show command: %v", err)
	}
	if err := run(context.Background(), []string{"verify", "--store", "sqlite", "--db-path", dbPath, "--checkpoint", "mpnn-retrain-9"}); err != nil {
		t.Fatalf("verify command: %v", err)
	}

	if err := run(context.Background(), []string{"checkpoint", "delete", "--store", "sqlite", "--db-path", dbPath, "--id", "mpnn-retrain-9"}); err != nil {
		t.Fatalf("checkpoint delete command: %v", err)
	}
	err = run(context.Background(), []string{"checkpoint", "show", "--store", "sqlite", "--db-path", dbPath, "--id", "mpnn-retrain-9"})
	if err == nil || !strings.Contains(err.Error(), "checkpoint not found") {
		t.Fatalf("expected checkpoint not found after delete, got %v", err)
	}
}
