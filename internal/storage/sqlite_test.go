//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"pondnet/internal/model"
)

func TestSQLiteStoreCheckpointAndRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "pondnet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	checkpoint := testCheckpoint("cp-sql")
	if err := store.SaveCheckpoint(ctx, checkpoint); err != nil {
		t.Fatalf("save checkpoint: %v", err)
	}

	loaded, ok, err := store.GetCheckpoint(ctx, checkpoint.ID)
	if err != nil {
		t.Fatalf("get checkpoint: %v", err)
	}
	if !ok {
		t.Fatalf("expected checkpoint %s", checkpoint.ID)
	}
	if loaded.ID != checkpoint.ID || len(loaded.Layers) != 1 || loaded.Layers[0].Bias[0] != 0.5 {
		t.Fatalf("unexpected checkpoint loaded: %+v", loaded)
	}

	// Overwrite with a changed description and re-read.
	checkpoint.Description = "revised"
	if err := store.SaveCheckpoint(ctx, checkpoint); err != nil {
		t.Fatalf("overwrite checkpoint: %v", err)
	}
	loaded, ok, err = store.GetCheckpoint(ctx, checkpoint.ID)
	if err != nil {
		t.Fatalf("get overwritten: %v", err)
	}
	if !ok || loaded.Description != "revised" {
		t.Fatalf("overwrite not visible: %+v", loaded)
	}

	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              "run-sql",
		CheckpointID:    checkpoint.ID,
		InputPath:       "forcing.csv",
		OutputPath:      "predictions.csv",
		Rows:            32,
		Workers:         2,
		StartedAtUTC:    "2026-02-01T10:00:00Z",
		CompletedAtUTC:  "2026-02-01T10:00:02Z",
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}
	loadedRun, ok, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatalf("expected run %s", run.ID)
	}
	if loadedRun.Rows != run.Rows || loadedRun.CheckpointID != run.CheckpointID {
		t.Fatalf("unexpected run loaded: %+v", loadedRun)
	}
}

func TestSQLiteStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "pondnet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	for _, id := range []string{"cp-b", "cp-a"} {
		if err := store.SaveCheckpoint(ctx, testCheckpoint(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	list, err := store.ListCheckpoints(ctx)
	if err != nil {
		t.Fatalf("list checkpoints: %v", err)
	}
	if len(list) != 2 || list[0].ID != "cp-a" || list[1].ID != "cp-b" {
		t.Fatalf("unexpected checkpoint list: %+v", list)
	}

	if err := store.DeleteCheckpoint(ctx, "cp-a"); err != nil {
		t.Fatalf("delete checkpoint: %v", err)
	}
	list, err = store.ListCheckpoints(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(list) != 1 || list[0].ID != "cp-b" {
		t.Fatalf("unexpected list after delete: %+v", list)
	}

	runs := []model.RunRecord{
		{VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}, ID: "run-old", StartedAtUTC: "2026-02-01T08:00:00Z"},
		{VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}, ID: "run-new", StartedAtUTC: "2026-02-01T12:00:00Z"},
	}
	for _, run := range runs {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save %s: %v", run.ID, err)
		}
	}
	runList, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runList) != 2 || runList[0].ID != "run-new" || runList[1].ID != "run-old" {
		t.Fatalf("unexpected run order: %+v", runList)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "pondnet.db")

	first := NewSQLiteStore(dbPath)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("first init: %v", err)
	}
	checkpoint := testCheckpoint("persisted-checkpoint")
	if err := first.SaveCheckpoint(ctx, checkpoint); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	second := NewSQLiteStore(dbPath)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	t.Cleanup(func() {
		_ = second.Close()
	})

	loaded, ok, err := second.GetCheckpoint(ctx, checkpoint.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !ok || loaded.ID != checkpoint.ID {
		t.Fatalf("expected persisted checkpoint, got ok=%t value=%+v", ok, loaded)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "pondnet.db"))
	if err := store.SaveCheckpoint(context.Background(), testCheckpoint("cp")); err == nil {
		t.Fatal("expected uninitialized store error")
	}
}
