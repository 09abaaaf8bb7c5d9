package data

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "leitor-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	db, err := InitDuckDB(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to init DB: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return NewStore(db), cleanup
}

func TestInitDuckDBCreatesTables(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var tableCount int
	err := store.db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name IN ('prefs', 'snapshots')`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if tableCount != 2 {
		t.Errorf("Expected 2 tables, got %d", tableCount)
	}
}

func TestPrefs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, ok, err := store.GetPref("missing")
	if err != nil {
		t.Fatalf("GetPref failed: %v", err)
	}
	if ok {
		t.Error("Expected missing pref to report ok=false")
	}

	if err := store.SetPref("auth.refresh_token", "abc"); err != nil {
		t.Fatalf("SetPref failed: %v", err)
	}
	// overwrite replaces, never duplicates
	if err := store.SetPref("auth.refresh_token", "def"); err != nil {
		t.Fatalf("SetPref overwrite failed: %v", err)
	}

	v, ok, err := store.GetPref("auth.refresh_token")
	if err != nil || !ok {
		t.Fatalf("GetPref failed: ok=%v err=%v", ok, err)
	}
	if v != "def" {
		t.Errorf("Expected 'def', got %q", v)
	}

	if err := store.DeletePref("auth.refresh_token"); err != nil {
		t.Fatalf("DeletePref failed: %v", err)
	}
	_, ok, _ = store.GetPref("auth.refresh_token")
	if ok {
		t.Error("Expected pref to be gone after delete")
	}
}

func TestTutorialFlag(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if store.TutorialSeen() {
		t.Error("Tutorial should not be marked seen on a fresh store")
	}
	if err := store.MarkTutorialSeen(); err != nil {
		t.Fatalf("MarkTutorialSeen failed: %v", err)
	}
	if !store.TutorialSeen() {
		t.Error("Tutorial should be marked seen")
	}
}

func TestSnapshotOverwrite(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, ok, err := store.LoadSnapshot("updates")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if ok {
		t.Error("Expected no snapshot on a fresh store")
	}

	if err := store.SaveSnapshot("updates", []byte(`[{"ID":1}]`)); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := store.SaveSnapshot("updates", []byte(`[{"ID":2}]`)); err != nil {
		t.Fatalf("SaveSnapshot overwrite failed: %v", err)
	}

	payload, ok, err := store.LoadSnapshot("updates")
	if err != nil || !ok {
		t.Fatalf("LoadSnapshot failed: ok=%v err=%v", ok, err)
	}
	if string(payload) != `[{"ID":2}]` {
		t.Errorf("Expected last write to win, got %s", payload)
	}

	// snapshots are per view key
	_, ok, _ = store.LoadSnapshot("catalog")
	if ok {
		t.Error("Snapshot for another view should not exist")
	}
}
