package store

import (
	"io/ioutil"
	"os"
	"testing"
)

func initBadgerStore(t *testing.T) *BadgerStore {
	os.RemoveAll("test_data")
	os.Mkdir("test_data", os.ModeDir|0777)
	dir, err := ioutil.TempDir("test_data", "badger")
	if err != nil {
		t.Fatal(err)
	}

	store, err := NewBadgerStore(100, dir)
	if err != nil {
		t.Fatal(err)
	}

	return store
}

func removeBadgerStore(store *BadgerStore, t *testing.T) {
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(store.path); err != nil {
		t.Fatal(err)
	}
}

func TestBadgerLedgerSurvivesRestart(t *testing.T) {
	store := initBadgerStore(t)
	path := store.StorePath()
	defer os.RemoveAll("test_data")

	ids := []uint64{1, 1 << 32, 1<<63 | 7}
	for _, id := range ids {
		if err := store.AddID(id); err != nil {
			t.Fatalf("AddID(%d) err: %v", id, err)
		}
	}
	if err := store.SetMessage(1, testEnvelope(1)); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}

	reloaded, err := LoadOrCreateBadgerStore(100, path)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer removeBadgerStore(reloaded, t)

	if c := reloaded.IDCount(); c != len(ids) {
		t.Fatalf("reloaded ledger should have %d ids, not %d", len(ids), c)
	}
	for _, id := range ids {
		ok, err := reloaded.HasID(id)
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if !ok {
			t.Fatalf("reloaded ledger should have %d", id)
		}
	}

	// the journal is not persisted
	if last := reloaded.LastMessage(); last != 0 {
		t.Fatalf("reloaded journal should be empty, LastMessage is %d", last)
	}
}

func TestLoadBadgerStoreMissingPath(t *testing.T) {
	if _, err := LoadBadgerStore(100, "test_data/does_not_exist"); err == nil {
		t.Fatalf("loading a missing database should fail")
	}
}
