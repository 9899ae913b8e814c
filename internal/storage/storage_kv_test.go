package storage

import (
	"path/filepath"
	"testing"

	"whiskplan/internal/domain"
)

func exerciseKV(t *testing.T, kv domain.KeyValue) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		_, ok, err := kv.Get("absent")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Expected absent key to report not found")
		}
	})

	t.Run("SetAndGet", func(t *testing.T) {
		if err := kv.Set("snapshot", []byte(`{"a":1}`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		data, ok, err := kv.Get("snapshot")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || string(data) != `{"a":1}` {
			t.Errorf("Expected stored value back, got %q (%v)", data, ok)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := kv.Set("snapshot", []byte(`{"a":2}`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		data, _, err := kv.Get("snapshot")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(data) != `{"a":2}` {
			t.Errorf("Expected overwritten value, got %q", data)
		}
	})
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	kv := NewMemory()
	value := []byte("original")
	if err := kv.Set("k", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'X'

	data, _, _ := kv.Get("k")
	if string(data) != "original" {
		t.Errorf("Expected stored value isolated from caller mutation, got %q", data)
	}
}

func TestSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	exerciseKV(t, db)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Set("state", []byte("kept")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer reopened.Close()

	data, ok, err := reopened.Get("state")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || string(data) != "kept" {
		t.Errorf("Expected value to survive reopen, got %q (%v)", data, ok)
	}
}
