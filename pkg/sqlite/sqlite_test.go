package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestDriverPragmas(t *testing.T) {
	db, err := sql.Open(DriverName, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("Failed to read journal_mode: %v", err)
	}
	if mode != "delete" {
		t.Errorf("journal_mode = %q, want delete", mode)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("Failed to read foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE vecs (id INTEGER PRIMARY KEY, embedding BLOB NOT NULL)`); err != nil {
		t.Fatal(err)
	}

	want := []float32{0.1, -2.5, 3, 0}
	if _, err := db.Exec(`INSERT INTO vecs (embedding) VALUES (?)`, EncodeVector(want)); err != nil {
		t.Fatal(err)
	}

	var blob []byte
	if err := db.QueryRow(`SELECT embedding FROM vecs`).Scan(&blob); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeVector(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeVectorRejectsTruncatedBlob(t *testing.T) {
	if _, err := DecodeVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated blob")
	}
}
