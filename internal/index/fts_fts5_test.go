//go:build sqlite_fts5

package index

import (
	"testing"
	"time"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents_fts`).Scan(&count); err != nil {
		t.Fatalf("documents_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := DocumentRow{
		Name:      "fts",
		Title:     "Payments",
		Checksum:  "f1",
		Labels:    []string{"Gateway", "Ledger"},
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertDocument(row); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	results, err := db.Search("ledger", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Name != "fts" {
		t.Errorf("name = %q", results[0].Name)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Name: "gone", Checksum: "g", Labels: []string{"vanishing"}, UpdatedAt: time.Now()})
	_ = db.DeleteDocument("gone")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.Name == "gone" {
			t.Error("deleted document still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDocument(DocumentRow{Name: "evo", Title: "Old", Checksum: "1", Labels: []string{"original"}, UpdatedAt: now})
	_ = db.UpsertDocument(DocumentRow{Name: "evo", Title: "New", Checksum: "2", Labels: []string{"replacement"}, UpdatedAt: now})

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Title != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
