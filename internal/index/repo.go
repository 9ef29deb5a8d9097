package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Name      string
	Title     string
	Checksum  string
	NodeCount int
	EdgeCount int
	Labels    []string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Sort orders accepted by ListDocuments.
const (
	SortUpdated = "updated"
	SortName    = "name"
	SortTitle   = "title"
)

var sortClauses = map[string]string{
	"":          "updated_at DESC, name",
	SortUpdated: "updated_at DESC, name",
	SortName:    "name",
	SortTitle:   "title COLLATE NOCASE, name",
}

// UpsertDocument inserts or replaces a document and its FTS entry within a
// transaction.
func (db *DB) UpsertDocument(d DocumentRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if d.Labels == nil {
		d.Labels = []string{}
	}
	labelsJSON, _ := json.Marshal(d.Labels)
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now()
	}

	_, err = tx.Exec(`
		INSERT INTO documents (name, title, checksum, node_count, edge_count, labels, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			node_count = excluded.node_count,
			edge_count = excluded.edge_count,
			labels     = excluded.labels,
			updated_at = excluded.updated_at
	`, d.Name, d.Title, d.Checksum, d.NodeCount, d.EdgeCount, string(labelsJSON), d.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, d.Name, d.Title, d.Labels); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDocument removes a document and its FTS entry.
func (db *DB) DeleteDocument(name string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, name)
	if _, err := tx.Exec(`DELETE FROM documents WHERE name = ?`, name); err != nil {
		return fmt.Errorf("index: delete document: %w", err)
	}

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a document, or empty string if
// not found.
func (db *DB) GetChecksum(name string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM documents WHERE name = ?`, name).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// GetDocument returns one catalog row, or nil if the name is not indexed.
func (db *DB) GetDocument(name string) (*DocumentRow, error) {
	row := db.conn.QueryRow(`
		SELECT name, title, checksum, node_count, edge_count, labels, updated_at
		FROM documents WHERE name = ?
	`, name)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get document: %w", err)
	}
	return &d, nil
}

// ErrUnknownSort is returned by ListDocuments for a sort key outside the
// supported set.
var ErrUnknownSort = errors.New("unknown sort")

// ListDocuments returns a page of catalog rows and the total row count.
func (db *DB) ListDocuments(limit, offset int, sort string) ([]DocumentRow, int, error) {
	order, ok := sortClauses[strings.ToLower(sort)]
	if !ok {
		return nil, 0, fmt.Errorf("index: %w %q", ErrUnknownSort, sort)
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count documents: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT name, title, checksum, node_count, edge_count, labels, updated_at
		FROM documents
		ORDER BY `+order+`
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	out := []DocumentRow{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// AllChecksums returns name → checksum for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT name, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var name, cs string
		if err := rows.Scan(&name, &cs); err != nil {
			return nil, err
		}
		out[name] = cs
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (DocumentRow, error) {
	var d DocumentRow
	var labels string
	if err := s.Scan(&d.Name, &d.Title, &d.Checksum, &d.NodeCount, &d.EdgeCount, &labels, &d.UpdatedAt); err != nil {
		return DocumentRow{}, err
	}
	if err := json.Unmarshal([]byte(labels), &d.Labels); err != nil || d.Labels == nil {
		d.Labels = []string{}
	}
	return d, nil
}
