// Package documents saves canvases to the workspace and keeps the catalog in
// step with what is written.
package documents

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/canvas"
	"github.com/starford/canvas/internal/checksum"
	"github.com/starford/canvas/internal/index"
	"github.com/starford/canvas/internal/models"
	"github.com/starford/canvas/internal/storage"
)

// Detail is the full representation of a saved document.
type Detail struct {
	Name      string       `json:"name"`
	Title     string       `json:"title"`
	Checksum  string       `json:"checksum"`
	Labels    []string     `json:"labels"`
	Graph     models.Graph `json:"graph"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ListItem is a lightweight item in a list response.
type ListItem struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	Labels    []string  `json:"labels"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store storage.Provider
	db    index.DocumentIndex
	now   func() time.Time
}

// NewService creates a new document service.
func NewService(store storage.Provider, db index.DocumentIndex) *Service {
	return &Service{store: store, db: db, now: time.Now}
}

// Get reads and decodes a document.
func (s *Service) Get(_ context.Context, name string) (*Detail, error) {
	data, err := s.read(name)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(name, data)
}

// Create writes a new document and indexes it.
func (s *Service) Create(_ context.Context, name string, content []byte) (*Detail, error) {
	if _, err := canvas.DecodeDocument(content); err != nil {
		return nil, err
	}
	if _, err := s.store.Read(name); err == nil {
		return nil, apperr.New(apperr.KindAlreadyExists, "document %q already exists", name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return s.write(name, content)
}

// Save writes content under name, creating the document if needed. A
// non-empty ifMatch must equal the checksum of the stored document.
func (s *Service) Save(_ context.Context, name string, content []byte, ifMatch string) (*Detail, error) {
	if _, err := canvas.DecodeDocument(content); err != nil {
		return nil, err
	}
	existing, err := s.store.Read(name)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if ifMatch != "" {
			return nil, apperr.NotFound("document", name)
		}
	case err != nil:
		return nil, err
	case ifMatch != "" && !checksum.Match(ifMatch, existing):
		return nil, apperr.New(apperr.KindConflict, "document %q was modified", name)
	}
	return s.write(name, content)
}

// SaveGraph encodes g with title and saves it.
func (s *Service) SaveGraph(ctx context.Context, name, title string, g models.Graph, ifMatch string) (*Detail, error) {
	data, err := canvas.EncodeDocument(title, g)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, name, data, ifMatch)
}

// Delete removes a document from storage and index.
func (s *Service) Delete(_ context.Context, name string) error {
	if err := s.store.Delete(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.NotFound("document", name)
		}
		return err
	}
	return s.db.DeleteDocument(name)
}

// Rename moves a document to a new name.
func (s *Service) Rename(_ context.Context, oldName, newName string) (*Detail, error) {
	data, err := s.read(oldName)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Read(newName); err == nil {
		return nil, apperr.New(apperr.KindAlreadyExists, "document %q already exists", newName)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := s.store.Rename(oldName, newName); err != nil {
		return nil, err
	}
	if err := s.db.DeleteDocument(oldName); err != nil {
		return nil, err
	}
	if err := index.IndexDocument(s.db, newName, data, s.now()); err != nil {
		return nil, err
	}
	return s.buildDetail(newName, data)
}

// List returns a page of catalogued documents.
func (s *Service) List(_ context.Context, limit, offset int, sort string) ([]ListItem, int, error) {
	rows, total, err := s.db.ListDocuments(limit, offset, sort)
	if errors.Is(err, index.ErrUnknownSort) {
		return nil, 0, apperr.Wrap(apperr.KindValidationFailed, err, "%s", err.Error())
	}
	if err != nil {
		return nil, 0, err
	}
	items := make([]ListItem, len(rows))
	for i, r := range rows {
		items[i] = ListItem{
			Name:      r.Name,
			Title:     r.Title,
			Checksum:  r.Checksum,
			NodeCount: r.NodeCount,
			EdgeCount: r.EdgeCount,
			Labels:    nonNilSlice(r.Labels),
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	if query == "" {
		return nil, apperr.Validation("search query must not be empty")
	}
	return s.db.Search(query, limit)
}

func (s *Service) read(name string) ([]byte, error) {
	data, err := s.store.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.NotFound("document", name)
		}
		return nil, err
	}
	return data, nil
}

func (s *Service) write(name string, content []byte) (*Detail, error) {
	if err := s.store.Write(name, content); err != nil {
		return nil, err
	}
	if err := index.IndexDocument(s.db, name, content, s.now()); err != nil {
		return nil, err
	}
	return s.buildDetail(name, content)
}

// buildDetail constructs a Detail from raw data without re-reading the file.
func (s *Service) buildDetail(name string, data []byte) (*Detail, error) {
	doc, err := canvas.DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	title := doc.Title
	if title == "" {
		title = name
	}
	updated := s.now()
	if row, err := s.db.GetDocument(name); err == nil && row != nil {
		updated = row.UpdatedAt
	}
	return &Detail{
		Name:      name,
		Title:     title,
		Checksum:  checksum.Sum(data),
		Labels:    doc.Labels(),
		Graph:     doc.Graph,
		UpdatedAt: updated,
	}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
