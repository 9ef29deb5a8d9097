package index

import (
	"log/slog"
	"time"

	"github.com/starford/canvas/internal/canvas"
	"github.com/starford/canvas/internal/checksum"
	"github.com/starford/canvas/internal/storage"
)

// Sync walks the workspace and brings the catalog up to date:
//   - new/changed documents are decoded and upserted
//   - documents removed from disk are deleted from the catalog
//
// Documents that fail to decode are logged and skipped.
func Sync(db DocumentIndex, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Name] = struct{}{}

		if checksums[m.Name] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Name)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("name", m.Name), slog.String("error", err.Error()))
			continue
		}
		if err := IndexDocument(db, m.Name, data, m.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("name", m.Name), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("name", m.Name))
		}
	}

	// Remove stale entries.
	for name := range checksums {
		if _, ok := disk[name]; !ok {
			if err := db.DeleteDocument(name); err != nil {
				logger.Warn("sync: delete failed", slog.String("name", name), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("name", name))
			}
		}
	}

	return nil
}

// IndexDocument decodes data and upserts it into the catalog. A document
// without a title is catalogued under its name.
func IndexDocument(db DocumentIndex, name string, data []byte, updatedAt time.Time) error {
	doc, err := canvas.DecodeDocument(data)
	if err != nil {
		return err
	}
	title := doc.Title
	if title == "" {
		title = name
	}
	return db.UpsertDocument(DocumentRow{
		Name:      name,
		Title:     title,
		Checksum:  checksum.Sum(data),
		NodeCount: len(doc.Graph.Nodes),
		EdgeCount: len(doc.Graph.Edges),
		Labels:    doc.Labels(),
		UpdatedAt: updatedAt,
	})
}
