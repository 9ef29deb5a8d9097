// Package storage defines the workspace file-system abstraction for saved
// canvas documents.
package storage

import "github.com/starford/canvas/internal/models"

// Provider is the interface for workspace document operations. Documents
// are addressed by name; the provider owns the on-disk file layout.
type Provider interface {
	// List returns metadata for every document in the workspace.
	List() ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the named document.
	Read(name string) ([]byte, error)
	// Write atomically writes content to the named document.
	Write(name string, content []byte) error
	// Delete removes the named document.
	Delete(name string) error
	// Rename moves a document to a new name.
	Rename(oldName, newName string) error
}
