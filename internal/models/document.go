package models

import "time"

// DocumentMetadata describes one saved canvas file in the workspace.
type DocumentMetadata struct {
	Name      string    `json:"name"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
