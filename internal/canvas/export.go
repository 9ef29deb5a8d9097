package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/models"
)

// ErrInvalidCanvasData is returned by ImportCanvas for malformed input.
var ErrInvalidCanvasData = apperr.Validation("invalid canvas data format")

// ExportCanvas serializes the collections. Only json is implemented.
func ExportCanvas(nodes []models.Node, edges []models.Edge, format models.ExportFormat) ([]byte, error) {
	switch format {
	case models.ExportJSON:
		doc := models.Graph{Nodes: nodes, Edges: edges}
		if doc.Nodes == nil {
			doc.Nodes = []models.Node{}
		}
		if doc.Edges == nil {
			doc.Edges = []models.Edge{}
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("canvas: export: %w", err)
		}
		return data, nil
	case models.ExportSVG, models.ExportPNG:
		return nil, apperr.Unsupported("export format %s is not implemented", format)
	default:
		return nil, apperr.Unsupported("export format %q is not supported", format)
	}
}

// ImportCanvas parses an exported canvas. Missing collections default to empty
// so "{}" is accepted.
func ImportCanvas(data []byte) (models.Graph, error) {
	var doc struct {
		Nodes []models.Node `json:"nodes"`
		Edges []models.Edge `json:"edges"`
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Graph{}, ErrInvalidCanvasData
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Graph{}, apperr.Wrap(apperr.KindValidationFailed, err, "%s", ErrInvalidCanvasData.Message)
	}
	g := models.Graph{Nodes: doc.Nodes, Edges: doc.Edges}
	if g.Nodes == nil {
		g.Nodes = []models.Node{}
	}
	if g.Edges == nil {
		g.Edges = []models.Edge{}
	}
	for i := range g.Nodes {
		if g.Nodes[i].Data == nil {
			g.Nodes[i].Data = models.NodeData{}
		}
	}
	return g, nil
}
