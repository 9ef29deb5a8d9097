package canvas

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/models"
)

// Document is a saved canvas: the json export plus an optional title.
type Document struct {
	Title string
	Graph models.Graph
}

// Labels returns the distinct non-empty node labels in sorted order.
func (d Document) Labels() []string {
	seen := make(map[string]struct{}, len(d.Graph.Nodes))
	out := []string{}
	for _, n := range d.Graph.Nodes {
		l := n.Data.Label()
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// EncodeDocument serialises a document in the same shape as ExportCanvas
// with a leading "title" key when title is set.
func EncodeDocument(title string, g models.Graph) ([]byte, error) {
	doc := struct {
		Title string        `json:"title,omitempty"`
		Nodes []models.Node `json:"nodes"`
		Edges []models.Edge `json:"edges"`
	}{Title: title, Nodes: g.Nodes, Edges: g.Edges}
	if doc.Nodes == nil {
		doc.Nodes = []models.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []models.Edge{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("canvas: encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a saved document. Plain ExportCanvas output is a
// valid document without a title.
func DecodeDocument(data []byte) (Document, error) {
	g, err := ImportCanvas(data)
	if err != nil {
		return Document{}, err
	}
	var head struct {
		Title any `json:"title"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Document{}, apperr.Wrap(apperr.KindValidationFailed, err, "%s", ErrInvalidCanvasData.Message)
	}
	title, ok := head.Title.(string)
	if head.Title != nil && !ok {
		return Document{}, apperr.Validation("document title must be a string")
	}
	return Document{Title: title, Graph: g}, nil
}
