// Package models defines the shared vocabulary of the canvas: nodes, edges,
// views, modes, diagrams and chat messages.
package models

import (
	"encoding/json"
	"strings"

	"github.com/starford/canvas/internal/apperr"
)

// Well-known NodeData keys.
const (
	DataKeyZ          = "z"
	DataKeyLabel      = "label"
	DataKeyProjection = "projection"
)

// Position is a 2D coordinate in the current view's space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the open payload of a node or edge.
type NodeData map[string]any

// Z returns the depth value stored under "z" and whether a numeric value was present.
func (d NodeData) Z() (float64, bool) {
	v, ok := d[DataKeyZ]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Label returns the "label" entry, or "" when absent or not a string.
func (d NodeData) Label() string {
	s, _ := d[DataKeyLabel].(string)
	return s
}

// Projection returns the projection marker written by view transforms.
func (d NodeData) Projection() string {
	s, _ := d[DataKeyProjection].(string)
	return s
}

// With returns a copy of d with key set to value.
func (d NodeData) With(key string, value any) NodeData {
	out := d.Clone()
	if out == nil {
		out = NodeData{}
	}
	out[key] = value
	return out
}

// Clone returns a deep copy of d. Nested maps and slices are copied too.
func (d NodeData) Clone() NodeData {
	if d == nil {
		return nil
	}
	out := make(NodeData, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case NodeData:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Node is a canvas node. Field names match what flow-rendering libraries expect.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	n.Data = n.Data.Clone()
	return n
}

// Edge is a directed connection between two node ids. The endpoints are not
// guaranteed to exist.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   string   `json:"type,omitempty"`
	Data   NodeData `json:"data,omitempty"`
}

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	e.Data = e.Data.Clone()
	return e
}

// Graph is a node collection paired with an edge collection.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep-independent copy of g. Nil collections become empty.
func (g Graph) Clone() Graph {
	return Graph{Nodes: CloneNodes(g.Nodes), Edges: CloneEdges(g.Edges)}
}

// CloneNodes deep-copies a node collection. The result is never nil.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges deep-copies an edge collection. The result is never nil.
func CloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Clone()
	}
	return out
}

// View selects the coordinate space the canvas is displayed in.
type View string

const (
	View2D  View = "2d"
	View3D  View = "3d"
	ViewIso View = "iso"
)

func (v View) String() string { return string(v) }

// ParseView validates s against the closed set of views.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case View2D, View3D, ViewIso:
		return v, nil
	}
	return "", apperr.Validation("unknown view %q (want 2d, 3d or iso)", s)
}

// Mode selects the canvas working mode.
type Mode string

const (
	ModeArchVision Mode = "archvision"
	ModeBrainCraft Mode = "braincraft"
	ModeHybrid     Mode = "hybrid"
)

func (m Mode) String() string { return string(m) }

// ParseMode validates s against the closed set of modes.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeArchVision, ModeBrainCraft, ModeHybrid:
		return m, nil
	}
	return "", apperr.Validation("unknown mode %q (want archvision, braincraft or hybrid)", s)
}

// LayoutAlgorithm names an auto-layout strategy.
type LayoutAlgorithm string

const (
	LayoutHierarchical LayoutAlgorithm = "hierarchical"
	LayoutForce        LayoutAlgorithm = "force"
	LayoutCircular     LayoutAlgorithm = "circular"
)

func (a LayoutAlgorithm) String() string { return string(a) }

// ParseLayoutAlgorithm validates s against the known layout algorithms.
func ParseLayoutAlgorithm(s string) (LayoutAlgorithm, error) {
	switch a := LayoutAlgorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case LayoutHierarchical, LayoutForce, LayoutCircular:
		return a, nil
	}
	return "", apperr.Validation("unknown layout algorithm %q (want hierarchical, force or circular)", s)
}

// ExportFormat is a canvas export format.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportSVG  ExportFormat = "svg"
	ExportPNG  ExportFormat = "png"
)

func (f ExportFormat) String() string { return string(f) }

// ParseExportFormat validates s against the declared export formats.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportJSON, ExportSVG, ExportPNG:
		return f, nil
	}
	return "", apperr.Validation("unknown export format %q", s)
}
