// Package canvas implements pure transformations over node and edge
// collections: element CRUD, auto-layout, view projection and export/import.
//
// Functions never mutate their inputs; every result is a fresh collection the
// caller is expected to store.
package canvas

import (
	"github.com/starford/canvas/internal/idgen"
	"github.com/starford/canvas/internal/models"
)

// NodeUpdate lists the node fields to overwrite. Nil fields are left alone; a
// non-nil Data replaces the whole data bag.
type NodeUpdate struct {
	Type     *string          `json:"type,omitempty"`
	Position *models.Position `json:"position,omitempty"`
	Data     models.NodeData  `json:"data,omitempty"`
}

// EdgeUpdate lists the edge fields to overwrite.
type EdgeUpdate struct {
	Source *string         `json:"source,omitempty"`
	Target *string         `json:"target,omitempty"`
	Type   *string         `json:"type,omitempty"`
	Data   models.NodeData `json:"data,omitempty"`
}

// CreateNode returns a new node with a fresh id. It is not added to any collection.
func CreateNode(nodeType string, pos models.Position, data models.NodeData) models.Node {
	if data == nil {
		data = models.NodeData{}
	}
	return models.Node{
		ID:       idgen.Node(),
		Type:     nodeType,
		Position: pos,
		Data:     data.Clone(),
	}
}

// UpdateNode returns nodes with upd merged into the node whose id matches.
// An unknown id yields an unchanged copy.
func UpdateNode(id string, upd NodeUpdate, nodes []models.Node) []models.Node {
	out := models.CloneNodes(nodes)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if upd.Type != nil {
			out[i].Type = *upd.Type
		}
		if upd.Position != nil {
			out[i].Position = *upd.Position
		}
		if upd.Data != nil {
			out[i].Data = upd.Data.Clone()
		}
	}
	return out
}

// DeleteNode removes the node and every edge that references it.
func DeleteNode(id string, nodes []models.Node, edges []models.Edge) models.Graph {
	outNodes := make([]models.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID != id {
			outNodes = append(outNodes, n.Clone())
		}
	}
	outEdges := make([]models.Edge, 0, len(edges))
	for _, e := range edges {
		if e.Source != id && e.Target != id {
			outEdges = append(outEdges, e.Clone())
		}
	}
	return models.Graph{Nodes: outNodes, Edges: outEdges}
}

// CreateEdge returns a new edge from source to target with a fresh id.
func CreateEdge(source, target, edgeType string, data models.NodeData) models.Edge {
	return models.Edge{
		ID:     idgen.Edge(),
		Source: source,
		Target: target,
		Type:   edgeType,
		Data:   data.Clone(),
	}
}

// UpdateEdge returns edges with upd merged into the edge whose id matches.
func UpdateEdge(id string, upd EdgeUpdate, edges []models.Edge) []models.Edge {
	out := models.CloneEdges(edges)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if upd.Source != nil {
			out[i].Source = *upd.Source
		}
		if upd.Target != nil {
			out[i].Target = *upd.Target
		}
		if upd.Type != nil {
			out[i].Type = *upd.Type
		}
		if upd.Data != nil {
			out[i].Data = upd.Data.Clone()
		}
	}
	return out
}

// DeleteEdge removes the edge with the given id. Nodes are never affected.
func DeleteEdge(id string, edges []models.Edge) []models.Edge {
	out := make([]models.Edge, 0, len(edges))
	for _, e := range edges {
		if e.ID != id {
			out = append(out, e.Clone())
		}
	}
	return out
}

// NodeIndex maps node ids to their position in nodes.
func NodeIndex(nodes []models.Node) map[string]int {
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		idx[n.ID] = i
	}
	return idx
}

// HasNode reports whether a node with id exists in nodes.
func HasNode(id string, nodes []models.Node) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// HasEdge reports whether an edge with id exists in edges.
func HasEdge(id string, edges []models.Edge) bool {
	for _, e := range edges {
		if e.ID == id {
			return true
		}
	}
	return false
}
