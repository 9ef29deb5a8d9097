package api

import (
	"github.com/starford/canvas/internal/documents"
	"github.com/starford/canvas/internal/index"
	"github.com/starford/canvas/internal/models"
	"github.com/starford/canvas/internal/session"
)

// ModeRequest is the request body for PUT /canvas/mode.
type ModeRequest struct {
	Mode string `json:"mode" example:"braincraft" validate:"required"`
}

// ViewRequest is the request body for PUT /canvas/view.
type ViewRequest struct {
	View string `json:"view" example:"iso" validate:"required"`
}

// CreateNodeRequest is the request body for POST /canvas/nodes.
type CreateNodeRequest struct {
	Type     string          `json:"type" example:"service"`
	Position models.Position `json:"position"`
	Data     models.NodeData `json:"data,omitempty"`
}

// UpdateNodeRequest is the request body for PATCH /canvas/nodes/{id}.
// Absent fields are left unchanged; data replaces the whole bag.
type UpdateNodeRequest struct {
	Type     *string          `json:"type,omitempty"`
	Position *models.Position `json:"position,omitempty"`
	Data     models.NodeData  `json:"data,omitempty"`
}

// CreateEdgeRequest is the request body for POST /canvas/edges.
type CreateEdgeRequest struct {
	Source string          `json:"source" validate:"required"`
	Target string          `json:"target" validate:"required"`
	Type   string          `json:"type,omitempty" example:"smoothstep"`
	Data   models.NodeData `json:"data,omitempty"`
}

// UpdateEdgeRequest is the request body for PATCH /canvas/edges/{id}.
type UpdateEdgeRequest struct {
	Source *string         `json:"source,omitempty"`
	Target *string         `json:"target,omitempty"`
	Type   *string         `json:"type,omitempty"`
	Data   models.NodeData `json:"data,omitempty"`
}

// SelectionRequest is the request body for PUT /canvas/selection.
type SelectionRequest struct {
	Nodes []string `json:"nodes"`
	Edges []string `json:"edges"`
}

// LayoutRequest is the request body for POST /canvas/layout.
type LayoutRequest struct {
	Algorithm string `json:"algorithm" example:"hierarchical"`
}

// HistoryInfo describes the undo stack.
type HistoryInfo struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
	Cursor  int  `json:"cursor"`
	Size    int  `json:"size"`
}

// CanvasResponse is the response of GET /canvas and of canvas mutations
// that change more than one collection.
type CanvasResponse struct {
	View          models.View   `json:"view"`
	Mode          models.Mode   `json:"mode"`
	Nodes         []models.Node `json:"nodes"`
	Edges         []models.Edge `json:"edges"`
	SelectedNodes []string      `json:"selected_nodes"`
	SelectedEdges []string      `json:"selected_edges"`
	IsLoading     bool          `json:"is_loading"`
	Error         string        `json:"error,omitempty"`
	History       HistoryInfo   `json:"history"`
}

// GraphResponse wraps a node/edge pair.
type GraphResponse struct {
	Nodes []models.Node `json:"nodes"`
	Edges []models.Edge `json:"edges"`
}

// GenerateRequest is the request body for POST /diagrams/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" example:"checkout flow" validate:"required"`
	Type   string `json:"type" example:"sequence"`
}

// ValidateRequest is the request body for POST /diagrams/validate.
type ValidateRequest struct {
	Code string `json:"code" validate:"required"`
	Type string `json:"type,omitempty"`
}

// ExportDiagramRequest is the request body for POST /diagrams/export.
type ExportDiagramRequest struct {
	Diagram models.DiagramData `json:"diagram"`
	Format  string             `json:"format" example:"svg"`
}

// GenerationResult is the response of POST /diagrams/generate.
type GenerationResult = session.GenerationResult

// ChatResponse wraps the chat log.
type ChatResponse struct {
	Messages []models.ChatMessage `json:"messages"`
}

// SaveCanvasRequest is the optional body of POST /documents/{name}/save.
type SaveCanvasRequest struct {
	Title string `json:"title,omitempty" example:"Checkout flow"`
}

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = documents.Detail

// DocumentListItem is a lightweight item in a list response (aliased from the domain layer).
type DocumentListItem = documents.ListItem

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents"`
	Total     int                `json:"total" example:"42"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}
