package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/canvas"
	"github.com/starford/canvas/internal/models"
)

// SetMode handles PUT /api/canvas/mode.
func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		writeError(w, "set mode", err)
		return
	}
	writeJSON(w, http.StatusOK, h.canvasResponse(h.sess.SetMode(mode)))
}

// SetView handles PUT /api/canvas/view.
func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	view, err := models.ParseView(req.View)
	if err != nil {
		writeError(w, "set view", err)
		return
	}
	writeJSON(w, http.StatusOK, h.canvasResponse(h.sess.SetView(view)))
}

// CreateNode handles POST /api/canvas/nodes.
//
//	@Summary		Add a node to the canvas
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNodeRequest	true	"Node to create"
//	@Success		201		{object}	models.Node
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/canvas/nodes [post]
func (h *Handler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if req.Type == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("type is required"))
		return
	}
	writeJSON(w, http.StatusCreated, h.sess.AddNode(req.Type, req.Position, req.Data))
}

// UpdateNode handles PATCH /api/canvas/nodes/{id}.
//
//	@Summary		Update a node
//	@Tags			canvas
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Node id"
//	@Param			body	body		UpdateNodeRequest	true	"Fields to change"
//	@Success		200		{object}	models.Node
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/canvas/nodes/{id} [patch]
func (h *Handler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var req UpdateNodeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	node, err := h.sess.UpdateNode(chi.URLParam(r, "id"), canvas.NodeUpdate{
		Type:     req.Type,
		Position: req.Position,
		Data:     req.Data,
	})
	if err != nil {
		writeError(w, "update node", err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// DeleteNode handles DELETE /api/canvas/nodes/{id}. Incident edges are
// removed with the node.
func (h *Handler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.DeleteNode(chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete node", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateEdge handles POST /api/canvas/edges.
func (h *Handler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if req.Source == "" || req.Target == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("source and target are required"))
		return
	}
	edge, err := h.sess.AddEdge(req.Source, req.Target, req.Type, req.Data)
	if err != nil {
		writeError(w, "create edge", err)
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}

// UpdateEdge handles PATCH /api/canvas/edges/{id}.
func (h *Handler) UpdateEdge(w http.ResponseWriter, r *http.Request) {
	var req UpdateEdgeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	edge, err := h.sess.UpdateEdge(chi.URLParam(r, "id"), canvas.EdgeUpdate{
		Source: req.Source,
		Target: req.Target,
		Type:   req.Type,
		Data:   req.Data,
	})
	if err != nil {
		writeError(w, "update edge", err)
		return
	}
	writeJSON(w, http.StatusOK, edge)
}

// DeleteEdge handles DELETE /api/canvas/edges/{id}.
func (h *Handler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.DeleteEdge(chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete edge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSelection handles PUT /api/canvas/selection.
func (h *Handler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	writeJSON(w, http.StatusOK, h.canvasResponse(h.sess.Select(req.Nodes, req.Edges)))
}

// AutoLayout handles POST /api/canvas/layout. The algorithm defaults to
// hierarchical.
func (h *Handler) AutoLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	algorithm := models.LayoutHierarchical
	if req.Algorithm != "" {
		a, err := models.ParseLayoutAlgorithm(req.Algorithm)
		if err != nil {
			writeError(w, "auto layout", err)
			return
		}
		algorithm = a
	}
	nodes := h.sess.AutoLayout(algorithm)
	writeJSON(w, http.StatusOK, map[string]any{"nodes": nodes})
}

// Projection handles GET /api/canvas/projection/{view}.
//
//	@Summary		Project the canvas into a view's coordinates
//	@Tags			canvas
//	@Produce		json
//	@Param			view	path		string	true	"View"	Enums(2d, 3d, iso)
//	@Success		200		{object}	GraphResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/canvas/projection/{view} [get]
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	view, err := models.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, "projection", err)
		return
	}
	g, err := h.sess.Project(view)
	if err != nil {
		writeError(w, "projection", err)
		return
	}
	writeJSON(w, http.StatusOK, GraphResponse{Nodes: g.Nodes, Edges: g.Edges})
}

// Undo handles POST /api/canvas/undo.
func (h *Handler) Undo(w http.ResponseWriter, _ *http.Request) {
	if _, ok := h.sess.Undo(); !ok {
		writeError(w, "undo", apperr.New(apperr.KindConflict, "nothing to undo"))
		return
	}
	writeJSON(w, http.StatusOK, h.canvasResponse(h.sess.State()))
}

// Redo handles POST /api/canvas/redo.
func (h *Handler) Redo(w http.ResponseWriter, _ *http.Request) {
	if _, ok := h.sess.Redo(); !ok {
		writeError(w, "redo", apperr.New(apperr.KindConflict, "nothing to redo"))
		return
	}
	writeJSON(w, http.StatusOK, h.canvasResponse(h.sess.State()))
}

// ExportCanvas handles GET /api/canvas/export?format=json.
//
//	@Summary		Export the canvas
//	@Tags			canvas
//	@Produce		json
//	@Param			format	query	string	false	"Export format"	Enums(json, svg, png)
//	@Success		200		{object}	GraphResponse
//	@Failure		501		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/canvas/export [get]
func (h *Handler) ExportCanvas(w http.ResponseWriter, r *http.Request) {
	format := models.ExportJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := models.ParseExportFormat(f)
		if err != nil {
			writeError(w, "export canvas", err)
			return
		}
		format = parsed
	}
	data, err := h.sess.Export(format)
	if err != nil {
		writeError(w, "export canvas", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="canvas.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportCanvas handles POST /api/canvas/import. The body is an exported
// canvas and replaces the current one.
func (h *Handler) ImportCanvas(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	g, err := h.sess.Import(data)
	if err != nil {
		writeError(w, "import canvas", err)
		return
	}
	writeJSON(w, http.StatusOK, GraphResponse{Nodes: g.Nodes, Edges: g.Edges})
}
