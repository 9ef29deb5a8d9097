package api

import (
	"net/http"
	"strings"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/models"
)

// GenerateDiagram handles POST /api/diagrams/generate.
//
//	@Summary		Generate a diagram from a prompt
//	@Tags			diagrams
//	@Accept			json
//	@Produce		json
//	@Param			body	body		GenerateRequest	true	"Prompt and diagram type"
//	@Success		200		{object}	GenerationResult
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/diagrams/generate [post]
func (h *Handler) GenerateDiagram(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("prompt is required"))
		return
	}
	res, err := h.sess.GenerateDiagram(r.Context(), req.Prompt, models.DiagramType(req.Type))
	if err != nil {
		writeError(w, "generate diagram", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ValidateDiagram handles POST /api/diagrams/validate.
func (h *Handler) ValidateDiagram(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("code is required"))
		return
	}
	d, err := h.sess.ValidateDiagram(r.Context(), req.Code, models.DiagramType(req.Type))
	if err != nil {
		writeError(w, "validate diagram", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ExportDiagram handles POST /api/diagrams/export. A successful svg export
// is returned as image/svg+xml.
func (h *Handler) ExportDiagram(w http.ResponseWriter, r *http.Request) {
	var req ExportDiagramRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	format := models.DiagramFormat(strings.ToLower(req.Format))
	if format == "" {
		format = models.DiagramSVG
	}
	if req.Diagram.Code == "" {
		writeError(w, "export diagram", apperr.Validation("diagram code is required"))
		return
	}
	out, err := h.sess.ExportDiagram(r.Context(), req.Diagram, format)
	if err != nil {
		writeError(w, "export diagram", err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// Chat handles GET /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ChatResponse{Messages: h.sess.Messages()})
}

// ResetChat handles DELETE /api/chat.
func (h *Handler) ResetChat(w http.ResponseWriter, _ *http.Request) {
	h.sess.ResetChat()
	w.WriteHeader(http.StatusNoContent)
}
