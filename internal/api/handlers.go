package api

import (
	"net/http"

	"github.com/starford/canvas/internal/documents"
	"github.com/starford/canvas/internal/session"
	"github.com/starford/canvas/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	sess *session.Session
	docs *documents.Service
}

// NewHandler creates a new Handler.
func NewHandler(sess *session.Session, docs *documents.Service) *Handler {
	return &Handler{sess: sess, docs: docs}
}

func (h *Handler) canvasResponse(st store.State) CanvasResponse {
	hist := h.sess.History()
	return CanvasResponse{
		View:          st.CurrentView,
		Mode:          st.CurrentMode,
		Nodes:         st.Nodes,
		Edges:         st.Edges,
		SelectedNodes: st.LiveSelectedNodes(),
		SelectedEdges: st.LiveSelectedEdges(),
		IsLoading:     st.IsLoading,
		Error:         st.Error,
		History: HistoryInfo{
			CanUndo: hist.CanUndo(),
			CanRedo: hist.CanRedo(),
			Cursor:  hist.Cursor(),
			Size:    hist.Len(),
		},
	}
}

// GetCanvas handles GET /api/canvas.
//
//	@Summary		Get the current canvas state
//	@Tags			canvas
//	@Produce		json
//	@Success		200	{object}	CanvasResponse
//	@Security		BearerAuth
//	@Router			/canvas [get]
func (h *Handler) GetCanvas(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.canvasResponse(h.sess.State()))
}
