package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func setETag(w http.ResponseWriter, sum string) {
	w.Header().Set("ETag", `"`+sum+`"`)
}

// ListDocuments handles GET /api/documents.
//
//	@Summary		List saved canvases
//	@Tags			documents
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			sort	query		string	false	"Sort field"	Enums(updated, name, title)
//	@Success		200		{object}	DocumentListResponse
//	@Security		BearerAuth
//	@Router			/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total, err := h.docs.List(r.Context(), limit, offset, q.Get("sort"))
	if err != nil {
		writeError(w, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: items, Total: total})
}

// SearchDocuments handles GET /api/documents/search.
func (h *Handler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.docs.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, "search documents", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// GetDocument handles GET /api/documents/{name}.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	d, err := h.docs.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, "get document", err)
		return
	}
	setETag(w, d.Checksum)
	writeJSON(w, http.StatusOK, d)
}

// PutDocument handles PUT /api/documents/{name}. The body is a canvas
// document; If-Match guards against overwriting a concurrent change.
//
//	@Summary		Create or replace a saved canvas
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			name		path	string	true	"Document name"
//	@Param			If-Match	header	string	false	"SHA-256 checksum for optimistic concurrency"
//	@Success		200		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{name} [put]
func (h *Handler) PutDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	d, err := h.docs.Save(r.Context(), chi.URLParam(r, "name"), body, ifMatch)
	if err != nil {
		writeError(w, "save document", err)
		return
	}
	setETag(w, d.Checksum)
	writeJSON(w, http.StatusOK, d)
}

// DeleteDocument handles DELETE /api/documents/{name}.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.docs.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, "delete document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenDocument handles POST /api/documents/{name}/open: the saved graph
// replaces the current canvas.
func (h *Handler) OpenDocument(w http.ResponseWriter, r *http.Request) {
	d, err := h.docs.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, "open document", err)
		return
	}
	h.sess.LoadGraph(d.Graph)
	setETag(w, d.Checksum)
	writeJSON(w, http.StatusOK, h.canvasResponse(h.sess.State()))
}

// SaveCanvas handles POST /api/documents/{name}/save: the current canvas is
// written under name.
func (h *Handler) SaveCanvas(w http.ResponseWriter, r *http.Request) {
	var req SaveCanvasRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)
	st := h.sess.State()

	d, err := h.docs.SaveGraph(r.Context(), chi.URLParam(r, "name"), req.Title, st.Graph(), ifMatch)
	if err != nil {
		writeError(w, "save canvas", err)
		return
	}
	setETag(w, d.Checksum)
	writeJSON(w, http.StatusOK, d)
}
