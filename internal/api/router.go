package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/canvas/internal/documents"
	"github.com/starford/canvas/internal/session"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(sess *session.Session, docs *documents.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(sess, docs)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/canvas", func(r chi.Router) {
		r.Get("/", h.GetCanvas)
		r.Put("/mode", h.SetMode)
		r.Put("/view", h.SetView)

		r.Post("/nodes", h.CreateNode)
		r.Patch("/nodes/{id}", h.UpdateNode)
		r.Delete("/nodes/{id}", h.DeleteNode)

		r.Post("/edges", h.CreateEdge)
		r.Patch("/edges/{id}", h.UpdateEdge)
		r.Delete("/edges/{id}", h.DeleteEdge)

		r.Put("/selection", h.SetSelection)
		r.Post("/layout", h.AutoLayout)
		r.Get("/projection/{view}", h.Projection)

		r.Post("/undo", h.Undo)
		r.Post("/redo", h.Redo)

		r.Get("/export", h.ExportCanvas)
		r.Post("/import", h.ImportCanvas)
	})

	// Diagrams and chat.
	r.Post("/diagrams/generate", h.GenerateDiagram)
	r.Post("/diagrams/validate", h.ValidateDiagram)
	r.Post("/diagrams/export", h.ExportDiagram)
	r.Get("/chat", h.Chat)
	r.Delete("/chat", h.ResetChat)

	// Saved canvases.
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.ListDocuments)
		r.Get("/search", h.SearchDocuments)
		r.Get("/{name}", h.GetDocument)
		r.Put("/{name}", h.PutDocument)
		r.Delete("/{name}", h.DeleteDocument)
		r.Post("/{name}/open", h.OpenDocument)
		r.Post("/{name}/save", h.SaveCanvas)
	})

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
