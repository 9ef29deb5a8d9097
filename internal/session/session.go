// Package session coordinates one mounted canvas: it reads the store,
// computes next collections with the pure canvas functions, dispatches them
// and records undo history.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/canvas"
	"github.com/starford/canvas/internal/diagram"
	"github.com/starford/canvas/internal/history"
	"github.com/starford/canvas/internal/models"
	"github.com/starford/canvas/internal/store"
)

// Session owns a Store, a History and the diagram Service for one canvas.
type Session struct {
	mu       sync.Mutex
	store    *store.Store
	history  *history.History
	diagrams *diagram.Service
	seq      diagram.Sequencer
	logger   *slog.Logger
}

type config struct {
	maxSteps int
	view     models.View
	mode     models.Mode
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*config)

// WithMaxHistory sets the number of undo snapshots kept.
func WithMaxHistory(n int) Option {
	return func(c *config) { c.maxSteps = n }
}

// WithView sets the initial view.
func WithView(v models.View) Option {
	return func(c *config) { c.view = v }
}

// WithMode sets the initial mode.
func WithMode(m models.Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New creates a session with an empty canvas. The empty graph is saved as the
// first history snapshot.
func New(diagrams *diagram.Service, opts ...Option) *Session {
	cfg := config{
		maxSteps: history.DefaultMaxSteps,
		view:     models.View2D,
		mode:     models.ModeArchVision,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	s := &Session{
		store:    store.New(store.NewState(cfg.view, cfg.mode)),
		history:  history.New(cfg.maxSteps),
		diagrams: diagrams,
		logger:   cfg.logger,
	}
	s.history.Save(s.store.State().Graph())
	return s
}

// State returns a copy of the current canvas state.
func (s *Session) State() store.State {
	return s.store.State()
}

// Subscribe registers fn for state changes.
func (s *Session) Subscribe(fn store.Listener) func() {
	return s.store.Subscribe(fn)
}

// History exposes the undo stack for inspection.
func (s *Session) History() *history.History {
	return s.history
}

// commit dispatches the given collections and checkpoints the result. Nil
// collections are left unchanged. Callers hold s.mu.
func (s *Session) commit(nodes []models.Node, edges []models.Edge) store.State {
	if nodes != nil {
		s.store.Dispatch(store.SetNodes{Nodes: nodes})
	}
	if edges != nil {
		s.store.Dispatch(store.SetEdges{Edges: edges})
	}
	st := s.store.State()
	s.history.Save(st.Graph())
	return st
}

// pruneSelection drops selected ids that no longer exist. Callers hold s.mu.
func (s *Session) pruneSelection() {
	st := s.store.State()
	if live := st.LiveSelectedNodes(); len(live) != len(st.SelectedNodes) {
		s.store.Dispatch(store.SelectNodes{IDs: live})
	}
	if live := st.LiveSelectedEdges(); len(live) != len(st.SelectedEdges) {
		s.store.Dispatch(store.SelectEdges{IDs: live})
	}
}

// AddNode creates a node and appends it to the canvas.
func (s *Session) AddNode(nodeType string, pos models.Position, data models.NodeData) models.Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := canvas.CreateNode(nodeType, pos, data)
	st := s.store.State()
	s.commit(append(st.Nodes, n), nil)
	s.logger.Debug("node added", slog.String("id", n.ID), slog.String("type", n.Type))
	return n
}

// UpdateNode applies upd to the node with the given id.
func (s *Session) UpdateNode(id string, upd canvas.NodeUpdate) (models.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.store.State()
	i, ok := canvas.NodeIndex(st.Nodes)[id]
	if !ok {
		return models.Node{}, apperr.NotFound("node", id)
	}
	next := canvas.UpdateNode(id, upd, st.Nodes)
	s.commit(next, nil)
	return next[i].Clone(), nil
}

// DeleteNode removes a node, its incident edges and any selection of them.
func (s *Session) DeleteNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.store.State()
	if !canvas.HasNode(id, st.Nodes) {
		return apperr.NotFound("node", id)
	}
	g := canvas.DeleteNode(id, st.Nodes, st.Edges)
	s.commit(g.Nodes, g.Edges)
	s.pruneSelection()
	s.logger.Debug("node deleted", slog.String("id", id),
		slog.Int("edges_removed", len(st.Edges)-len(g.Edges)))
	return nil
}

// AddEdge connects two existing nodes.
func (s *Session) AddEdge(source, target, edgeType string, data models.NodeData) (models.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.store.State()
	for _, id := range []string{source, target} {
		if !canvas.HasNode(id, st.Nodes) {
			return models.Edge{}, apperr.Validation("edge endpoint %q does not exist", id)
		}
	}
	e := canvas.CreateEdge(source, target, edgeType, data)
	s.commit(nil, append(st.Edges, e))
	return e, nil
}

// UpdateEdge applies upd to the edge with the given id.
func (s *Session) UpdateEdge(id string, upd canvas.EdgeUpdate) (models.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.store.State()
	if !canvas.HasEdge(id, st.Edges) {
		return models.Edge{}, apperr.NotFound("edge", id)
	}
	for _, endpoint := range []*string{upd.Source, upd.Target} {
		if endpoint != nil && !canvas.HasNode(*endpoint, st.Nodes) {
			return models.Edge{}, apperr.Validation("edge endpoint %q does not exist", *endpoint)
		}
	}
	next := canvas.UpdateEdge(id, upd, st.Edges)
	s.commit(nil, next)
	for _, e := range next {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return models.Edge{}, apperr.NotFound("edge", id)
}

// DeleteEdge removes an edge and any selection of it.
func (s *Session) DeleteEdge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.store.State()
	if !canvas.HasEdge(id, st.Edges) {
		return apperr.NotFound("edge", id)
	}
	s.commit(nil, canvas.DeleteEdge(id, st.Edges))
	s.pruneSelection()
	return nil
}

// Select replaces both selections. Unknown ids are stored as given and
// filtered on read.
func (s *Session) Select(nodeIDs, edgeIDs []string) store.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Dispatch(store.SelectNodes{IDs: nodeIDs})
	return s.store.Dispatch(store.SelectEdges{IDs: edgeIDs})
}

// SetMode switches the working mode.
func (s *Session) SetMode(m models.Mode) store.State {
	return s.store.Dispatch(store.SetMode{Mode: m})
}

// SetView switches the displayed view. Stored coordinates stay canonical;
// use Project to obtain the view's coordinates.
func (s *Session) SetView(v models.View) store.State {
	return s.store.Dispatch(store.SetView{View: v})
}

// AutoLayout repositions every node with the given algorithm.
func (s *Session) AutoLayout(algorithm models.LayoutAlgorithm) []models.Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.store.State()
	next := canvas.AutoLayout(st.Nodes, st.Edges, algorithm)
	s.commit(next, nil)
	s.logger.Debug("auto layout", slog.String("algorithm", algorithm.String()), slog.Int("nodes", len(next)))
	return models.CloneNodes(next)
}

// Project returns the current graph expressed in view's coordinates. The
// stored graph is not modified.
func (s *Session) Project(view models.View) (models.Graph, error) {
	st := s.store.State()
	return canvas.TransformForView(st.Nodes, st.Edges, view)
}

// Export serialises the current graph.
func (s *Session) Export(format models.ExportFormat) ([]byte, error) {
	st := s.store.State()
	return canvas.ExportCanvas(st.Nodes, st.Edges, format)
}

// Import replaces the canvas with the graph encoded in data.
func (s *Session) Import(data []byte) (models.Graph, error) {
	g, err := canvas.ImportCanvas(data)
	if err != nil {
		return models.Graph{}, err
	}
	return s.LoadGraph(g), nil
}

// LoadGraph replaces the canvas with g and checkpoints it.
func (s *Session) LoadGraph(g models.Graph) models.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()

	g = g.Clone()
	st := s.commit(g.Nodes, g.Edges)
	s.pruneSelection()
	return st.Graph().Clone()
}

// Checkpoint saves the current graph as a history snapshot.
func (s *Session) Checkpoint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Save(s.store.State().Graph())
}

// Undo restores the previous snapshot. It reports false at the oldest entry.
func (s *Session) Undo() (models.Graph, bool) {
	return s.restore(s.history.Undo)
}

// Redo restores the next snapshot. It reports false at the newest entry.
func (s *Session) Redo() (models.Graph, bool) {
	return s.restore(s.history.Redo)
}

func (s *Session) restore(step func() (models.Graph, bool)) (models.Graph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := step()
	if !ok {
		return models.Graph{}, false
	}
	s.store.Dispatch(store.SetNodes{Nodes: g.Nodes})
	s.store.Dispatch(store.SetEdges{Edges: g.Edges})
	s.pruneSelection()
	return g, true
}

// Messages returns the chat log.
func (s *Session) Messages() []models.ChatMessage {
	return s.store.State().Messages
}

// ResetChat clears the chat log.
func (s *Session) ResetChat() {
	s.store.Dispatch(store.ResetChat{})
}

// GenerationResult is the outcome of GenerateDiagram.
type GenerationResult struct {
	Diagram models.DiagramData `json:"diagram"`
	Message models.ChatMessage `json:"message"`
	// Superseded is set when a newer request started before this one
	// finished. Superseded results are not applied to the state.
	Superseded bool `json:"superseded"`
}

// begin marks the start of an async request and returns its token.
func (s *Session) begin() uint64 {
	token := s.seq.Next()
	s.store.Dispatch(store.SetLoading{Loading: true})
	s.store.Dispatch(store.SetError{})
	return token
}

// finish clears the loading flag if token is still the newest request.
func (s *Session) finish(token uint64) {
	if s.seq.IsLatest(token) {
		s.store.Dispatch(store.SetLoading{Loading: false})
	}
}

// fail records err in the state if token is still the newest request.
func (s *Session) fail(token uint64, err error) {
	if s.seq.IsLatest(token) {
		s.store.Dispatch(store.SetError{Message: err.Error()})
	}
}

// GenerateDiagram appends prompt to the chat, generates a diagram and appends
// the assistant reply carrying its code.
func (s *Session) GenerateDiagram(ctx context.Context, prompt string, diagramType models.DiagramType) (GenerationResult, error) {
	s.store.Dispatch(store.AppendMessage{Message: models.NewChatMessage(models.SenderUser, prompt, "")})
	token := s.begin()
	defer s.finish(token)

	d, err := s.diagrams.GenerateFromPrompt(ctx, prompt, diagramType)
	if err != nil {
		s.fail(token, err)
		return GenerationResult{}, err
	}
	if !s.seq.IsLatest(token) {
		s.logger.Debug("discarding superseded generation", slog.Uint64("token", token))
		return GenerationResult{Diagram: d, Superseded: true}, nil
	}

	reply := models.NewChatMessage(models.SenderAssistant,
		fmt.Sprintf("Here is a %s diagram for your request.", d.Type), d.Code)
	s.store.Dispatch(store.AppendMessage{Message: reply})
	return GenerationResult{Diagram: d, Message: reply}, nil
}

// ValidateDiagram cleans and validates code.
func (s *Session) ValidateDiagram(ctx context.Context, code string, diagramType models.DiagramType) (models.DiagramData, error) {
	token := s.begin()
	defer s.finish(token)

	d, err := s.diagrams.ValidateAndFormat(ctx, code, diagramType)
	if err != nil {
		s.fail(token, err)
		return models.DiagramData{}, err
	}
	return d, nil
}

// ExportDiagram renders d in the requested format.
func (s *Session) ExportDiagram(ctx context.Context, d models.DiagramData, format models.DiagramFormat) (string, error) {
	token := s.begin()
	defer s.finish(token)

	out, err := s.diagrams.ExportDiagram(ctx, d, format)
	if err != nil {
		s.fail(token, err)
		return "", err
	}
	return out, nil
}
