// Package store holds the state of one mounted canvas and reduces actions
// into it.
//
// The store never calls the transform or diagram services. Callers compute
// full replacement collections and dispatch them.
package store

import (
	"sync"

	"github.com/starford/canvas/internal/models"
)

// State is the canvas aggregate.
type State struct {
	CurrentView   models.View          `json:"currentView"`
	CurrentMode   models.Mode          `json:"currentMode"`
	Nodes         []models.Node        `json:"nodes"`
	Edges         []models.Edge        `json:"edges"`
	SelectedNodes []string             `json:"selectedNodes"`
	SelectedEdges []string             `json:"selectedEdges"`
	IsLoading     bool                 `json:"isLoading"`
	Error         string               `json:"error,omitempty"`
	Messages      []models.ChatMessage `json:"messages"`
}

// NewState returns an empty canvas in the given view and mode.
func NewState(view models.View, mode models.Mode) State {
	return State{
		CurrentView:   view,
		CurrentMode:   mode,
		Nodes:         []models.Node{},
		Edges:         []models.Edge{},
		SelectedNodes: []string{},
		SelectedEdges: []string{},
		Messages:      []models.ChatMessage{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Nodes = models.CloneNodes(s.Nodes)
	s.Edges = models.CloneEdges(s.Edges)
	s.SelectedNodes = append([]string{}, s.SelectedNodes...)
	s.SelectedEdges = append([]string{}, s.SelectedEdges...)
	s.Messages = append([]models.ChatMessage{}, s.Messages...)
	return s
}

// Graph returns the node and edge collections.
func (s State) Graph() models.Graph {
	return models.Graph{Nodes: s.Nodes, Edges: s.Edges}
}

// LiveSelectedNodes returns the selected node ids that still exist.
func (s State) LiveSelectedNodes() []string {
	live := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		live[n.ID] = struct{}{}
	}
	return filterIDs(s.SelectedNodes, live)
}

// LiveSelectedEdges returns the selected edge ids that still exist.
func (s State) LiveSelectedEdges() []string {
	live := make(map[string]struct{}, len(s.Edges))
	for _, e := range s.Edges {
		live[e.ID] = struct{}{}
	}
	return filterIDs(s.SelectedEdges, live)
}

func filterIDs(ids []string, live map[string]struct{}) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := live[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Reduce applies a to s and returns the next state. Every action replaces its
// slice of state wholesale. Reduce never fails.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetMode:
		s.CurrentMode = a.Mode
	case SetView:
		s.CurrentView = a.View
	case SetNodes:
		s.Nodes = models.CloneNodes(a.Nodes)
	case SetEdges:
		s.Edges = models.CloneEdges(a.Edges)
	case SelectNodes:
		s.SelectedNodes = append([]string{}, a.IDs...)
	case SelectEdges:
		s.SelectedEdges = append([]string{}, a.IDs...)
	case SetLoading:
		s.IsLoading = a.Loading
	case SetError:
		s.Error = a.Message
	case AppendMessage:
		msgs := make([]models.ChatMessage, len(s.Messages), len(s.Messages)+1)
		copy(msgs, s.Messages)
		s.Messages = append(msgs, a.Message.Normalize())
	case ResetChat:
		s.Messages = []models.ChatMessage{}
	}
	return s
}

// Listener is notified after every dispatch with the resulting state.
type Listener func(State, Action)

// Store is a mutex-guarded container for one canvas.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// New creates a store holding initial.
func New(initial State) *Store {
	return &Store{state: initial.Clone(), listeners: make(map[int]Listener)}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch reduces a into the current state, notifies listeners and returns
// the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next, a)
	}
	return next
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
