package store

import "github.com/starford/canvas/internal/models"

// Action is a state transition. The set of actions is closed: only types in
// this package implement it.
type Action interface {
	// Type returns the wire name of the action, e.g. "SET_MODE".
	Type() string
	action()
}

// SetMode switches the working mode.
type SetMode struct{ Mode models.Mode }

// SetView switches the displayed view.
type SetView struct{ View models.View }

// SetNodes replaces the node collection.
type SetNodes struct{ Nodes []models.Node }

// SetEdges replaces the edge collection.
type SetEdges struct{ Edges []models.Edge }

// SelectNodes replaces the node selection.
type SelectNodes struct{ IDs []string }

// SelectEdges replaces the edge selection.
type SelectEdges struct{ IDs []string }

// SetLoading sets the loading flag.
type SetLoading struct{ Loading bool }

// SetError sets the error message; "" clears it.
type SetError struct{ Message string }

// AppendMessage adds a chat message.
type AppendMessage struct{ Message models.ChatMessage }

// ResetChat clears the chat log.
type ResetChat struct{}

func (SetMode) Type() string       { return "SET_MODE" }
func (SetView) Type() string       { return "SET_VIEW" }
func (SetNodes) Type() string      { return "SET_NODES" }
func (SetEdges) Type() string      { return "SET_EDGES" }
func (SelectNodes) Type() string   { return "SELECT_NODES" }
func (SelectEdges) Type() string   { return "SELECT_EDGES" }
func (SetLoading) Type() string    { return "SET_LOADING" }
func (SetError) Type() string      { return "SET_ERROR" }
func (AppendMessage) Type() string { return "APPEND_MESSAGE" }
func (ResetChat) Type() string     { return "RESET_CHAT" }

func (SetMode) action()       {}
func (SetView) action()       {}
func (SetNodes) action()      {}
func (SetEdges) action()      {}
func (SelectNodes) action()   {}
func (SelectEdges) action()   {}
func (SetLoading) action()    {}
func (SetError) action()      {}
func (AppendMessage) action() {}
func (ResetChat) action()     {}
