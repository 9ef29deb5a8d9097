package models

import (
	"strings"
	"time"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/idgen"
)

// DiagramType is one of the diagram kinds the compiler understands.
type DiagramType string

const (
	DiagramFlowchart DiagramType = "flowchart"
	DiagramSequence  DiagramType = "sequence"
	DiagramClass     DiagramType = "class"
	DiagramState     DiagramType = "state"
	DiagramER        DiagramType = "er"
	DiagramGantt     DiagramType = "gantt"
	DiagramPie       DiagramType = "pie"
	DiagramMindmap   DiagramType = "mindmap"
)

// DiagramTypes lists every supported diagram type.
var DiagramTypes = []DiagramType{
	DiagramFlowchart, DiagramSequence, DiagramClass, DiagramState,
	DiagramER, DiagramGantt, DiagramPie, DiagramMindmap,
}

func (t DiagramType) String() string { return string(t) }

// Valid reports whether t is in the closed set.
func (t DiagramType) Valid() bool {
	for _, known := range DiagramTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseDiagramType validates s against the closed set of diagram types.
func ParseDiagramType(s string) (DiagramType, error) {
	t := DiagramType(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, nil
	}
	return "", apperr.Validation("unknown diagram type %q", s)
}

// DiagramFormat is a diagram export format.
type DiagramFormat string

const (
	DiagramSVG DiagramFormat = "svg"
	DiagramPNG DiagramFormat = "png"
	DiagramPDF DiagramFormat = "pdf"
)

// DiagramData is a compiled-ready diagram. Values are never mutated; updates
// produce a new DiagramData.
type DiagramData struct {
	ID        string      `json:"id"`
	Type      DiagramType `json:"type"`
	Code      string      `json:"code"`
	Title     string      `json:"title,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one entry of the append-only chat log.
type ChatMessage struct {
	ID          string    `json:"id"`
	Sender      Sender    `json:"sender"`
	Content     string    `json:"content"`
	DiagramCode string    `json:"diagramCode,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewChatMessage returns a message with a fresh id and the current timestamp.
func NewChatMessage(sender Sender, content, diagramCode string) ChatMessage {
	return ChatMessage{
		ID:          idgen.TimeOrdered(),
		Sender:      sender,
		Content:     content,
		DiagramCode: diagramCode,
		Timestamp:   time.Now(),
	}
}

// Normalize fills in an id and timestamp when they are missing.
func (m ChatMessage) Normalize() ChatMessage {
	if m.ID == "" {
		m.ID = idgen.TimeOrdered()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return m
}
