package parser

import (
	"errors"
	"testing"

	"github.com/starford/canvas/internal/models"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"%%My Title%%\nflowchart LR\nA-->B", "My Title"},
		{"  %% Spaced %%\ngraph TD", "Spaced"},
		{"flowchart LR\nA-->B", DefaultTitle},
		{"%% just a comment\nflowchart LR", DefaultTitle},
		{"flowchart LR\n%%Late%%", DefaultTitle},
		{"%%{init: {'theme': 'dark'}}%%\nflowchart LR", DefaultTitle},
	}
	for _, tt := range tests {
		if got := ExtractTitle(tt.code); got != tt.want {
			t.Errorf("ExtractTitle(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mermaid fence", "```mermaid\nflowchart LR\nA-->B\n```", "flowchart LR\nA-->B"},
		{"bare fence", "```\ngraph TD\n```", "graph TD"},
		{"padded fence", "\n  ```mermaid\npie\n```  \n", "pie"},
		{"no fence", "flowchart LR", "flowchart LR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Header(t *testing.T) {
	r, err := Parse("```mermaid\n%%Login%%\nsequenceDiagram\n  Alice->>Bob: hi\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Login" {
		t.Errorf("title = %q", r.Title)
	}
	if r.Keyword != "sequenceDiagram" || r.Type != models.DiagramSequence {
		t.Errorf("keyword = %q type = %q", r.Keyword, r.Type)
	}
	if len(r.Body) != 1 || r.Body[0] != "Alice->>Bob: hi" {
		t.Errorf("body = %v", r.Body)
	}
}

func TestParse_Frontmatter(t *testing.T) {
	r, err := Parse("---\ntitle: Ignored for title\nconfig:\n  theme: dark\n---\nflowchart TD\nA-->B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter["title"] != "Ignored for title" {
		t.Errorf("frontmatter = %v", r.Frontmatter)
	}
	if r.Title != DefaultTitle {
		t.Errorf("title = %q, want default", r.Title)
	}
	if r.Type != models.DiagramFlowchart {
		t.Errorf("type = %q", r.Type)
	}
}

func TestParse_InvalidFrontmatter(t *testing.T) {
	if _, err := Parse("---\n: invalid: yaml: {{{\n---\nflowchart TD"); err == nil {
		t.Fatal("expected frontmatter error")
	}
	if _, err := Parse("---\ntitle: x\nflowchart TD"); err == nil {
		t.Fatal("expected unterminated frontmatter error")
	}
}

func TestParse_NoHeader(t *testing.T) {
	_, err := Parse("%%Only a title%%\n\n")
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("err = %v, want ErrNoHeader", err)
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		code string
		want models.DiagramType
	}{
		{"graph LR\nA-->B", models.DiagramFlowchart},
		{"classDiagram\nA <|-- B", models.DiagramClass},
		{"stateDiagram-v2\n[*] --> S", models.DiagramState},
		{"erDiagram\nA ||--o{ B : has", models.DiagramER},
		{"gantt\ntitle x", models.DiagramGantt},
		{"journey\ntitle x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DetectType(tt.code); got != tt.want {
			t.Errorf("DetectType(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
