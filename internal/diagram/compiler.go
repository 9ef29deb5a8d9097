// Package diagram validates, generates and exports diagram source text.
//
// Parsing and rendering are delegated to a Compiler. The service itself only
// cleans input, extracts metadata and wraps results into models.DiagramData.
package diagram

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/models"
	"github.com/starford/canvas/internal/parser"
)

// Compiler is the diagram-description compiler collaborator.
type Compiler interface {
	// Parse validates code. The parse result itself is discarded.
	Parse(ctx context.Context, code string) error
	// Render compiles code into SVG markup.
	Render(ctx context.Context, id, code string) (string, error)
}

// knownKeywords are declarations the compiler accepts besides the typed ones.
var knownKeywords = map[string]struct{}{
	"journey": {}, "gitGraph": {}, "timeline": {}, "quadrantChart": {},
	"requirementDiagram": {}, "C4Context": {}, "sankey-beta": {},
	"xychart-beta": {}, "block-beta": {},
}

var flowDirections = map[string]struct{}{
	"TB": {}, "TD": {}, "BT": {}, "RL": {}, "LR": {},
}

// Builtin is an in-process compiler that checks diagram structure. It cannot
// render; use CLI for SVG output.
type Builtin struct{}

// NewBuiltin returns the in-process compiler.
func NewBuiltin() *Builtin { return &Builtin{} }

// Parse checks the declaration keyword and, for flowcharts, the direction and
// bracket balance of every statement.
func (Builtin) Parse(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := parser.Parse(code)
	if err != nil {
		return err
	}
	if res.Type == "" {
		if _, ok := knownKeywords[res.Keyword]; !ok {
			return fmt.Errorf("unknown diagram type %q", res.Keyword)
		}
		return nil
	}
	if res.Type == models.DiagramFlowchart {
		return checkFlowchart(res)
	}
	return nil
}

// Render always fails: SVG output needs the external compiler.
func (Builtin) Render(_ context.Context, _, _ string) (string, error) {
	return "", apperr.Unsupported("svg rendering requires the mermaid-cli compiler")
}

func checkFlowchart(res *parser.Result) error {
	header := strings.Fields(strings.TrimSuffix(firstStatement(res), ";"))
	if len(header) > 1 {
		if _, ok := flowDirections[header[1]]; !ok {
			return fmt.Errorf("parse error on line 1: unknown direction %q", header[1])
		}
	}
	for i, line := range res.Body {
		if err := checkBrackets(strings.TrimSuffix(line, ";")); err != nil {
			return fmt.Errorf("parse error on line %d: %w", i+2, err)
		}
	}
	return nil
}

func firstStatement(res *parser.Result) string {
	for _, line := range strings.Split(res.Code, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, res.Keyword) {
			return line
		}
	}
	return res.Keyword
}

// checkBrackets verifies (), [] and {} nest correctly outside quoted labels.
// A '>' directly after a node id opens the asymmetric shape, closed by ']'.
func checkBrackets(line string) error {
	var stack []rune
	inQuote := false
	prev := rune(0)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '(' || r == '[' || r == '{':
			stack = append(stack, r)
		case r == '>' && len(stack) == 0 && isIDRune(prev):
			stack = append(stack, r)
		case r == ')' || r == ']' || r == '}':
			if len(stack) == 0 || !closes(r, stack[len(stack)-1]) {
				return fmt.Errorf("unexpected %q in %q", r, line)
			}
			stack = stack[:len(stack)-1]
		}
		prev = r
	}
	if inQuote {
		return fmt.Errorf("unterminated string in %q", line)
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed %q in %q", stack[len(stack)-1], line)
	}
	return nil
}

func closes(r, open rune) bool {
	switch r {
	case ')':
		return open == '('
	case ']':
		return open == '[' || open == '>'
	default:
		return open == '{'
	}
}

func isIDRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
