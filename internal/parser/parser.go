// Package parser cleans diagram source text and extracts its metadata: the
// title comment, optional YAML frontmatter and the header keyword.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/canvas/internal/models"
)

// DefaultTitle is used when the source carries no %%Title%% comment.
const DefaultTitle = "Untitled Diagram"

var (
	fenceRe = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n(.*?)\r?\n?```$")
	titleRe = regexp.MustCompile(`^%%([^%{\n][^%\n]*)%%`)

	// ErrNoHeader is returned when the source has no diagram declaration.
	ErrNoHeader = errors.New("missing diagram declaration")
)

// headerTypes maps declaration keywords onto diagram types.
var headerTypes = map[string]models.DiagramType{
	"flowchart":       models.DiagramFlowchart,
	"graph":           models.DiagramFlowchart,
	"sequenceDiagram": models.DiagramSequence,
	"classDiagram":    models.DiagramClass,
	"classDiagram-v2": models.DiagramClass,
	"stateDiagram":    models.DiagramState,
	"stateDiagram-v2": models.DiagramState,
	"erDiagram":       models.DiagramER,
	"gantt":           models.DiagramGantt,
	"pie":             models.DiagramPie,
	"mindmap":         models.DiagramMindmap,
}

// Result holds the output of parsing diagram source.
type Result struct {
	// Code is the source with any markdown fence removed and whitespace trimmed.
	Code        string
	Title       string
	Frontmatter map[string]any
	// Keyword is the declaration keyword of the first statement, e.g. "flowchart".
	Keyword string
	Type    models.DiagramType
	// Body holds the statements after the declaration line.
	Body []string
}

// Parse cleans code and extracts its metadata. Invalid frontmatter or a missing
// declaration is reported as an error.
func Parse(code string) (*Result, error) {
	clean := Clean(code)
	fm, rest, err := splitFrontmatter(clean)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Code:        clean,
		Title:       ExtractTitle(clean),
		Frontmatter: fm,
	}
	lines := statements(rest)
	if len(lines) == 0 {
		return res, ErrNoHeader
	}
	res.Keyword = strings.TrimSuffix(strings.Fields(lines[0])[0], ";")
	res.Type = headerTypes[res.Keyword]
	res.Body = lines[1:]
	return res, nil
}

// Clean strips a surrounding markdown code fence and trims whitespace.
func Clean(code string) string {
	return strings.TrimSpace(StripFence(code))
}

// StripFence returns the contents of a ```-fenced block, or code unchanged
// when it is not fenced.
func StripFence(code string) string {
	trimmed := strings.TrimSpace(code)
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return code
}

// ExtractTitle reads a leading %%Title%% comment. Without one the title is
// DefaultTitle; no other source of a title is consulted.
func ExtractTitle(code string) string {
	m := titleRe.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return DefaultTitle
	}
	if title := strings.TrimSpace(m[1]); title != "" {
		return title
	}
	return DefaultTitle
}

// DetectType returns the diagram type declared by code, or "" when the
// declaration is missing or unknown.
func DetectType(code string) models.DiagramType {
	res, err := Parse(code)
	if err != nil {
		return ""
	}
	return res.Type
}

// splitFrontmatter separates a leading YAML block between --- delimiters.
func splitFrontmatter(code string) (map[string]any, string, error) {
	const delim = "---"
	if !strings.HasPrefix(code, delim) {
		return nil, code, nil
	}
	rest := code[len(delim):]
	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		return nil, "", fmt.Errorf("unterminated frontmatter")
	}
	block := rest[:idx]
	body := rest[idx+1+len(delim):]

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, "", fmt.Errorf("invalid frontmatter: %w", err)
	}
	return fm, body, nil
}

// statements returns the non-blank, non-comment lines of code, trimmed.
func statements(code string) []string {
	var out []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		out = append(out, line)
	}
	return out
}
