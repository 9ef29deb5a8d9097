package diagram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultRenderTimeout bounds a single mermaid-cli invocation.
const DefaultRenderTimeout = 30 * time.Second

// CLI renders diagrams by running the mermaid command line tool (mmdc).
type CLI struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger
	lint    Builtin
}

// NewCLI resolves the mmdc binary. path may be a bare command name found on PATH.
func NewCLI(path string, timeout time.Duration, logger *slog.Logger) (*CLI, error) {
	if path == "" {
		path = "mmdc"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("diagram: mermaid-cli not found: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CLI{path: resolved, timeout: timeout, logger: logger}, nil
}

// Parse runs the structural checks, then renders into a scratch file that is
// discarded.
func (c *CLI) Parse(ctx context.Context, code string) error {
	if err := c.lint.Parse(ctx, code); err != nil {
		return err
	}
	_, err := c.Render(ctx, "parse", code)
	return err
}

// Render writes code to a temp dir, runs mmdc and returns the SVG it produced.
func (c *CLI) Render(ctx context.Context, id, code string) (string, error) {
	dir, err := os.MkdirTemp("", "canvas-mmdc-*")
	if err != nil {
		return "", fmt.Errorf("diagram: create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input.mmd")
	out := filepath.Join(dir, "output.svg")
	if err := os.WriteFile(in, []byte(code), 0o600); err != nil {
		return "", fmt.Errorf("diagram: write input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, "-i", in, "-o", out, "--quiet")
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.New(msg)
	}
	c.logger.Debug("diagram: rendered",
		slog.String("id", id),
		slog.Duration("elapsed", time.Since(start)))

	svg, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("diagram: read output: %w", err)
	}
	return string(svg), nil
}
