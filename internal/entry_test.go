package internal

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/starford/canvas/internal/diagram"
	"github.com/starford/canvas/internal/models"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.Workspace.Path = filepath.Join(dir, "workspace")
	cfg.SQLite.Path = filepath.Join(dir, "canvas.db")
	cfg.Canvas.DefaultView = models.View3D.String()
	return cfg
}

func TestBuild_WiresSession(t *testing.T) {
	c, cfg, err := build(io.Discard, WithConfig(testConfig(t)), WithCompiler(diagram.NewBuiltin()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer c.Close()

	if got := c.sess.State().CurrentView; got != models.View3D {
		t.Errorf("view = %s, want 3d", got)
	}
	if err := c.db.Ping(); err != nil {
		t.Errorf("db ping: %v", err)
	}
	if _, err := c.docs.Save(t.Context(), "plan", []byte(`{}`), ""); err != nil {
		t.Errorf("save into workspace %s: %v", cfg.Workspace.Path, err)
	}
}

func TestBuild_RequiresConfig(t *testing.T) {
	if _, _, err := build(io.Discard); err == nil {
		t.Fatal("build without config should fail")
	}
}

func TestNewCompiler(t *testing.T) {
	c, err := newCompiler(DiagramConfig{Compiler: CompilerBuiltin}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*diagram.Builtin); !ok {
		t.Errorf("compiler = %T, want *diagram.Builtin", c)
	}

	_, err = newCompiler(DiagramConfig{Compiler: CompilerMermaidCLI, MMDCPath: "/nonexistent/mmdc"}, nil)
	if err == nil {
		t.Error("missing mmdc binary should fail")
	}
}
