package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/canvas/internal/history"
	"github.com/starford/canvas/internal/models"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Diagram compilers.
const (
	CompilerBuiltin    = "builtin"
	CompilerMermaidCLI = "mermaid-cli"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Workspace WorkspaceConfig   `yaml:"workspace"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Auth      AuthConfig        `yaml:"auth"`
	Canvas    CanvasConfig      `yaml:"canvas"`
	Diagram   DiagramConfig     `yaml:"diagram"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Workspace.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Canvas.Validate(); err != nil {
		return err
	}
	return c.Diagram.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// WorkspaceConfig holds the directory where canvases are saved.
type WorkspaceConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the workspace configuration.
func (c *WorkspaceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// CanvasConfig holds the defaults of a freshly mounted canvas.
type CanvasConfig struct {
	MaxHistorySteps int    `yaml:"max_history_steps"`
	DefaultView     string `yaml:"default_view"`
	DefaultMode     string `yaml:"default_mode"`
}

// Validate validates the canvas configuration.
func (c *CanvasConfig) Validate() error {
	if c.DefaultView == "" {
		c.DefaultView = models.View2D.String()
	}
	if c.DefaultMode == "" {
		c.DefaultMode = models.ModeArchVision.String()
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxHistorySteps, validation.Min(0), validation.Max(10000)),
		validation.Field(&c.DefaultView, validation.In(
			models.View2D.String(), models.View3D.String(), models.ViewIso.String())),
		validation.Field(&c.DefaultMode, validation.In(
			models.ModeArchVision.String(), models.ModeBrainCraft.String(), models.ModeHybrid.String())),
	)
}

// View returns the configured default view.
func (c *CanvasConfig) View() models.View { return models.View(c.DefaultView) }

// Mode returns the configured default mode.
func (c *CanvasConfig) Mode() models.Mode { return models.Mode(c.DefaultMode) }

// DiagramConfig selects the diagram compiler.
//
// Compiler is "builtin" (header and bracket checks only, no svg) or
// "mermaid-cli", which shells out to mmdc.
type DiagramConfig struct {
	Compiler      string        `yaml:"compiler"`
	MMDCPath      string        `yaml:"mmdc_path"`
	RenderTimeout time.Duration `yaml:"render_timeout"`
}

// Validate validates the diagram configuration.
func (c *DiagramConfig) Validate() error {
	if c.Compiler == "" {
		c.Compiler = CompilerBuiltin
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Compiler, validation.In(CompilerBuiltin, CompilerMermaidCLI)),
		validation.Field(&c.RenderTimeout, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Workspace: WorkspaceConfig{
			Path: "./workspace",
		},
		SQLite: SQLiteConfig{
			Path: "./canvas.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Canvas: CanvasConfig{
			MaxHistorySteps: history.DefaultMaxSteps,
			DefaultView:     models.View2D.String(),
			DefaultMode:     models.ModeArchVision.String(),
		},
		Diagram: DiagramConfig{
			Compiler:      CompilerBuiltin,
			MMDCPath:      "mmdc",
			RenderTimeout: 30 * time.Second,
		},
	}
}
