package diagram

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/canvas/internal/apperr"
	"github.com/starford/canvas/internal/idgen"
	"github.com/starford/canvas/internal/models"
	"github.com/starford/canvas/internal/parser"
)

// Service orchestrates diagram generation, validation and export.
type Service struct {
	compiler Compiler
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a diagram service backed by compiler.
func NewService(compiler Compiler, opts ...Option) *Service {
	s := &Service{
		compiler: compiler,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateFromPrompt returns a canned example for diagramType. The prompt is
// not interpreted yet. Unknown types get the default flowchart.
func (s *Service) GenerateFromPrompt(ctx context.Context, prompt string, diagramType models.DiagramType) (models.DiagramData, error) {
	if err := ctx.Err(); err != nil {
		return models.DiagramData{}, err
	}
	code := exampleFor(diagramType)
	if !diagramType.Valid() {
		diagramType = models.DiagramFlowchart
	}
	s.logger.Debug("diagram: generated from prompt",
		slog.String("type", diagramType.String()),
		slog.Int("prompt_len", len(prompt)))
	return s.newDiagram(diagramType, code), nil
}

// ValidateAndFormat strips a markdown fence from code, checks it with the
// compiler and wraps the cleaned source into a new diagram.
func (s *Service) ValidateAndFormat(ctx context.Context, code string, diagramType models.DiagramType) (models.DiagramData, error) {
	clean := parser.Clean(code)
	if err := s.compiler.Parse(ctx, clean); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.DiagramData{}, ctxErr
		}
		return models.DiagramData{}, apperr.Wrap(apperr.KindParseFailed, err, "invalid diagram code: %s", err.Error())
	}
	if !diagramType.Valid() {
		if detected := parser.DetectType(clean); detected != "" {
			diagramType = detected
		} else {
			diagramType = models.DiagramFlowchart
		}
	}
	return s.newDiagram(diagramType, clean), nil
}

// ExportDiagram renders d. Only svg is supported.
func (s *Service) ExportDiagram(ctx context.Context, d models.DiagramData, format models.DiagramFormat) (string, error) {
	switch format {
	case models.DiagramSVG:
		svg, err := s.compiler.Render(ctx, d.ID, d.Code)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindInternal {
				return "", err
			}
			return "", apperr.Wrap(apperr.KindParseFailed, err, "render diagram: %s", err.Error())
		}
		return svg, nil
	case models.DiagramPNG, models.DiagramPDF:
		return "", apperr.Unsupported("export format %s is not supported yet", format)
	default:
		return "", apperr.Unsupported("export format %q is not supported", format)
	}
}

func (s *Service) newDiagram(t models.DiagramType, code string) models.DiagramData {
	now := s.now()
	return models.DiagramData{
		ID:        idgen.TimeOrdered(),
		Type:      t,
		Code:      code,
		Title:     parser.ExtractTitle(code),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
