// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/canvas/internal/api"
	"github.com/starford/canvas/internal/diagram"
	"github.com/starford/canvas/internal/documents"
	"github.com/starford/canvas/internal/index"
	"github.com/starford/canvas/internal/mcpserver"
	"github.com/starford/canvas/internal/session"
	"github.com/starford/canvas/internal/sse"
	"github.com/starford/canvas/internal/storage"
	"github.com/starford/canvas/internal/store"
)

// components are the services shared by the HTTP and MCP entry points.
type components struct {
	logger *slog.Logger
	store  storage.Provider
	db     *index.DB
	sess   *session.Session
	docs   *documents.Service
}

func (c *components) Close() error {
	return c.db.Close()
}

// build applies opts and wires storage, index, diagram service and session.
// Logs go to logOut.
func build(logOut io.Writer, opts ...Option) (*components, *Config, error) {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("workspace_path", cfg.Workspace.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("diagram_compiler", cfg.Diagram.Compiler),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure workspace directory exists.
	if err := os.MkdirAll(cfg.Workspace.Path, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create workspace dir: %w", err)
	}

	// Initialize storage.
	fs, err := storage.NewFS(cfg.Workspace.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	// Initialize SQLite index.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}

	// Run initial sync.
	if err := index.Sync(db, fs, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	compiler := app.compiler
	if compiler == nil {
		compiler, err = newCompiler(cfg.Diagram, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	diagrams := diagram.NewService(compiler, diagram.WithLogger(logger))
	sess := session.New(diagrams,
		session.WithMaxHistory(cfg.Canvas.MaxHistorySteps),
		session.WithView(cfg.Canvas.View()),
		session.WithMode(cfg.Canvas.Mode()),
		session.WithLogger(logger),
	)

	return &components{
		logger: logger,
		store:  fs,
		db:     db,
		sess:   sess,
		docs:   documents.NewService(fs, db),
	}, cfg, nil
}

func newCompiler(cfg DiagramConfig, logger *slog.Logger) (diagram.Compiler, error) {
	switch cfg.Compiler {
	case CompilerMermaidCLI:
		cli, err := diagram.NewCLI(cfg.MMDCPath, cfg.RenderTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("init diagram compiler: %w", err)
		}
		return cli, nil
	default:
		return diagram.NewBuiltin(), nil
	}
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	c, cfg, err := build(os.Stdout, opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	logger := c.logger

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	unsubscribe := c.sess.Subscribe(func(st store.State, a store.Action) {
		broker.PublishCanvasChange(sse.CanvasChange{
			Action:    a.Type(),
			View:      st.CurrentView.String(),
			Mode:      st.CurrentMode.String(),
			NodeCount: len(st.Nodes),
			EdgeCount: len(st.Edges),
			IsLoading: st.IsLoading,
			Error:     st.Error,
		})
	})
	defer unsubscribe()

	apiRouter := api.NewRouter(c.sess, c.docs, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := c.db.Ping(); err != nil {
			logger.Warn("readiness check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Document changes made on disk reach clients through the watcher; API
	// writes land there too, so handlers do not publish document events.
	g.Go(func() error {
		err := index.Watch(gCtx, c.db, c.store, cfg.Workspace.Path, logger, func(kind, name string) {
			broker.PublishDocumentEvent(kind, name)
		})
		if err != nil {
			logger.Warn("workspace watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the canvas tools over stdio. Logs go to stderr because stdout
// carries the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	c, _, err := build(os.Stderr, opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	c.logger.Info("Starting MCP server on stdio")
	if err := mcpserver.New(c.sess, c.docs).ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
