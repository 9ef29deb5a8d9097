package internal

import "github.com/starford/canvas/internal/diagram"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	compiler diagram.Compiler
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithCompiler overrides the diagram compiler selected by the configuration.
func WithCompiler(c diagram.Compiler) Option {
	return func(a *application) {
		a.compiler = c
	}
}
