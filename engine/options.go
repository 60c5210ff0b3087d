package engine

import (
	"go.uber.org/zap"

	"github.com/spektr-org/chartform/colors"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Transform()
// ============================================================================

// Option configures transform behavior.
type Option func(*config)

type config struct {
	logger *zap.Logger
	scale  *colors.CategoricalScale
	focus  *FocusCell
}

// WithLogger attaches a structured logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScale supplies a shared color scale. Hosts rendering several
// charts pass one scale so identical series land on identical colors
// across charts.
func WithScale(scale *colors.CategoricalScale) Option {
	return func(c *config) {
		if scale != nil {
			c.scale = scale
		}
	}
}

// WithFocusCell reuses a focus cell across re-renders so the focused
// series survives a transform invocation.
func WithFocusCell(cell *FocusCell) Option {
	return func(c *config) {
		if cell != nil {
			c.focus = cell
		}
	}
}

func applyOptions(scheme string, opts []Option) *config {
	cfg := &config{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.scale == nil {
		cfg.scale = colors.NewScale(scheme)
	}
	if cfg.focus == nil {
		cfg.focus = &FocusCell{}
	}
	return cfg
}
