package vicalc

import (
	"log/slog"

	"github.com/javajack/vicalc/sheet"
)

// Options holds configuration for a Session.
type Options struct {
	name           string
	logger         *slog.Logger
	defaultWidth   int
	autoWidthLimit int
	listeners      []Listener
}

func defaultOptions() *Options {
	return &Options{
		name:           "Sheet1",
		defaultWidth:   sheet.DefaultWidth,
		autoWidthLimit: sheet.MaxWidth,
	}
}

// Option configures a Session.
type Option func(*Options)

// WithName sets the sheet name (default: "Sheet1").
func WithName(name string) Option {
	return func(o *Options) { o.name = name }
}

// WithLogger sets the structured logger used by the session and its engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithDefaultColWidth sets the width of columns without an explicit width (default: 10).
func WithDefaultColWidth(w int) Option {
	return func(o *Options) { o.defaultWidth = w }
}

// WithAutoWidthLimit caps the width AutoWidth may assign (default: 50).
func WithAutoWidthLimit(w int) Option {
	return func(o *Options) { o.autoWidthLimit = w }
}

// WithListener adds a listener that is notified of every cell and line change.
func WithListener(l Listener) Option {
	return func(o *Options) { o.listeners = append(o.listeners, l) }
}
