package rbtranslations

import (
	"io"
	"log/slog"
)

// Option is a function that configures a Translator instance.
type Option func(*Translator)

// WithDefaultLocale sets the default locale for the translator. Its bundle
// chain is consulted when the requested locale has no bundle or lacks a key.
func WithDefaultLocale(locale string) Option {
	return func(t *Translator) {
		if normalized, err := NormalizeLocale(locale); err == nil {
			t.defaultLocale = normalized
		}
	}
}

// WithFallbackToKey determines whether to fall back to the key when a
// translation is not found. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger provides a customizable logger for the translator.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingLogging controls whether missing translations are logged.
// Default is false to avoid excessive logging.
func WithMissingLogging(log bool) Option {
	return func(t *Translator) {
		t.logMissing = log
	}
}

// WithNoLogging is a convenience option that disables all logging.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		t.logMissing = false
	}
}
