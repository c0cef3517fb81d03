package rbtranslations

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config describes the environment variables NewFromEnv reads. A .env file
// in the working directory is honored when present.
type Config struct {
	Dir           string `env:"RBTRANSLATIONS_DIR,required"`
	Basename      string `env:"RBTRANSLATIONS_BASENAME" envDefault:"messages"`
	DefaultLocale string `env:"RBTRANSLATIONS_DEFAULT_LOCALE" envDefault:"en"`
	FallbackToKey bool   `env:"RBTRANSLATIONS_FALLBACK_TO_KEY" envDefault:"true"`
}

// NewFromEnv builds a directory-backed Translator from environment
// variables. Additional options are applied after the environment-derived
// ones and may override them.
func NewFromEnv(ctx context.Context, options ...Option) (*Translator, error) {
	// The .env file is optional when the variables come from the real
	// environment (Docker, CI, etc.).
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	opts := append([]Option{
		WithDefaultLocale(cfg.DefaultLocale),
		WithFallbackToKey(cfg.FallbackToKey),
	}, options...)

	return NewTranslator(ctx, NewDirSource(cfg.Dir), cfg.Basename, opts...)
}
