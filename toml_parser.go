package rbtranslations

import (
	"context"
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLParser implements the Parser interface for TOML catalogs.
type TOMLParser struct{}

// NewTOMLParser creates a new TOMLParser instance.
func NewTOMLParser() *TOMLParser {
	return &TOMLParser{}
}

// Parse parses TOML content and returns the flattened catalog.
func (p *TOMLParser) Parse(ctx context.Context, content []byte) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseTOML, err)
	}

	return flattenCatalog(data), nil
}

// SupportsFileExtension checks if the parser supports the given file extension.
func (p *TOMLParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "toml")
}
