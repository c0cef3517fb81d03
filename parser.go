package rbtranslations

import (
	"bytes"
	"context"
	"errors"
	"strings"
)

// Parser is an interface for parsing a single catalog from one of the
// supported file formats. In the resource-bundle model one file holds one
// locale's messages; the locale itself is encoded in the file name
// (e.g. messages_de_DE.properties), never in the file content.
type Parser interface {
	// Parse processes the given content and returns a flat catalog mapping
	// message keys to message strings. Formats with nested structure flatten
	// it into dot-separated keys.
	Parse(ctx context.Context, content []byte) (map[string]string, error)

	// SupportsFileExtension checks if the parser supports a given file
	// extension. The extension may or may not include a leading dot
	// (both "properties" and ".properties" are valid).
	SupportsFileExtension(ext string) bool
}

// ParserForFile returns a parser based on the file extension, or nil when
// the extension is not a supported catalog format.
func ParserForFile(filename string) Parser {
	ext := fileExtension(filename)

	switch strings.ToLower(ext) {
	case "properties":
		return NewPropertiesParser()
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	case "toml":
		return NewTOMLParser()
	default:
		return nil
	}
}

// defaultParsers returns one parser per supported catalog format, properties
// first so it wins when a basename exists in several formats.
func defaultParsers() []Parser {
	return []Parser{
		NewPropertiesParser(),
		NewJSONParser(),
		NewYAMLParser(),
		NewTOMLParser(),
	}
}

// fileExtension extracts the extension from a filename without the dot.
func fileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		return filename[idx+1:]
	}
	return ""
}

// PropertiesParser implements the Parser interface for Java properties files,
// the canonical resource-bundle format.
type PropertiesParser struct{}

// NewPropertiesParser creates a new PropertiesParser instance.
func NewPropertiesParser() *PropertiesParser {
	return &PropertiesParser{}
}

// Parse parses properties content and returns the catalog.
func (p *PropertiesParser) Parse(ctx context.Context, content []byte) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	return ParseProperties(bytes.NewReader(content))
}

// SupportsFileExtension checks if the parser supports the given file extension.
func (p *PropertiesParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "properties")
}
