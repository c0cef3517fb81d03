package rbtranslations

import (
	"errors"
	"fmt"
)

// Package errors use descriptive messages for debugging while avoiding
// implementation details. Cancellation errors are separated to allow proper
// error handling in timeouts.
var (
	// Translator construction
	ErrNilSource     = errors.New("source is nil")
	ErrEmptyBasename = errors.New("basename is empty")

	// Bundle resolution
	ErrBundleNotFound  = errors.New("no bundle found for basename")
	ErrCatalogNotFound = errors.New("catalog not found")

	// Properties parsing
	ErrFailedToParseProperties = errors.New("failed to parse properties content")
	ErrInvalidUnicodeEscape    = errors.New("invalid \\uXXXX escape sequence")
	ErrUnknownEncoding         = errors.New("unknown encoding in coding comment")
	ErrFailedToDecodeLine      = errors.New("failed to decode line with declared encoding")

	// Other catalog formats
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToParseTOML = errors.New("failed to parse TOML content")
	ErrParsingCancelled  = errors.New("catalog parsing cancelled")

	// File and directory operations
	ErrFailedToReadFile        = errors.New("failed to read catalog file")
	ErrFailedToAccessDirectory = errors.New("failed to access catalog directory")
	ErrFailedToReadDirectory   = errors.New("failed to read catalog directory")
	ErrLoadingCancelled        = errors.New("loading catalog cancelled")

	// S3 operations
	ErrInvalidS3Config     = errors.New("invalid S3 source configuration")
	ErrFailedToListBucket  = errors.New("failed to list catalog objects in bucket")
	ErrFailedToFetchObject = errors.New("failed to fetch catalog object")

	// JSON export
	ErrFailedToMarshalJSON = errors.New("failed to marshal translations to JSON")

	// Watcher
	ErrNilTranslator = errors.New("translator is nil")
	ErrWatcherClosed = errors.New("watcher already closed")
)

// InvalidLocaleError indicates that a locale identifier could not be
// normalized into the lang_COUNTRY_variant form.
type InvalidLocaleError struct {
	Locale string
}

func (e *InvalidLocaleError) Error() string {
	return fmt.Sprintf("invalid locale: %q", e.Locale)
}

// LocaleNotSupportedError indicates that the requested locale has no bundle.
type LocaleNotSupportedError struct {
	Locale string
}

func (e *LocaleNotSupportedError) Error() string {
	return fmt.Sprintf("locale not supported: %s", e.Locale)
}
