package rbtranslations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Source defines where catalogs come from. Implementations answer two
// questions: which locales exist for a basename, and what is the raw catalog
// for one basename/locale pair.
type Source interface {
	// Locales lists the locales for which a catalog of the given basename
	// exists. The empty string denotes the base bundle (e.g.
	// "messages.properties").
	Locales(ctx context.Context, basename string) ([]string, error)

	// Load returns the catalog for one basename/locale pair. It returns
	// ErrCatalogNotFound when no such catalog exists; a missing candidate is
	// an expected part of fallback resolution, not a failure.
	Load(ctx context.Context, basename, locale string) (map[string]string, error)
}

// MapSource is a simple source that uses an in-memory map as the catalog
// store, keyed by locale (empty string for the base bundle). It is handy for
// tests and for programmatically built catalogs.
type MapSource struct {
	Data map[string]map[string]string
}

// Locales implements the Source interface.
func (s *MapSource) Locales(_ context.Context, _ string) ([]string, error) {
	locales := slices.Collect(maps.Keys(s.Data))
	slices.Sort(locales)
	return locales, nil
}

// Load implements the Source interface.
func (s *MapSource) Load(_ context.Context, _ string, locale string) (map[string]string, error) {
	catalog, ok := s.Data[locale]
	if !ok {
		return nil, ErrCatalogNotFound
	}
	return catalog, nil
}

// localeFromFileName extracts the locale from a catalog file name, returning
// ok=false when the file does not belong to the basename or has an extension
// none of the parsers support.
func localeFromFileName(name, basename string, parsers []Parser) (string, bool) {
	ext := fileExtension(name)
	if ext == "" || parserForExtension(parsers, ext) == nil {
		return "", false
	}

	stem := strings.TrimSuffix(name, "."+ext)
	if stem == basename {
		return "", true
	}
	if rest, ok := strings.CutPrefix(stem, basename+"_"); ok && rest != "" {
		return rest, true
	}
	return "", false
}

func parserForExtension(parsers []Parser, ext string) Parser {
	for _, p := range parsers {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// findCatalogFile picks the file holding the catalog for a basename/locale
// pair from directory entries. Parser order decides ties when the same
// catalog exists in several formats.
func findCatalogFile(entries []fs.DirEntry, basename, locale string, parsers []Parser) (string, Parser) {
	stem := basename
	if locale != "" {
		stem = basename + "_" + locale
	}

	var bestName string
	var bestParser Parser
	bestRank := len(parsers)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := fileExtension(name)
		if ext == "" || strings.TrimSuffix(name, "."+ext) != stem {
			continue
		}
		for rank, p := range parsers {
			if rank >= bestRank {
				break
			}
			if p.SupportsFileExtension(ext) {
				bestName, bestParser, bestRank = name, p, rank
				break
			}
		}
	}

	return bestName, bestParser
}

// localesFromEntries extracts the sorted locale list from directory entries.
func localesFromEntries(entries []fs.DirEntry, basename string, parsers []Parser) []string {
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if locale, ok := localeFromFileName(entry.Name(), basename, parsers); ok {
			seen[locale] = true
		}
	}

	locales := slices.Collect(maps.Keys(seen))
	slices.Sort(locales)
	return locales
}

// readFileCtx reads a file while respecting context cancellation. The read
// itself cannot be interrupted, but the caller stops waiting for it.
func readFileCtx(ctx context.Context, read func() ([]byte, error)) ([]byte, error) {
	done := make(chan struct{})
	var content []byte
	var readErr error

	go func() {
		content, readErr = read()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrLoadingCancelled, ctx.Err())
	case <-done:
	}

	if readErr != nil {
		return nil, errors.Join(ErrFailedToReadFile, readErr)
	}
	return content, nil
}

// DirSource loads catalogs from a directory on the local filesystem. One
// file per locale, the locale encoded in the file name:
// messages.properties, messages_de.properties, messages_de_DE.properties.
type DirSource struct {
	dir     string
	parsers []Parser
}

// NewDirSource creates a DirSource for the given directory. Without explicit
// parsers all supported catalog formats are recognized.
func NewDirSource(dir string, parsers ...Parser) *DirSource {
	if len(parsers) == 0 {
		parsers = defaultParsers()
	}
	return &DirSource{dir: dir, parsers: parsers}
}

// Dir returns the directory this source reads from.
func (s *DirSource) Dir() string {
	return s.dir
}

func (s *DirSource) readDir() ([]fs.DirEntry, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToAccessDirectory, err)
	}
	if !info.IsDir() {
		return nil, errors.Join(ErrFailedToAccessDirectory,
			fmt.Errorf("path %q is not a directory", s.dir))
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}
	return entries, nil
}

// Locales implements the Source interface.
func (s *DirSource) Locales(ctx context.Context, basename string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := s.readDir()
	if err != nil {
		return nil, err
	}
	return localesFromEntries(entries, basename, s.parsers), nil
}

// Load implements the Source interface.
func (s *DirSource) Load(ctx context.Context, basename, locale string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := s.readDir()
	if err != nil {
		return nil, err
	}

	name, parser := findCatalogFile(entries, basename, locale, s.parsers)
	if parser == nil {
		return nil, ErrCatalogNotFound
	}

	path := filepath.Join(s.dir, name)
	content, err := readFileCtx(ctx, func() ([]byte, error) {
		return os.ReadFile(path)
	})
	if err != nil {
		return nil, err
	}

	catalog, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return catalog, nil
}

// FSSource loads catalogs from any fs.FS, including an embed.FS. The dir is
// the directory inside the filesystem that holds the catalog files ("." for
// the root).
type FSSource struct {
	fsys    fs.FS
	dir     string
	parsers []Parser
}

// NewFSSource creates an FSSource. Without explicit parsers all supported
// catalog formats are recognized.
func NewFSSource(fsys fs.FS, dir string, parsers ...Parser) *FSSource {
	if dir == "" {
		dir = "."
	}
	if len(parsers) == 0 {
		parsers = defaultParsers()
	}
	return &FSSource{fsys: fsys, dir: dir, parsers: parsers}
}

// Locales implements the Source interface.
func (s *FSSource) Locales(ctx context.Context, basename string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}
	return localesFromEntries(entries, basename, s.parsers), nil
}

// Load implements the Source interface.
func (s *FSSource) Load(ctx context.Context, basename, locale string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	name, parser := findCatalogFile(entries, basename, locale, s.parsers)
	if parser == nil {
		return nil, ErrCatalogNotFound
	}

	full := name
	if s.dir != "." {
		full = s.dir + "/" + name
	}

	content, err := readFileCtx(ctx, func() ([]byte, error) {
		return fs.ReadFile(s.fsys, full)
	})
	if err != nil {
		return nil, err
	}

	catalog, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", full, err)
	}
	return catalog, nil
}
