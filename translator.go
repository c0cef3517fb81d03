package rbtranslations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"sync"
)

// Translator is the user-facing facade. It resolves one merged Bundle per
// available locale of a basename and serves translations with resource-bundle
// fallback, named placeholder substitution and count-aware pluralisation.
// It is safe for concurrent use.
type Translator struct {
	source        Source
	basename      string
	defaultLocale string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger

	mu      sync.RWMutex
	bundles map[string]*Bundle
}

// NewTranslator creates a Translator for one basename backed by the given
// source. All available catalogs are resolved eagerly so that later lookups
// never touch the source.
func NewTranslator(ctx context.Context, source Source, basename string, options ...Option) (*Translator, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if basename == "" {
		return nil, ErrEmptyBasename
	}

	t := &Translator{
		source:        source,
		basename:      basename,
		defaultLocale: DefaultLocale,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)), // nop logger by default
	}
	for _, option := range options {
		option(t)
	}

	bundles, err := t.resolveBundles(ctx)
	if err != nil {
		return nil, err
	}

	t.bundles = bundles
	t.logger.InfoContext(ctx, "bundles resolved",
		"basename", basename, "locales", localeSet(bundles))
	return t, nil
}

// resolveBundles loads every available catalog once and chains each locale's
// bundle to its candidate parents, most specific first, ending at the base
// bundle.
func (t *Translator) resolveBundles(ctx context.Context) (map[string]*Bundle, error) {
	available, err := t.source.Locales(ctx, t.basename)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, errors.Join(ErrBundleNotFound, fmt.Errorf("basename %q", t.basename))
	}

	catalogs := make(map[string]map[string]string, len(available))
	for _, locale := range available {
		catalog, err := t.source.Load(ctx, t.basename, locale)
		if err != nil {
			if errors.Is(err, ErrCatalogNotFound) {
				continue
			}
			return nil, err
		}
		// File names may spell the locale any way NormalizeLocale accepts
		// (messages_DE.properties, messages_pt-br.properties); catalogs are
		// keyed by the canonical form so request locales find them.
		key := locale
		if locale != "" {
			if normalized, err := NormalizeLocale(locale); err == nil {
				key = normalized
			}
		}
		catalogs[key] = catalog
	}
	if len(catalogs) == 0 {
		return nil, errors.Join(ErrBundleNotFound, fmt.Errorf("basename %q", t.basename))
	}

	bundles := make(map[string]*Bundle, len(catalogs))

	// The base bundle is the root of every chain. It may be absent; chains
	// then simply end one level earlier.
	var base *Bundle
	if catalog, ok := catalogs[""]; ok {
		base = NewBundle("", catalog, nil)
		bundles[""] = base
	}

	var resolve func(locale string) *Bundle
	resolve = func(locale string) *Bundle {
		if locale == "" {
			return base
		}
		if b, ok := bundles[locale]; ok {
			return b
		}

		parentLocale := ""
		if candidates := LocaleCandidates(locale); len(candidates) > 1 {
			parentLocale = candidates[1]
		}
		parent := resolve(parentLocale)

		catalog, ok := catalogs[locale]
		if !ok {
			// No catalog at this level: the chain skips it.
			return parent
		}

		b := NewBundle(locale, catalog, parent)
		bundles[locale] = b
		return b
	}

	for locale := range catalogs {
		resolve(locale)
	}

	return bundles, nil
}

// Reload re-resolves all bundles from the source and swaps them in
// atomically. On failure the previous state is kept and the error returned.
func (t *Translator) Reload(ctx context.Context) error {
	bundles, err := t.resolveBundles(ctx)
	if err != nil {
		t.logger.ErrorContext(ctx, "bundle reload failed",
			"basename", t.basename, "error", err)
		return err
	}

	t.mu.Lock()
	t.bundles = bundles
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "bundles reloaded",
		"basename", t.basename, "locales", localeSet(bundles))
	return nil
}

// Basename reports the basename this translator serves.
func (t *Translator) Basename() string {
	return t.basename
}

// DefaultLocale reports the configured default locale.
func (t *Translator) DefaultLocale() string {
	return t.defaultLocale
}

// Locales returns the locales a bundle was resolved for, sorted. The empty
// string denotes the base bundle.
func (t *Translator) Locales() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return localeSet(t.bundles)
}

func localeSet(bundles map[string]*Bundle) []string {
	locales := slices.Collect(maps.Keys(bundles))
	slices.Sort(locales)
	return locales
}

// Bundle returns the merged bundle serving the given locale, walking the
// candidate chain and finally the default locale. Returns nil when nothing
// matches at all (no base bundle either).
func (t *Translator) Bundle(locale string) *Bundle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bundle(locale)
}

// bundle picks the best bundle for a locale, probing the preference chain
// over the locale and the default locale down to the base bundle. Callers
// must hold t.mu.
func (t *Translator) bundle(locale string) *Bundle {
	for _, candidate := range expandLocales(locale, t.defaultLocale) {
		if b, ok := t.bundles[candidate]; ok {
			return b
		}
	}
	return nil
}

// lookup finds the message for a key, trying the locale's chain first and
// the default locale's chain second. Callers must hold t.mu.
func (t *Translator) lookup(locale, key string) (string, bool) {
	b := t.bundle(locale)
	if b != nil {
		if msg, ok := b.Lookup(key); ok {
			return msg, true
		}
	}
	if d := t.bundle(t.defaultLocale); d != nil && d != b {
		if msg, ok := d.Lookup(key); ok {
			return msg, true
		}
	}
	return "", false
}

// HasTranslation checks if a translation exists for the given locale and
// key, including inherited parent-bundle entries.
func (t *Translator) HasTranslation(locale, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.lookup(locale, key)
	return ok
}

// buildParams converts a slice of strings (expected as key, value, key,
// value, …) into a map. If the number of arguments is odd, the last one is
// ignored.
func buildParams(args []string) map[string]string {
	params := make(map[string]string)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

// paramRegex finds named parameters in the form %{name}.
var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf substitutes named placeholders of the form "%{key}" with values
// from the key/value argument pairs. Unknown placeholders are left intact.
func sprintf(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := buildParams(args)
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}

// T translates a key for the given locale. It supports formatting with
// additional arguments provided as key-value pairs.
//
// Lookup walks the locale's bundle chain (de_DE_bavarian -> de_DE -> de ->
// base bundle) and then the default locale's chain. If nothing matches and
// the translator falls back to keys (the default), the key itself is
// returned with placeholders substituted; otherwise an empty string.
//
// Example:
//
//	// With translation "welcome": "Hello, %{name}!"
//	msg := translator.T("en", "welcome", "name", "John")
//	// Returns: "Hello, John!"
func (t *Translator) T(locale, key string, args ...string) string {
	if key == "" {
		return ""
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	msg, ok := t.lookup(locale, key)
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", "locale", locale, "key", key)
		}
		if t.fallbackToKey {
			return sprintf(key, args)
		}
		return ""
	}
	return sprintf(msg, args)
}

// N translates a key with pluralization for the given locale. The parameter
// n selects the plural form:
//
//   - n=0 tries key+".zero" first, falling back to key+".other"
//   - n=1 tries key+".one"
//   - all other values use key+".other"
//
// When no suffixed entry exists the key itself is tried as a plain message.
// A "count" argument is injected automatically unless the caller provided
// one.
//
// Example:
//
//	// "items.one": "%{count} item", "items.other": "%{count} items"
//	translator.N("en", "items", 5) // Returns: "5 items"
func (t *Translator) N(locale, key string, n int, args ...string) string {
	if key == "" {
		return ""
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var msg string
	var ok bool

	switch {
	case n == 0:
		if msg, ok = t.lookup(locale, key+".zero"); !ok {
			msg, ok = t.lookup(locale, key+".other")
		}
	case n == 1:
		msg, ok = t.lookup(locale, key+".one")
	}
	if !ok {
		msg, ok = t.lookup(locale, key+".other")
	}
	if !ok {
		// A plain entry may carry its own pluralization.
		msg, ok = t.lookup(locale, key)
	}

	if !ok {
		if t.logMissing {
			t.logger.Warn("pluralization not found", "locale", locale, "key", key, "n", n)
		}
		if t.fallbackToKey {
			return sprintf(key, withCount(args, n))
		}
		return ""
	}
	return sprintf(msg, withCount(args, n))
}

// withCount injects the count argument unless already present.
func withCount(args []string, n int) []string {
	for i := 0; i < len(args)-1; i += 2 {
		if args[i] == "count" {
			return args
		}
	}
	return append(slices.Clip(slices.Clone(args)), "count", strconv.Itoa(n))
}

// Td translates a key with an explicit default used when the translation is
// not found, rather than falling back to the key itself.
func (t *Translator) Td(locale, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	msg, ok := t.lookup(locale, key)
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", "locale", locale, "key", key)
		}
		return sprintf(defaultValue, args)
	}
	return sprintf(msg, args)
}

// Tc translates a key using the locale stored in the context by the
// middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc translates a plural key using the locale stored in the context by the
// middleware.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

// ExportJSON returns the merged catalog serving a locale as a JSON string.
// Useful for client-side translation in web applications.
func (t *Translator) ExportJSON(locale string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	b := t.bundle(locale)
	if b == nil {
		return "", &LocaleNotSupportedError{Locale: locale}
	}

	bytes, err := json.Marshal(b.Messages())
	if err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return string(bytes), nil
}
