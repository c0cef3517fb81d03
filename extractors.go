package rbtranslations

import (
	"net/http"
	"strings"
)

// LocaleExtractor is a function type that extracts a locale from an HTTP
// request. It is typically used to determine the user's preferred language
// for localization.
type LocaleExtractor func(r *http.Request) string

// localeValidator validates locale values found in requests against the
// supported locales.
type localeValidator struct {
	supported map[string]string
}

func newLocaleValidator(supported []string) *localeValidator {
	normalized := make(map[string]string, len(supported))
	for _, locale := range supported {
		if n, err := NormalizeLocale(locale); err == nil {
			normalized[n] = locale
		}
	}
	return &localeValidator{supported: normalized}
}

// validate normalizes a locale and, when a supported list was configured,
// resolves it against that list through the candidate chain. Returns "" when
// the value is unusable.
func (v *localeValidator) validate(locale string) string {
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return ""
	}

	if len(v.supported) == 0 {
		return normalized
	}

	for _, candidate := range LocaleCandidates(normalized) {
		if match, ok := v.supported[candidate]; ok {
			return match
		}
	}
	return ""
}

// ExtractorConfig holds configuration for the locale extractor.
type ExtractorConfig struct {
	CookieName       string
	QueryParamName   string
	SupportedLocales []string
}

// ExtractorOption configures the locale extractor.
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie name to check for the locale preference.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name == "" {
			return
		}
		c.CookieName = name
	}
}

// WithQueryParamName sets the query parameter name to check for the locale.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name == "" {
			return
		}
		c.QueryParamName = name
	}
}

// WithSupportedLocales sets the locales requests are validated against.
func WithSupportedLocales(locales ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(locales) == 0 {
			return
		}
		c.SupportedLocales = locales
	}
}

// DefaultLocaleExtractor creates a locale extractor that checks multiple
// sources in priority order:
//
//  1. Cookie (default name: "lang")
//  2. Query parameter (default name: "lang")
//  3. Language header
//  4. Accept-Language header
//
// The extractor returns the first usable locale found. With
// WithSupportedLocales, values are resolved against the supported list; for
// Accept-Language the full negotiation of NegotiateLocale applies.
func DefaultLocaleExtractor(opts ...ExtractorOption) LocaleExtractor {
	config := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	validator := newLocaleValidator(config.SupportedLocales)

	return func(r *http.Request) string {
		if config.CookieName != "" {
			if cookie, err := r.Cookie(config.CookieName); err == nil && cookie.Value != "" {
				if validated := validator.validate(strings.TrimSpace(cookie.Value)); validated != "" {
					return validated
				}
			}
		}

		if config.QueryParamName != "" {
			if locale := strings.TrimSpace(r.URL.Query().Get(config.QueryParamName)); locale != "" {
				if validated := validator.validate(locale); validated != "" {
					return validated
				}
			}
		}

		// Non-standard but sometimes used.
		if locale := strings.TrimSpace(r.Header.Get("Language")); locale != "" {
			if validated := validator.validate(locale); validated != "" {
				return validated
			}
		}

		acceptLang := r.Header.Get("Accept-Language")
		if acceptLang != "" {
			if len(config.SupportedLocales) > 0 {
				return NegotiateLocale(acceptLang, config.SupportedLocales, "")
			}
			if prefs := parseAcceptLanguageHeader(acceptLang); len(prefs) > 0 {
				if normalized, err := NormalizeLocale(prefs[0].locale); err == nil {
					return normalized
				}
			}
		}

		// Empty string lets the middleware apply its default.
		return ""
	}
}
