package rbtranslations

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength prevents resource exhaustion through oversized
// Accept-Language headers. RFC 7231 doesn't specify a limit, but 4KB is
// generous for legitimate headers.
const maxAcceptLanguageLength = 4096

// localeWithQ represents a language tag with its quality value.
type localeWithQ struct {
	locale string
	q      float64
}

// parseAcceptLanguageHeader parses Accept-Language headers according to
// RFC 7231. Quality values order the user preferences; malformed entries are
// skipped rather than failing the whole header.
func parseAcceptLanguageHeader(header string) []localeWithQ {
	if header == "" {
		return nil
	}

	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var locales []localeWithQ

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		localeAndQ := strings.Split(part, ";")
		locale := strings.TrimSpace(localeAndQ[0])
		q := 1.0

		if len(localeAndQ) > 1 {
			qPart := strings.TrimSpace(localeAndQ[1])
			if strings.HasPrefix(qPart, "q=") {
				if qVal, err := strconv.ParseFloat(qPart[2:], 64); err == nil && qVal >= 0 && qVal <= 1 {
					q = qVal
				}
			}
		}

		if locale != "" && locale != "*" {
			locales = append(locales, localeWithQ{locale: locale, q: q})
		}
	}

	// Sort by quality descending to respect user preferences.
	slices.SortFunc(locales, func(a, b localeWithQ) int {
		return cmp.Compare(b.q, a.q)
	})

	return locales
}

// NegotiateLocale implements RFC 7231 Accept-Language negotiation against the
// supported locales, with resource-bundle fallback: it first tries exact
// matches ("de_DE"), then walks each preference's candidate chain
// ("de_DE" -> "de"). Locales are compared in normalized form, so hyphenated
// header entries match underscore bundle names.
func NegotiateLocale(header string, supported []string, defaultLocale string) string {
	if header == "" || len(supported) == 0 {
		return defaultLocale
	}

	normalizedSupported := make(map[string]string, len(supported))
	for _, locale := range supported {
		if normalized, err := NormalizeLocale(locale); err == nil {
			normalizedSupported[normalized] = locale
		}
	}

	preferences := parseAcceptLanguageHeader(header)

	// Phase 1: exact matches, in quality order.
	for _, pref := range preferences {
		if normalized, err := NormalizeLocale(pref.locale); err == nil {
			if match, ok := normalizedSupported[normalized]; ok {
				return match
			}
		}
	}

	// Phase 2: candidate-chain fallback, only after all exact matches are
	// exhausted to respect quality ordering.
	for _, pref := range preferences {
		for _, candidate := range LocaleCandidates(pref.locale) {
			if match, ok := normalizedSupported[candidate]; ok {
				return match
			}
		}
	}

	return defaultLocale
}
