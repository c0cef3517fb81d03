package rbtranslations

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is the locale assumed when nothing else is configured or
// detected.
const DefaultLocale = "en"

// maxLocaleLength caps locale identifiers; RFC 5646 recommends 35 characters
// as the longest reasonable language tag.
const maxLocaleLength = 35

// NormalizeLocale validates a locale identifier and returns it in the
// canonical lang_COUNTRY_variant form used for bundle file names. Both BCP 47
// hyphens and Java-style underscores are accepted on input, so "de-DE",
// "de_DE" and "DE_de" all normalize to "de_DE".
//
// Well-formed BCP 47 tags are canonicalized through golang.org/x/text;
// resource-bundle variants that BCP 47 does not register (e.g.
// "de_DE_bavarian") keep their variant part verbatim.
func NormalizeLocale(locale string) (string, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" || len(locale) > maxLocaleLength {
		return "", &InvalidLocaleError{Locale: locale}
	}

	parts := strings.FieldsFunc(locale, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 || !isAlpha(parts[0]) || len(parts[0]) < 2 || len(parts[0]) > 3 {
		return "", &InvalidLocaleError{Locale: locale}
	}

	// Let BCP 47 canonicalize the language/region pair when it can.
	if tag, err := language.Parse(strings.Join(parts[:min(len(parts), 2)], "-")); err == nil {
		canonical := strings.Split(tag.String(), "-")
		copy(parts, canonical)
	} else {
		parts[0] = strings.ToLower(parts[0])
		if len(parts) > 1 && len(parts[1]) == 2 && isAlpha(parts[1]) {
			parts[1] = strings.ToUpper(parts[1])
		}
	}

	return strings.Join(parts, "_"), nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

// LocaleCandidates returns the hierarchical fallback chain for a locale,
// most specific first: "de_DE_bavarian" yields
// ["de_DE_bavarian", "de_DE", "de"]. The locale is normalized first; an
// invalid locale yields nil.
func LocaleCandidates(locale string) []string {
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return nil
	}

	parts := strings.Split(normalized, "_")
	candidates := make([]string, 0, len(parts))
	for i := len(parts); i > 0; i-- {
		candidates = append(candidates, strings.Join(parts[:i], "_"))
	}
	return candidates
}

// expandLocales builds the full preference-ordered lookup chain over all
// requested locales, each expanded to its candidates, deduplicated, and
// terminated by the base bundle (empty locale).
func expandLocales(locales ...string) []string {
	seen := make(map[string]bool)
	chain := make([]string, 0, len(locales)*2+1)

	for _, locale := range locales {
		for _, candidate := range LocaleCandidates(locale) {
			if !seen[candidate] {
				seen[candidate] = true
				chain = append(chain, candidate)
			}
		}
	}

	chain = append(chain, "")
	return chain
}
