package rbtranslations

import (
	"net/http"
)

// Middleware returns an HTTP middleware that determines the client's
// preferred locale and stores it in the request context.
//
// The locale is determined by the given extractor; a nil extractor means
// DefaultLocaleExtractor. When the extractor returns an empty string the
// middleware falls back to DefaultLocale.
//
// The stored locale can be retrieved with GetLocale, or used implicitly
// through Translator.Tc and Translator.Nc.
func Middleware(extractor LocaleExtractor) func(http.Handler) http.Handler {
	if extractor == nil {
		extractor = DefaultLocaleExtractor()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := extractor(r)
			if locale == "" {
				locale = DefaultLocale
			}

			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), locale)))
		})
	}
}
