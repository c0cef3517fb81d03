// Package rbtranslations provides message localization built on the Java
// ResourceBundle model: per-locale catalog files that are resolved through a
// hierarchical fallback chain. It is an alternative to gettext-style tooling:
// there is no compilation step and no system-wide message directory; catalogs
// are plain text files that ship with the application.
//
// The package allows you to:
//
//   - Parse Java properties files, including escape sequences, line
//     continuations, \uXXXX escapes, and the ISO-8859-1 default encoding with
//     a "coding:" magic comment override.
//   - Load catalogs for the same basename in properties, JSON, YAML, or TOML
//     format from a directory, any fs.FS (including embed.FS), an S3 bucket,
//     or a custom storage by implementing the Source interface.
//   - Resolve a locale such as "de_DE_bavarian" through the chain
//     de_DE_bavarian -> de_DE -> de -> base bundle, merging parent catalogs
//     the way Java ResourceBundle does.
//   - Translate strings with named placeholders (`%{key}`) and count-aware
//     pluralisation helpers.
//   - Detect the preferred user language from HTTP requests with pluggable
//     locale extractors and Accept-Language negotiation, and inject it into
//     the request context through middleware.
//   - Reload catalogs at runtime, either explicitly or via a filesystem
//     watcher.
//
// # Architecture
//
// At its core the package revolves around the Translator type which delegates
// storage concerns to a Source implementation. A Source answers two questions:
// which locales exist for a basename, and what is the raw catalog for one
// basename/locale pair. The Translator combines the answers into one merged
// Bundle per locale, each carrying its parent chain, and serves lookups from
// that immutable state under a read lock.
//
// Catalog parsing is pluggable through the Parser interface. The properties
// parser is the canonical format; JSON, YAML and TOML parsers flatten nested
// documents into dot-separated keys so that all formats share one flat
// key space.
//
// # Usage
//
// Basic set-up with a directory source:
//
//	source := rbtranslations.NewDirSource("./l10n")
//	translator, err := rbtranslations.NewTranslator(context.Background(), source, "messages",
//		rbtranslations.WithDefaultLocale("en"),
//		rbtranslations.WithFallbackToKey(true),
//	)
//	if err != nil {
//		log.Fatalf("failed to init translator: %v", err)
//	}
//
//	msg := translator.T("de_DE", "welcome", "name", "John")
//
// The directory holds one file per locale, e.g. messages.properties (base
// bundle), messages_de.properties, messages_de_DE.properties. A key missing
// from messages_de_DE.properties is looked up in messages_de.properties and
// finally in the base bundle.
//
// # HTTP Middleware
//
// The middleware determines the request locale (Accept-Language header by
// default) and stores it in the request context:
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    fmt.Fprintln(w, translator.Tc(r.Context(), "greeting"))
//	})
//
//	http.Handle("/", rbtranslations.Middleware(nil)(handler))
//
// # Error Handling
//
// Custom error values such as ErrCatalogNotFound allow fine-grained error
// checks, e.g.:
//
//	if errors.Is(err, rbtranslations.ErrCatalogNotFound) {
//	    // fallback logic
//	}
package rbtranslations
