package rbtranslations

import (
	"maps"
	"slices"
)

// Bundle is an immutable catalog of messages for one locale, optionally
// chained to a parent bundle the way Java ResourceBundle chains
// messages_de_DE -> messages_de -> messages. Lookups walk the chain from the
// most specific bundle down.
type Bundle struct {
	locale   string
	messages map[string]string
	parent   *Bundle
}

// NewBundle creates a bundle for the given locale. The messages map is
// copied, so later changes by the caller do not leak into the bundle. The
// parent may be nil for a root (base) bundle.
func NewBundle(locale string, messages map[string]string, parent *Bundle) *Bundle {
	copied := make(map[string]string, len(messages))
	maps.Copy(copied, messages)
	return &Bundle{
		locale:   locale,
		messages: copied,
		parent:   parent,
	}
}

// Locale reports the locale this bundle was built for. The base bundle has
// an empty locale.
func (b *Bundle) Locale() string {
	return b.locale
}

// Parent returns the next bundle in the fallback chain, or nil.
func (b *Bundle) Parent() *Bundle {
	return b.parent
}

// Lookup returns the message for key, consulting parents when this bundle
// does not define it.
func (b *Bundle) Lookup(key string) (string, bool) {
	for bundle := b; bundle != nil; bundle = bundle.parent {
		if msg, ok := bundle.messages[key]; ok {
			return msg, true
		}
	}
	return "", false
}

// Get returns the message for key, or the key itself when no bundle in the
// chain defines it (gettext-style behavior).
func (b *Bundle) Get(key string) string {
	if msg, ok := b.Lookup(key); ok {
		return msg
	}
	return key
}

// Keys returns the sorted union of keys over the whole chain.
func (b *Bundle) Keys() []string {
	seen := make(map[string]bool)
	for bundle := b; bundle != nil; bundle = bundle.parent {
		for key := range bundle.messages {
			seen[key] = true
		}
	}

	keys := slices.Collect(maps.Keys(seen))
	slices.Sort(keys)
	return keys
}

// Messages flattens the chain into a single map, child entries shadowing
// parent ones.
func (b *Bundle) Messages() map[string]string {
	flat := make(map[string]string)
	var walk func(*Bundle)
	walk = func(bundle *Bundle) {
		if bundle == nil {
			return
		}
		walk(bundle.parent)
		maps.Copy(flat, bundle.messages)
	}
	walk(b)
	return flat
}
