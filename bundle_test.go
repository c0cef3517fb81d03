package rbtranslations_test

import (
	"testing"

	"github.com/mnlipp/rbtranslations"

	"github.com/stretchr/testify/assert"
)

func TestBundleChainLookup(t *testing.T) {
	base := rbtranslations.NewBundle("", map[string]string{
		"greeting": "Hello",
		"farewell": "Goodbye",
	}, nil)
	de := rbtranslations.NewBundle("de", map[string]string{
		"greeting": "Hallo",
	}, base)
	deDE := rbtranslations.NewBundle("de_DE", map[string]string{}, de)

	msg, ok := deDE.Lookup("greeting")
	assert.True(t, ok)
	assert.Equal(t, "Hallo", msg)

	msg, ok = deDE.Lookup("farewell")
	assert.True(t, ok)
	assert.Equal(t, "Goodbye", msg)

	_, ok = deDE.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, "de_DE", deDE.Locale())
	assert.Equal(t, de, deDE.Parent())
	assert.Nil(t, base.Parent())
}

func TestBundleGetFallsBackToKey(t *testing.T) {
	b := rbtranslations.NewBundle("en", map[string]string{"known": "value"}, nil)

	assert.Equal(t, "value", b.Get("known"))
	assert.Equal(t, "unknown.key", b.Get("unknown.key"))
}

func TestBundleKeysAndMessages(t *testing.T) {
	base := rbtranslations.NewBundle("", map[string]string{
		"a": "base-a",
		"b": "base-b",
	}, nil)
	child := rbtranslations.NewBundle("de", map[string]string{
		"b": "child-b",
		"c": "child-c",
	}, base)

	assert.Equal(t, []string{"a", "b", "c"}, child.Keys())

	flat := child.Messages()
	assert.Equal(t, "base-a", flat["a"])
	// Child entries shadow parent ones.
	assert.Equal(t, "child-b", flat["b"])
	assert.Equal(t, "child-c", flat["c"])
}

func TestBundleCopiesMessages(t *testing.T) {
	messages := map[string]string{"key": "original"}
	b := rbtranslations.NewBundle("en", messages, nil)

	messages["key"] = "mutated"

	msg, ok := b.Lookup("key")
	assert.True(t, ok)
	assert.Equal(t, "original", msg)
}
