package rbtranslations_test

import (
	"context"
	"fmt"

	"github.com/mnlipp/rbtranslations"
)

func ExampleTranslator_T() {
	source := &rbtranslations.MapSource{
		Data: map[string]map[string]string{
			"":   {"welcome": "Welcome, %{name}!"},
			"de": {"welcome": "Willkommen, %{name}!"},
		},
	}

	translator, err := rbtranslations.NewTranslator(context.Background(), source, "messages")
	if err != nil {
		panic(err)
	}

	fmt.Println(translator.T("de", "welcome", "name", "John"))
	fmt.Println(translator.T("fr", "welcome", "name", "John"))
	// Output:
	// Willkommen, John!
	// Welcome, John!
}

func ExampleTranslator_N() {
	source := &rbtranslations.MapSource{
		Data: map[string]map[string]string{
			"": {
				"items.zero":  "No items",
				"items.one":   "%{count} item",
				"items.other": "%{count} items",
			},
		},
	}

	translator, err := rbtranslations.NewTranslator(context.Background(), source, "messages")
	if err != nil {
		panic(err)
	}

	fmt.Println(translator.N("en", "items", 0))
	fmt.Println(translator.N("en", "items", 1))
	fmt.Println(translator.N("en", "items", 5))
	// Output:
	// No items
	// 1 item
	// 5 items
}

func ExampleLocaleCandidates() {
	fmt.Println(rbtranslations.LocaleCandidates("de_DE_bavarian"))
	// Output: [de_DE_bavarian de_DE de]
}
