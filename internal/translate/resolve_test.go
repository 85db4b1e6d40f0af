package translate

import "testing"

func TestResolveFallbackChain(t *testing.T) {
	translations := map[string]map[string]any{
		"en": {"title": "Hello", "body": "Text"},
		"ar": {"title": "مرحبا"},
	}

	if got := Resolve(translations, "ar", "title", "base"); got != "مرحبا" {
		t.Fatalf("expected ar value, got %v", got)
	}
	// ar tree is missing body: fall back to en.
	if got := Resolve(translations, "ar", "body", "base"); got != "Text" {
		t.Fatalf("expected en fallback, got %v", got)
	}
	// Neither tree has the field: fall back to the record value.
	if got := Resolve(translations, "ar", "slug", "base-slug"); got != "base-slug" {
		t.Fatalf("expected base fallback, got %v", got)
	}
}

func TestResolveToleratesMissingTrees(t *testing.T) {
	if got := Resolve(nil, "ar", "title", "legacy"); got != "legacy" {
		t.Fatalf("expected record value for nil translations, got %v", got)
	}

	partial := map[string]map[string]any{"en": {"title": "Hello"}}
	if got := Resolve(partial, "ar", "title", "legacy"); got != "Hello" {
		t.Fatalf("expected en fallback for missing ar tree, got %v", got)
	}
}

func TestResolveAll(t *testing.T) {
	translations := map[string]map[string]any{
		"en": {"title": "Hello"},
		"ar": {"title": "مرحبا"},
	}
	base := map[string]any{"title": "Hello", "order": 3}

	out := ResolveAll(translations, "ar", base)
	if out["title"] != "مرحبا" {
		t.Fatalf("expected localized title, got %v", out["title"])
	}
	if out["order"] != 3 {
		t.Fatalf("expected passthrough for untranslated field, got %v", out["order"])
	}
}
