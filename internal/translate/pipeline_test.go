package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"medportal_backend/platform/apperr"
)

// fakeProvider returns canned responses and counts calls.
type fakeProvider struct {
	calls    int
	lastText string
	response string
	err      error
}

func (f *fakeProvider) Translate(_ context.Context, text, _, _ string) (string, error) {
	f.calls++
	f.lastText = text
	if f.err != nil {
		return "", f.err
	}
	if f.response != "" {
		return f.response, nil
	}
	// Default: echo each segment with a marker so re-injection is observable.
	parts := strings.Split(text, Delimiter)
	for i, p := range parts {
		parts[i] = "ar:" + p
	}
	return strings.Join(parts, Delimiter), nil
}

func TestTranslateScalarAndListPositions(t *testing.T) {
	provider := &fakeProvider{response: "X|||Y|||Z"}
	pipeline := NewPipeline(provider)

	fields := Fields{
		"tags":  List([]string{"A", "B"}),
		"title": Scalar("Hello"),
	}

	out, err := pipeline.Translate(context.Background(), fields, TargetLocale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", provider.calls)
	}
	if provider.lastText != "A|||B|||Hello" {
		t.Fatalf("unexpected batched request: %q", provider.lastText)
	}
	if got := out["tags"].Strings(); got[0] != "X" || got[1] != "Y" {
		t.Fatalf("expected tags [X Y], got %v", got)
	}
	if got := out["title"].String(); got != "Z" {
		t.Fatalf("expected title Z, got %q", got)
	}
}

func TestTranslateZeroStringsSkipsProvider(t *testing.T) {
	provider := &fakeProvider{}
	pipeline := NewPipeline(provider)

	fields := Fields{
		"price":    Opaque(float64(120)),
		"metadata": Opaque(map[string]any{"views": 3}),
	}

	out, err := pipeline.Translate(context.Background(), fields, TargetLocale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("expected zero provider calls, got %d", provider.calls)
	}
	if out["price"].Value() != float64(120) {
		t.Fatalf("opaque value changed: %v", out["price"].Value())
	}
}

func TestTranslatePreservesShapeAndOpaques(t *testing.T) {
	provider := &fakeProvider{}
	pipeline := NewPipeline(provider)

	fields := Fields{
		"title":    Scalar("Knee replacement"),
		"bullets":  List([]string{"fast recovery", "day surgery"}),
		"duration": Opaque(float64(45)),
		"extra":    Opaque(nil),
	}

	out, err := pipeline.Translate(context.Background(), fields, TargetLocale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out) != len(fields) {
		t.Fatalf("field count changed: %d != %d", len(out), len(fields))
	}
	if got := out["bullets"].Strings(); len(got) != 2 {
		t.Fatalf("list length changed: %v", got)
	}
	if out["duration"].Value() != float64(45) {
		t.Fatalf("numeric field changed: %v", out["duration"].Value())
	}
	if out["extra"].Value() != nil {
		t.Fatalf("nil field changed: %v", out["extra"].Value())
	}
	if got := out["title"].String(); got != "ar:Knee replacement" {
		t.Fatalf("scalar not translated: %q", got)
	}

	// Input must stay untouched.
	if fields["title"].String() != "Knee replacement" {
		t.Fatalf("input mutated: %q", fields["title"].String())
	}
}

func TestTranslateSegmentMismatchFailsHard(t *testing.T) {
	// Provider merges two segments into one: re-injection must be rejected.
	provider := &fakeProvider{response: "only-one-segment"}
	pipeline := NewPipeline(provider)

	fields := Fields{
		"title":    Scalar("Hello"),
		"subtitle": Scalar("World"),
	}

	_, err := pipeline.Translate(context.Background(), fields, TargetLocale)
	if err == nil {
		t.Fatal("expected error on segment count mismatch")
	}
	if !apperr.Is(err, apperr.KindProvider) {
		t.Fatalf("expected provider error kind, got %v", err)
	}
}

func TestTranslateProviderErrorPropagates(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	pipeline := NewPipeline(provider)

	_, err := pipeline.Translate(context.Background(), Fields{"title": Scalar("Hello")}, TargetLocale)
	if !apperr.Is(err, apperr.KindProvider) {
		t.Fatalf("expected provider error kind, got %v", err)
	}
}

func TestFromMapClassification(t *testing.T) {
	fields := FromMap(map[string]any{
		"title": "Hello",
		"tags":  []any{"a", "b"},
		"mixed": []any{"a", float64(1)},
		"count": float64(2),
	})

	if !fields["title"].IsScalar() {
		t.Fatal("title should be scalar")
	}
	if !fields["tags"].IsList() {
		t.Fatal("tags should be list")
	}
	if !fields["mixed"].IsOpaque() {
		t.Fatal("mixed array should be opaque")
	}
	if !fields["count"].IsOpaque() {
		t.Fatal("count should be opaque")
	}
}
