package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"medportal_backend/platform/apperr"
)

// Delimiter separates batched segments in the single provider request.
// Three pipe characters do not occur in natural-language content, so the
// provider returns them verbatim and the batch can be split losslessly.
const Delimiter = "|||"

const (
	// BaseLocale is the language content is authored in.
	BaseLocale = "en"
	// TargetLocale is the derived language.
	TargetLocale = "ar"
)

// Provider translates a text from the source to the target language.
type Provider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Pipeline batches the string fields of a record into one provider call and
// re-injects the translated segments at their recorded positions.
type Pipeline struct {
	provider Provider
}

// NewPipeline creates a pipeline backed by the given provider.
func NewPipeline(provider Provider) *Pipeline {
	return &Pipeline{provider: provider}
}

// position records where a batched segment came from: a field name, and the
// index within the field when the value is a list.
type position struct {
	field string
	index int // -1 for scalar values
}

// Translate returns a copy of fields with every string value translated to
// targetLang. Non-string values pass through unchanged. Field names and list
// lengths are preserved exactly.
//
// When the input contains no translatable strings the input is returned as-is
// and the provider is never called.
func (p *Pipeline) Translate(ctx context.Context, fields Fields, targetLang string) (Fields, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var segments []string
	var positions []position
	for _, name := range names {
		value := fields[name]
		switch {
		case value.IsScalar():
			segments = append(segments, value.String())
			positions = append(positions, position{field: name, index: -1})
		case value.IsList():
			for i, item := range value.Strings() {
				segments = append(segments, item)
				positions = append(positions, position{field: name, index: i})
			}
		}
	}

	if len(segments) == 0 {
		return fields, nil
	}

	translated, err := p.provider.Translate(ctx, strings.Join(segments, Delimiter), BaseLocale, targetLang)
	if err != nil {
		return nil, apperr.Provider("translation provider call failed", err)
	}

	parts := strings.Split(translated, Delimiter)
	if len(parts) != len(segments) {
		// A mismatched split means the provider merged or truncated segments;
		// re-injecting would silently misalign fields.
		return nil, apperr.Provider(
			fmt.Sprintf("translation segment count mismatch: sent %d, received %d", len(segments), len(parts)),
			nil,
		)
	}

	out := make(Fields, len(fields))
	for name, value := range fields {
		out[name] = value.clone()
	}
	for i, pos := range positions {
		text := strings.TrimSpace(parts[i])
		if pos.index < 0 {
			out[pos.field] = Scalar(text)
			continue
		}
		out[pos.field].list[pos.index] = text
	}

	return out, nil
}

// BuildTranslations assembles the persisted translations object: the base
// locale mirrors the record's own fields, the target locale carries the
// derived copy.
func BuildTranslations(base, derived Fields) map[string]map[string]any {
	return map[string]map[string]any{
		BaseLocale:   base.ToMap(),
		TargetLocale: derived.ToMap(),
	}
}
