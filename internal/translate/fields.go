// Package translate implements the write-time bilingual translation pipeline.
// Content records expose their free-text fields as a flat map; the pipeline
// batches every string into a single provider call and re-attaches the
// translated text at the same structural positions.
package translate

import "encoding/json"

// fieldKind discriminates the runtime shape of a field value.
type fieldKind int

const (
	kindScalar fieldKind = iota
	kindList
	kindOpaque
)

// FieldValue is a tagged variant over the shapes a translatable field can
// take: a single string, a list of strings, or an opaque value that passes
// through the pipeline untouched (numbers, null, nested objects).
type FieldValue struct {
	kind   fieldKind
	scalar string
	list   []string
	opaque any
}

// Fields is a flat mapping of field name to value, the unit the pipeline
// operates on.
type Fields map[string]FieldValue

// Scalar wraps a single translatable string.
func Scalar(s string) FieldValue {
	return FieldValue{kind: kindScalar, scalar: s}
}

// List wraps a sequence of translatable strings.
func List(items []string) FieldValue {
	return FieldValue{kind: kindList, list: items}
}

// Opaque wraps a value the pipeline must pass through unchanged.
func Opaque(v any) FieldValue {
	return FieldValue{kind: kindOpaque, opaque: v}
}

// IsScalar reports whether the value is a single string.
func (f FieldValue) IsScalar() bool { return f.kind == kindScalar }

// IsList reports whether the value is a list of strings.
func (f FieldValue) IsList() bool { return f.kind == kindList }

// IsOpaque reports whether the value passes through untranslated.
func (f FieldValue) IsOpaque() bool { return f.kind == kindOpaque }

// String returns the scalar value. Valid only when IsScalar.
func (f FieldValue) String() string { return f.scalar }

// Strings returns the list value. Valid only when IsList.
func (f FieldValue) Strings() []string { return f.list }

// Value returns the dynamic value regardless of kind.
func (f FieldValue) Value() any {
	switch f.kind {
	case kindScalar:
		return f.scalar
	case kindList:
		return f.list
	default:
		return f.opaque
	}
}

// clone returns a deep copy safe to mutate during re-injection.
func (f FieldValue) clone() FieldValue {
	if f.kind == kindList {
		items := make([]string, len(f.list))
		copy(items, f.list)
		return FieldValue{kind: kindList, list: items}
	}
	return f
}

// MarshalJSON encodes the underlying value transparently.
func (f FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value())
}

// UnmarshalJSON decodes a string as Scalar, an all-string array as List, and
// anything else as Opaque.
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	// json.Unmarshal treats null as a no-op for string targets, which would
	// misclassify it as Scalar("").
	if string(data) == "null" {
		*f = Opaque(nil)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Scalar(s)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*f = List(items)
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Opaque(v)
	return nil
}

// FromMap converts a decoded JSON object into Fields, classifying each value.
func FromMap(m map[string]any) Fields {
	fields := make(Fields, len(m))
	for name, v := range m {
		fields[name] = classify(v)
	}
	return fields
}

// ToMap converts Fields back to a plain map for persistence.
func (f Fields) ToMap() map[string]any {
	m := make(map[string]any, len(f))
	for name, v := range f {
		m[name] = v.Value()
	}
	return m
}

func classify(v any) FieldValue {
	switch val := v.(type) {
	case string:
		return Scalar(val)
	case []string:
		return List(val)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return Opaque(v)
			}
			items = append(items, s)
		}
		return List(items)
	default:
		return Opaque(v)
	}
}
