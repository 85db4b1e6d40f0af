package translate

// Resolve returns the localized value for a field, tolerating partially
// populated translation trees (records migrated before translations existed).
// Lookup order: requested locale, base locale, then the record's own value.
func Resolve(translations map[string]map[string]any, locale, field string, base any) any {
	if tree, ok := translations[locale]; ok {
		if v, ok := tree[field]; ok && v != nil {
			return v
		}
	}
	if tree, ok := translations[BaseLocale]; ok {
		if v, ok := tree[field]; ok && v != nil {
			return v
		}
	}
	return base
}

// ResolveAll localizes every base field of a record in one pass.
func ResolveAll(translations map[string]map[string]any, locale string, base map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for field, v := range base {
		out[field] = Resolve(translations, locale, field, v)
	}
	return out
}
