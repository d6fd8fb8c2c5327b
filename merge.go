package yamlsettings

// deepMerge combines the ordered document sequence into a single mapping.
// Later documents win: when both sides hold a mapping at the same key the
// mappings are merged recursively, otherwise the later value replaces the
// earlier one outright. Sequences and scalars are never combined. An empty
// input yields an empty mapping. The merge is not commutative; input order
// must match the declared file order.
func deepMerge(docs []map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, doc := range docs {
		mergeInto(merged, doc)
	}
	return merged
}

// mergeInto copies src into dst. Nested mappings are copied, not aliased, so
// a cached merge result cannot be mutated through the source documents.
func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		next, ok := value.(map[string]any)
		if !ok {
			dst[key] = value
			continue
		}
		prev, ok := dst[key].(map[string]any)
		if !ok {
			prev = make(map[string]any, len(next))
			dst[key] = prev
		}
		mergeInto(prev, next)
	}
}
