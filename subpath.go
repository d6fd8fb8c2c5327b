package yamlsettings

import "github.com/ohler55/ojg/jp"

// SubpathFunc evaluates a query expression against a parsed document and
// returns the first match. The concrete query syntax is an injected
// capability so it can be swapped or tested in isolation from file I/O.
type SubpathFunc func(doc any, expr string) (any, bool)

// JSONPath is the default SubpathFunc. It evaluates expr as a JSONPath
// expression (for example "data.settings") and returns the first match.
func JSONPath(doc any, expr string) (any, bool) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, false
	}
	matches := x.Get(doc)
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

// extractAll applies subpath extraction to every loaded file and validates
// that the effective content is a mapping. A subpath with no match fails
// immediately naming the file and the expression; non-mapping documents are
// collected across all files and reported as one aggregated error. The
// returned sequence preserves declaration order, which encodes merge
// precedence.
func extractAll(files []loadedFile, lookup SubpathFunc) ([]map[string]any, error) {
	contents := make([]map[string]any, 0, len(files))
	var invalid []FileIssue
	for _, file := range files {
		effective := file.content
		if expr := file.options.Subpath; expr != "" {
			value, ok := lookup(file.content, expr)
			if !ok {
				return nil, &ConfigError{
					Kind:    KindSubpathNotFound,
					Path:    file.declaredPath,
					Subpath: expr,
				}
			}
			effective = value
		}
		mapping, ok := effective.(map[string]any)
		if !ok {
			invalid = append(invalid, FileIssue{
				DeclaredPath: file.declaredPath,
				ResolvedPath: file.resolvedPath,
				Subpath:      file.options.Subpath,
			})
			continue
		}
		contents = append(contents, mapping)
	}
	if len(invalid) > 0 {
		return nil, &AggregateError{Kind: KindInvalidDocumentShape, Issues: invalid}
	}
	return contents, nil
}
