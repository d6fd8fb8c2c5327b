package yamlsettings

import "strings"

// FileOptions controls how a single declared file is resolved, parsed, and
// validated.
type FileOptions struct {
	// EnvVar names an environment variable whose non-empty value replaces the
	// declared path at load time. Empty or unset variables leave the declared
	// path in effect.
	EnvVar string
	// Subpath is a JSONPath-style expression selecting the effective
	// sub-document within the parsed file. Empty means the whole document.
	Subpath string
	// Optional marks the file as skippable when its resolved path does not
	// exist. The zero value means the file is required.
	Optional bool
}

// FileEntry pairs a declared path with its options.
type FileEntry struct {
	Path    string
	Options FileOptions
}

// Spec describes which files to load and in what order. Order matters: later
// entries win during the merge. Construct one with SinglePath, PathList, or
// PathOptions; the zero value means "no specification".
type Spec struct {
	entries  []FileEntry
	declared bool
}

// SinglePath declares exactly one required file.
func SinglePath(path string) Spec {
	return Spec{
		entries:  []FileEntry{{Path: path}},
		declared: true,
	}
}

// PathList declares a sequence of required files, merged in the given order.
func PathList(paths ...string) Spec {
	entries := make([]FileEntry, len(paths))
	for i, path := range paths {
		entries[i] = FileEntry{Path: path}
	}
	return Spec{
		entries:  entries,
		declared: true,
	}
}

// PathOptions declares files with per-file options, merged in the given
// order. A path repeated across entries is rejected during normalization
// rather than collapsed, since silently dropping an entry that carries
// options invites confusion.
func PathOptions(entries ...FileEntry) Spec {
	copied := make([]FileEntry, len(entries))
	copy(copied, entries)
	return Spec{
		entries:  copied,
		declared: true,
	}
}

// Declared reports whether the spec was built by one of the constructors, as
// opposed to being the zero value.
func (s Spec) Declared() bool {
	return s.declared
}

// normalize validates the spec and returns the canonical ordered entry list.
func (s Spec) normalize() ([]FileEntry, error) {
	if !s.declared {
		return nil, &ConfigError{
			Kind:   KindMissingSpecification,
			Detail: "no file specification declared",
		}
	}
	if len(s.entries) == 0 {
		return nil, &ConfigError{
			Kind:   KindInvalidSpecificationShape,
			Detail: "file specification cannot be empty",
		}
	}
	seen := make(map[string]struct{}, len(s.entries))
	out := make([]FileEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if strings.TrimSpace(entry.Path) == "" {
			return nil, &ConfigError{
				Kind:   KindInvalidSpecificationShape,
				Detail: "declared paths must be non-empty strings",
			}
		}
		if _, dup := seen[entry.Path]; dup {
			return nil, &ConfigError{
				Kind:   KindInvalidSpecificationShape,
				Path:   entry.Path,
				Detail: "duplicate declared path",
			}
		}
		seen[entry.Path] = struct{}{}
		out = append(out, entry)
	}
	return out, nil
}
