package yamlsettings

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// loadedFile is the per-file record produced by one load cycle. The resolved
// path may differ from the declared path when an environment variable
// overrode it.
type loadedFile struct {
	declaredPath string
	resolvedPath string
	options      FileOptions
	content      any
}

// loadFiles resolves, checks, reads, and parses every entry. Required entries
// whose resolved path is missing are collected into one AggregateError before
// any file is opened, so a missing required file never causes a partial load.
// Missing optional entries are skipped. Parsing is eager: every file is read
// to completion and closed before this returns.
func loadFiles(entries []FileEntry, lookup EnvLookupFunc) ([]loadedFile, error) {
	resolved := make([]string, len(entries))
	for i, entry := range entries {
		resolved[i] = resolvePath(entry, lookup)
	}

	var missing []FileIssue
	for i, entry := range entries {
		if entry.Options.Optional {
			continue
		}
		if !fileExists(resolved[i]) {
			missing = append(missing, FileIssue{
				DeclaredPath: entry.Path,
				ResolvedPath: resolved[i],
			})
		}
	}
	if len(missing) > 0 {
		return nil, &AggregateError{Kind: KindMissingRequiredFile, Issues: missing}
	}

	loaded := make([]loadedFile, 0, len(entries))
	for i, entry := range entries {
		raw, err := os.ReadFile(resolved[i])
		if err != nil {
			if entry.Options.Optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &ConfigError{
				Kind:   KindParseFailure,
				Path:   entry.Path,
				Detail: "read failed",
				Err:    err,
			}
		}
		var content any
		if err := yaml.Unmarshal(raw, &content); err != nil {
			return nil, &ConfigError{
				Kind: KindParseFailure,
				Path: entry.Path,
				Err:  err,
			}
		}
		loaded = append(loaded, loadedFile{
			declaredPath: entry.Path,
			resolvedPath: resolved[i],
			options:      entry.Options,
			content:      content,
		})
	}
	return loaded, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
