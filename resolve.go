package yamlsettings

// EnvLookupFunc describes how to look up environment variables. Override with
// WithEnvLookup when running in custom environments.
type EnvLookupFunc func(string) (string, bool)

// resolvePath returns the path to actually read for one entry. When the entry
// names an environment variable and that variable holds a non-empty value,
// the value replaces the declared path. An empty value counts as unset.
func resolvePath(entry FileEntry, lookup EnvLookupFunc) string {
	if entry.Options.EnvVar == "" {
		return entry.Path
	}
	if value, ok := lookup(entry.Options.EnvVar); ok && value != "" {
		return value
	}
	return entry.Path
}
