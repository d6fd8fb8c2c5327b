// Package yamlsettings loads structured YAML or JSON documents, merges them
// into a single mapping, and serves that mapping as the lowest-precedence
// value source for a typed settings model. Files are declared with
// SinglePath, PathList, or PathOptions; each file may name an environment
// variable that overrides its path, a JSONPath subpath selecting a
// sub-document, and whether the file is optional. Later files win during the
// deep merge.
//
// Example:
//
//	source, err := yamlsettings.New(
//	    yamlsettings.WithFiles(yamlsettings.PathOptions(
//	        yamlsettings.FileEntry{Path: "base.yaml"},
//	        yamlsettings.FileEntry{Path: "override.yaml", Options: yamlsettings.FileOptions{
//	            EnvVar:   "APP_CONFIG",
//	            Optional: true,
//	        }},
//	    )),
//	    yamlsettings.WithReload(false),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	merged, err := source.Load()
//
// The settings subpackage consumes a Source as the last link of its
// precedence chain: explicit values, then environment variables, then .env
// files, then secret providers, then merged file content.
package yamlsettings
