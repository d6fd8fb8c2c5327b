package yamlsettings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestLoadFilesParsesYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "base.yaml", "a: 1\nnested:\n  x: 1\n")
	jsonPath := writeFile(t, dir, "extra.json", `{"b": 2}`)

	loaded, err := loadFiles([]FileEntry{{Path: yamlPath}, {Path: jsonPath}}, noEnv)
	if err != nil {
		t.Fatalf("loadFiles returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 loaded files, got %d", len(loaded))
	}
	first, ok := loaded[0].content.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping content, got %T", loaded[0].content)
	}
	if first["a"] != 1 {
		t.Fatalf("unexpected value for a: %v", first["a"])
	}
	second, ok := loaded[1].content.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping content, got %T", loaded[1].content)
	}
	if second["b"] != 2 {
		t.Fatalf("unexpected value for b: %v", second["b"])
	}
}

func TestLoadFilesMissingRequiredAggregates(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, dir, "present.yaml", "a: 1\n")
	missingA := filepath.Join(dir, "gone-a.yaml")
	missingB := filepath.Join(dir, "gone-b.yaml")

	_, err := loadFiles([]FileEntry{
		{Path: existing},
		{Path: missingA},
		{Path: missingB},
	}, noEnv)
	var agg *AggregateError
	if !errors.As(err, &agg) || agg.Kind != KindMissingRequiredFile {
		t.Fatalf("expected aggregated missing-file error, got %v", err)
	}
	if len(agg.Issues) != 2 {
		t.Fatalf("expected both missing files listed, got %d", len(agg.Issues))
	}
	msg := agg.Error()
	if !strings.Contains(msg, missingA) || !strings.Contains(msg, missingB) {
		t.Fatalf("expected message to name both files, got %q", msg)
	}
}

func TestLoadFilesSkipsMissingOptional(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, dir, "present.yaml", "a: 1\n")
	missing := filepath.Join(dir, "gone.yaml")

	loaded, err := loadFiles([]FileEntry{
		{Path: existing},
		{Path: missing, Options: FileOptions{Optional: true}},
	}, noEnv)
	if err != nil {
		t.Fatalf("loadFiles returned error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected only the existing file, got %d", len(loaded))
	}
	if loaded[0].declaredPath != existing {
		t.Fatalf("unexpected declared path %q", loaded[0].declaredPath)
	}
}

func TestLoadFilesParseFailure(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "a: [unclosed\n")

	_, err := loadFiles([]FileEntry{{Path: bad}}, noEnv)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Kind != KindParseFailure {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if cfgErr.Path != bad {
		t.Fatalf("expected error to name the file, got %q", cfgErr.Path)
	}
}

func TestLoadFilesEnvOverrideChangesResolvedPath(t *testing.T) {
	dir := t.TempDir()
	declared := filepath.Join(dir, "declared.yaml")
	actual := writeFile(t, dir, "actual.yaml", "a: 1\n")

	lookup := func(key string) (string, bool) {
		if key == "APP_CONFIG" {
			return actual, true
		}
		return "", false
	}
	loaded, err := loadFiles([]FileEntry{
		{Path: declared, Options: FileOptions{EnvVar: "APP_CONFIG"}},
	}, lookup)
	if err != nil {
		t.Fatalf("loadFiles returned error: %v", err)
	}
	if loaded[0].declaredPath != declared {
		t.Fatalf("declared path changed: %q", loaded[0].declaredPath)
	}
	if loaded[0].resolvedPath != actual {
		t.Fatalf("expected resolved path %q, got %q", actual, loaded[0].resolvedPath)
	}
}

func TestLoadFilesPreservesDeclarationOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "one.yaml", "a: 1\n"),
		writeFile(t, dir, "two.yaml", "a: 2\n"),
		writeFile(t, dir, "three.yaml", "a: 3\n"),
	}
	entries := make([]FileEntry, len(paths))
	for i, path := range paths {
		entries[i] = FileEntry{Path: path}
	}
	loaded, err := loadFiles(entries, noEnv)
	if err != nil {
		t.Fatalf("loadFiles returned error: %v", err)
	}
	for i, path := range paths {
		if loaded[i].declaredPath != path {
			t.Fatalf("order not preserved at %d: %q", i, loaded[i].declaredPath)
		}
	}
}
