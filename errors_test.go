package yamlsettings

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{
		Kind:    KindSubpathNotFound,
		Path:    "config.yaml",
		Subpath: "data.settings",
	}
	msg := err.Error()
	for _, want := range []string{"subpath_not_found", "config.yaml", "data.settings"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in message, got %q", want, msg)
		}
	}
}

func TestConfigErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ConfigError{Kind: KindParseFailure, Path: "bad.yaml", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected cause in message, got %q", err.Error())
	}
}

func TestAggregateErrorListsAllIssues(t *testing.T) {
	err := &AggregateError{
		Kind: KindMissingRequiredFile,
		Issues: []FileIssue{
			{DeclaredPath: "a.yaml"},
			{DeclaredPath: "b.yaml", ResolvedPath: "/etc/b.yaml"},
		},
	}
	msg := err.Error()
	for _, want := range []string{"a.yaml", "b.yaml", "/etc/b.yaml"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in message, got %q", want, msg)
		}
	}
	if !err.Has() {
		t.Fatal("expected Has to be true")
	}
}

func TestFileIssueStringOmitsMatchingResolvedPath(t *testing.T) {
	issue := FileIssue{DeclaredPath: "a.yaml", ResolvedPath: "a.yaml"}
	if strings.Contains(issue.String(), "resolved") {
		t.Fatalf("matching resolved path must be omitted, got %q", issue.String())
	}
}
