package yamlsettings

import (
	"fmt"
	"strings"
)

// ErrorKind classifies configuration failures so callers can branch on the
// failure mode without parsing message text.
type ErrorKind string

const (
	KindMissingSpecification      ErrorKind = "missing_specification"
	KindInvalidSpecificationShape ErrorKind = "invalid_specification_shape"
	KindMissingRequiredFile       ErrorKind = "missing_required_file"
	KindSubpathNotFound           ErrorKind = "subpath_not_found"
	KindInvalidDocumentShape      ErrorKind = "invalid_document_shape"
	KindParseFailure              ErrorKind = "parse_failure"
)

// ConfigError reports a single configuration failure. Path and Subpath are
// populated when the failure concerns one declared file.
type ConfigError struct {
	Kind    ErrorKind
	Path    string
	Subpath string
	Detail  string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("yamlsettings: ")
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		_, _ = fmt.Fprintf(&b, ": file `%s`", e.Path)
	}
	if e.Subpath != "" {
		_, _ = fmt.Fprintf(&b, ": subpath `%s`", e.Subpath)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause, if any.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FileIssue identifies one offending file inside an AggregateError.
type FileIssue struct {
	DeclaredPath string
	ResolvedPath string
	Subpath      string
}

// String renders the issue for inclusion in error messages.
func (i FileIssue) String() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "file `%s`", i.DeclaredPath)
	if i.ResolvedPath != "" && i.ResolvedPath != i.DeclaredPath {
		_, _ = fmt.Fprintf(&b, " (resolved `%s`)", i.ResolvedPath)
	}
	if i.Subpath != "" {
		_, _ = fmt.Fprintf(&b, " subpath `%s`", i.Subpath)
	}
	return b.String()
}

// AggregateError collects every offending file for validations that inspect
// the whole specification in one pass: the required-file existence check and
// the post-extraction mapping check.
type AggregateError struct {
	Kind   ErrorKind
	Issues []FileIssue
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ""
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "yamlsettings: " + string(e.Kind) + ": " + strings.Join(parts, "; ")
}

// Has reports whether the aggregate contains any issues.
func (e *AggregateError) Has() bool {
	return e != nil && len(e.Issues) > 0
}
