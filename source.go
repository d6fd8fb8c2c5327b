package yamlsettings

import (
	"os"

	"github.com/rs/zerolog"
)

// loadState tracks whether the source has produced a merged result yet.
type loadState int

const (
	stateUnloaded loadState = iota
	stateLoaded
)

// Source loads one or more YAML or JSON documents, merges them into a single
// mapping, and serves that mapping as a default-value source for a typed
// settings model. The file specification and the reload policy are resolved
// once, at construction; see New.
//
// A Source is not safe for concurrent use without external synchronization:
// the cached result is mutated in place.
type Source struct {
	name      string
	entries   []FileEntry
	reload    bool
	envLookup EnvLookupFunc
	subpath   SubpathFunc
	logger    zerolog.Logger

	state  loadState
	merged map[string]any
}

// FieldValue is the per-field answer handed to the settings model. Found is
// false when the merged mapping carries no value for the field, signalling
// the caller to fall through to lower-precedence defaults.
type FieldValue struct {
	Value   any
	Field   string
	Complex bool
	Found   bool
}

// New resolves the file specification and reload policy and constructs a
// Source. The specification comes from WithFiles when given, else from
// WithConfigFiles; when neither is present New fails naming the configured
// model. The reload flag follows the same two-tier precedence and defaults
// to true (recompute on every access).
func New(opts ...Option) (*Source, error) {
	cfg := sourceConfig{
		envLookup: os.LookupEnv,
		subpath:   JSONPath,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	spec := cfg.configFiles
	if cfg.files.Declared() {
		spec = cfg.files
	}
	entries, err := spec.normalize()
	if err != nil {
		return nil, describe(err, cfg.name)
	}

	reload := true
	switch {
	case cfg.reload != nil:
		reload = *cfg.reload
	case cfg.configReload != nil:
		reload = *cfg.configReload
	}

	logger := defaultLogger()
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	return &Source{
		name:      cfg.name,
		entries:   entries,
		reload:    reload,
		envLookup: cfg.envLookup,
		subpath:   cfg.subpath,
		logger:    logger,
	}, nil
}

// describe attaches the model name to specification errors so the message
// points at the offending declaration site.
func describe(err error, name string) error {
	cfgErr, ok := err.(*ConfigError)
	if !ok || name == "" {
		return err
	}
	detail := "declared on `" + name + "`"
	if cfgErr.Detail != "" {
		detail = cfgErr.Detail + " (" + detail + ")"
	}
	return &ConfigError{
		Kind:    cfgErr.Kind,
		Path:    cfgErr.Path,
		Subpath: cfgErr.Subpath,
		Detail:  detail,
		Err:     cfgErr.Err,
	}
}

// Load returns the merged configuration mapping. With reload enabled the
// full pipeline runs on every call; otherwise the pipeline runs once, on
// first access, and the cached result is returned afterwards without
// touching the filesystem or environment again.
func (s *Source) Load() (map[string]any, error) {
	if s.reload {
		s.logger.Debug().Msg("reloading configuration files")
		return s.refresh()
	}
	if s.state == stateUnloaded {
		s.logger.Debug().Msg("loading configuration files once")
		return s.refresh()
	}
	return s.merged, nil
}

func (s *Source) refresh() (map[string]any, error) {
	files, err := loadFiles(s.entries, s.envLookup)
	if err != nil {
		return nil, err
	}
	contents, err := extractAll(files, s.subpath)
	if err != nil {
		return nil, err
	}
	s.merged = deepMerge(contents)
	s.state = stateLoaded
	s.logger.Debug().Int("files", len(files)).Int("keys", len(s.merged)).Msg("merged configuration files")
	return s.merged, nil
}

// FieldValue looks up a single top-level field in the merged mapping.
func (s *Source) FieldValue(field string) (FieldValue, error) {
	merged, err := s.Load()
	if err != nil {
		return FieldValue{}, err
	}
	value, found := merged[field]
	return FieldValue{
		Value: value,
		Field: field,
		Found: found,
	}, nil
}

// Reload reports the reload policy resolved at construction.
func (s *Source) Reload() bool {
	return s.reload
}

// Files returns the normalized file entries in merge order.
func (s *Source) Files() []FileEntry {
	out := make([]FileEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
