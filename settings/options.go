package settings

import (
	"strings"

	"github.com/rs/zerolog"
)

// Option configures the Loader.
type Option func(*Loader)

// WithValues supplies explicit constructor values, the highest-precedence
// tier. Keys follow field names (or `name:` tag overrides); nested structs
// read from nested mappings.
func WithValues(values map[string]any) Option {
	return func(l *Loader) {
		l.values = values
	}
}

// WithProvider registers a secret provider under the supplied name so struct
// tags can reference it via the `backend:` key.
func WithProvider(name string, provider Provider) Option {
	return func(l *Loader) {
		if name == "" || provider == nil {
			return
		}
		if l.providers == nil {
			l.providers = make(map[string]Provider)
		}
		l.providers[strings.ToLower(name)] = provider
	}
}

// WithDefaultProvider picks which registered provider should be used when a
// tag does not specify a backend explicitly.
func WithDefaultProvider(name string) Option {
	return func(l *Loader) {
		l.defaultProvider = strings.ToLower(name)
	}
}

// WithEnvLookup overrides the environment variable lookup strategy.
func WithEnvLookup(fn EnvLookupFunc) Option {
	return func(l *Loader) {
		if fn != nil {
			l.envLookup = fn
		}
	}
}

// WithDotenv reads the given .env files at construction time and serves their
// values below the process environment. Later files win for repeated keys.
func WithDotenv(paths ...string) Option {
	return func(l *Loader) {
		l.dotenvPaths = append(l.dotenvPaths, paths...)
	}
}

// WithFileSource attaches the merged YAML/JSON file tier, always the lowest
// precedence in the chain.
func WithFileSource(files FileSource) Option {
	return func(l *Loader) {
		l.files = files
	}
}

// WithDecoder registers a custom format decoder keyed by name. Struct tags
// can then reference the decoder via `format:decoder`.
func WithDecoder(name string, fn DecodeFunc) Option {
	return func(l *Loader) {
		if name == "" || fn == nil {
			return
		}
		if l.decoders == nil {
			l.decoders = make(map[string]DecodeFunc)
		}
		l.decoders[strings.ToLower(name)] = fn
	}
}

// WithDefaultFormat overrides the default decoder used for structured types
// when no per-field format is provided.
func WithDefaultFormat(name string) Option {
	return func(l *Loader) {
		l.defaultFormat = strings.ToLower(name)
	}
}

// WithSecretPrefix supplies a function whose result is prepended to secret
// keys prior to lookup (for example to inject environment names).
func WithSecretPrefix(fn func() string) Option {
	return func(l *Loader) {
		l.prefixFunc = fn
	}
}

// WithSecretSuffix supplies a function whose result is appended to secret
// keys prior to lookup.
func WithSecretSuffix(fn func() string) Option {
	return func(l *Loader) {
		l.suffixFunc = fn
	}
}

// WithLogger injects a logger for the optional debug channel.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}
