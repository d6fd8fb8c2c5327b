package yamlsettings

import "github.com/rs/zerolog"

type sourceConfig struct {
	name         string
	files        Spec
	configFiles  Spec
	reload       *bool
	configReload *bool
	envLookup    EnvLookupFunc
	subpath      SubpathFunc
	logger       *zerolog.Logger
}

// Option configures a Source at construction time.
type Option func(*sourceConfig)

// WithName attaches the settings-model name to specification errors so they
// point at the offending declaration site.
func WithName(name string) Option {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// WithFiles declares the file specification directly on the model. It takes
// precedence over WithConfigFiles.
func WithFiles(spec Spec) Option {
	return func(c *sourceConfig) {
		c.files = spec
	}
}

// WithConfigFiles declares the file specification inside the model's generic
// configuration block. Used only when WithFiles is absent.
func WithConfigFiles(spec Spec) Option {
	return func(c *sourceConfig) {
		c.configFiles = spec
	}
}

// WithReload sets the reload policy directly on the model. It takes
// precedence over WithConfigReload.
func WithReload(reload bool) Option {
	return func(c *sourceConfig) {
		c.reload = &reload
	}
}

// WithConfigReload sets the reload policy from the model's generic
// configuration block. Used only when WithReload is absent.
func WithConfigReload(reload bool) Option {
	return func(c *sourceConfig) {
		c.configReload = &reload
	}
}

// WithEnvLookup overrides the environment variable lookup strategy.
func WithEnvLookup(fn EnvLookupFunc) Option {
	return func(c *sourceConfig) {
		if fn != nil {
			c.envLookup = fn
		}
	}
}

// WithSubpathFunc swaps the subpath query evaluator.
func WithSubpathFunc(fn SubpathFunc) Option {
	return func(c *sourceConfig) {
		if fn != nil {
			c.subpath = fn
		}
	}
}

// WithLogger injects a logger for the optional debug channel. Without it,
// logging stays disabled unless PSY_DEBUG is set.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *sourceConfig) {
		c.logger = &logger
	}
}
