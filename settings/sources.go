package settings

import (
	"context"
	"errors"
	"strings"
)

// mapSource serves the explicit-values and merged-file tiers: a plain lookup
// by field name against an in-memory mapping.
type mapSource struct {
	source ValueSource
	key    string
	values map[string]any
}

func (m mapSource) Source() ValueSource {
	return m.source
}

func (m mapSource) Identifier() string {
	return m.key
}

func (m mapSource) Fetch(context.Context) (any, error) {
	if value, ok := m.values[m.key]; ok {
		return value, nil
	}
	return nil, errNotSet
}

type envSource struct {
	key    string
	lookup EnvLookupFunc
}

func (e envSource) Source() ValueSource {
	return SourceEnv
}

func (e envSource) Identifier() string {
	return e.key
}

func (e envSource) Fetch(context.Context) (any, error) {
	if value, ok := e.lookup(e.key); ok {
		return value, nil
	}
	return nil, errNotSet
}

type dotenvSource struct {
	key    string
	values map[string]string
}

func (d dotenvSource) Source() ValueSource {
	return SourceDotenv
}

func (d dotenvSource) Identifier() string {
	return d.key
}

func (d dotenvSource) Fetch(context.Context) (any, error) {
	if value, ok := d.values[d.key]; ok {
		return value, nil
	}
	return nil, errNotSet
}

type secretSource struct {
	identifier string
	fetchFunc  func(context.Context) (string, error)
}

func (s secretSource) Source() ValueSource {
	return SourceSecret
}

func (s secretSource) Identifier() string {
	return s.identifier
}

func (s secretSource) Fetch(ctx context.Context) (any, error) {
	return s.fetchFunc(ctx)
}

// fileSource consults the yamlsettings per-field accessor, keeping the merged
// file content as the lowest-precedence tier.
type fileSource struct {
	key   string
	files FileSource
}

func (f fileSource) Source() ValueSource {
	return SourceFile
}

func (f fileSource) Identifier() string {
	return f.key
}

func (f fileSource) Fetch(context.Context) (any, error) {
	fv, err := f.files.FieldValue(f.key)
	if err != nil {
		return nil, err
	}
	if !fv.Found {
		return nil, errNotSet
	}
	return fv.Value, nil
}

// sourcesFor builds the per-field chain in precedence order: explicit values,
// environment, .env files, secret providers, merged file content. Struct
// fields omit the mapping tiers; the nested walk applies those with the
// correct per-field precedence.
func (l *Loader) sourcesFor(tag fieldTag, scope fieldScope, structField bool) []valueSource {
	var sources []valueSource
	if !structField && scope.values != nil {
		sources = append(sources, mapSource{
			source: SourceValues,
			key:    tag.Name,
			values: scope.values,
		})
	}
	if tag.EnvKey != "" {
		sources = append(sources, envSource{
			key:    tag.EnvKey,
			lookup: l.envLookup,
		})
		if l.dotenv != nil {
			sources = append(sources, dotenvSource{
				key:    tag.EnvKey,
				values: l.dotenv,
			})
		}
	}
	if tag.SecretKey != "" {
		sources = append(sources, l.newSecretSource(tag))
	}
	if structField {
		return sources
	}
	if scope.top && l.files != nil {
		sources = append(sources, fileSource{
			key:   tag.Name,
			files: l.files,
		})
	} else if scope.fileValues != nil {
		sources = append(sources, mapSource{
			source: SourceFile,
			key:    tag.Name,
			values: scope.fileValues,
		})
	}
	return sources
}

func (l *Loader) newSecretSource(tag fieldTag) valueSource {
	backendName := tag.BackendName
	if backendName == "" {
		backendName = l.defaultProvider
	}
	identifier := backendName
	if identifier == "" {
		identifier = "(default)"
	}
	provider := l.providers[strings.ToLower(backendName)]
	if provider == nil {
		return secretSource{
			identifier: identifier,
			fetchFunc: func(context.Context) (string, error) {
				return "", errors.New("provider not registered")
			},
		}
	}
	key := l.secretKey(tag.SecretKey)
	fullIdentifier := identifier + ":" + key
	return secretSource{
		identifier: fullIdentifier,
		fetchFunc: func(ctx context.Context) (string, error) {
			raw, err := provider.Fetch(ctx, key)
			if err != nil {
				return "", err
			}
			if raw == "" {
				return "", errors.New("empty secret")
			}
			return raw, nil
		},
	}
}

// secretKey applies the configured prefix and suffix to a declared secret
// key, for example to inject environment names into secret paths.
func (l *Loader) secretKey(key string) string {
	if l.prefixFunc != nil {
		key = l.prefixFunc() + key
	}
	if l.suffixFunc != nil {
		key = key + l.suffixFunc()
	}
	return key
}

// fieldScope carries the mapping tiers visible to the struct level currently
// being walked. Nested structs see the sub-mappings found under their own
// name.
type fieldScope struct {
	top        bool
	values     map[string]any
	fileValues map[string]any
}

func (s fieldScope) child(name string) fieldScope {
	var child fieldScope
	if sub, ok := s.values[name].(map[string]any); ok {
		child.values = sub
	}
	if sub, ok := s.fileValues[name].(map[string]any); ok {
		child.fileValues = sub
	}
	return child
}
