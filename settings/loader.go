package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/rs/zerolog"

	yamlsettings "github.com/qs5779/pydantic-settings-yaml"
)

// Provider fetches configuration values from an external secret system such
// as Vault, AWS Secrets Manager, or GCP Secret Manager. Custom providers can
// be registered with WithProvider.
type Provider interface {
	Fetch(ctx context.Context, key string) (string, error)
}

// FileSource is the merged-file tier contract, satisfied by
// *yamlsettings.Source: the merged mapping plus the per-field accessor.
type FileSource interface {
	Load() (map[string]any, error)
	FieldValue(field string) (yamlsettings.FieldValue, error)
}

// EnvLookupFunc describes how to look up environment variables. Override with
// WithEnvLookup when running in custom environments.
type EnvLookupFunc func(string) (string, bool)

// Loader populates configuration structs from the ordered source chain
// according to the struct tags. Precedence, highest to lowest: explicit
// values, process environment, .env files, secret providers, merged file
// content.
type Loader struct {
	envLookup       EnvLookupFunc
	values          map[string]any
	dotenv          map[string]string
	dotenvPaths     []string
	providers       map[string]Provider
	defaultProvider string
	defaultFormat   string
	decoders        map[string]DecodeFunc
	files           FileSource
	prefixFunc      func() string
	suffixFunc      func() string
	logger          zerolog.Logger
}

// New constructs a Loader with optional functional options. New fails when a
// requested .env file cannot be read.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{
		envLookup:       os.LookupEnv,
		providers:       make(map[string]Provider),
		defaultProvider: "aws",
		defaultFormat:   "json",
		decoders:        make(map[string]DecodeFunc),
		logger:          zerolog.Nop(),
	}
	for name, dec := range builtinDecoders {
		l.decoders[name] = dec
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(l.dotenvPaths) > 0 {
		values, err := readDotenv(l.dotenvPaths)
		if err != nil {
			return nil, err
		}
		l.dotenv = values
	}
	return l, nil
}

// Load populates the provided struct pointer with configuration data. When
// one or more fields fail to load, the returned error will be an *ErrorGroup
// that can be inspected for per-field failures. File-tier failures (missing
// required files, parse errors, subpath errors) abort immediately and are
// returned directly, as are fatal misuses such as passing a non-struct
// pointer.
func (l *Loader) Load(ctx context.Context, target any) error {
	if target == nil {
		return errors.New("settings: target cannot be nil")
	}
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return errors.New("settings: target must be a non-nil pointer")
	}
	elem := value.Elem()
	if elem.Kind() != reflect.Struct {
		return errors.New("settings: target must point to a struct")
	}

	scope := fieldScope{top: true, values: l.values}
	if l.files != nil {
		merged, err := l.files.Load()
		if err != nil {
			return err
		}
		scope.fileValues = merged
		l.logger.Debug().Int("keys", len(merged)).Msg("merged file content loaded")
	}

	var group *ErrorGroup
	l.walkStruct(ctx, elem, "", scope, &group)
	if group.Has() {
		return group
	}
	return nil
}

func (l *Loader) walkStruct(ctx context.Context, current reflect.Value, prefix string, scope fieldScope, group **ErrorGroup) {
	t := current.Type()
	for i := 0; i < current.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldValue := current.Field(i)
		fieldPath := field.Name
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}
		tag, err := parseFieldTag(field.Tag.Get("settings"))
		if err != nil {
			appendFieldError(group, FieldError{
				FieldPath: fieldPath,
				Attempts: []AttemptError{{
					Source: SourceTag,
					Err:    err,
				}},
			})
			continue
		}
		if tag.Name == "" {
			tag.Name = strings.ToLower(field.Name)
		}

		structField := isStructField(fieldValue)
		assigned, fieldErr := l.populateField(ctx, fieldValue, fieldPath, tag, scope, structField)
		if fieldErr != nil {
			appendFieldError(group, *fieldErr)
			continue
		}
		if !assigned && structField {
			l.descend(ctx, fieldValue, fieldPath, scope.child(tag.Name), group)
		}
	}
}

func (l *Loader) descend(ctx context.Context, fieldValue reflect.Value, fieldPath string, scope fieldScope, group **ErrorGroup) {
	switch fieldValue.Kind() {
	case reflect.Struct:
		l.walkStruct(ctx, fieldValue, fieldPath, scope, group)
	case reflect.Pointer:
		elemType := fieldValue.Type().Elem()
		if elemType.Kind() == reflect.Struct {
			if fieldValue.IsNil() {
				fieldValue.Set(reflect.New(elemType))
			}
			l.walkStruct(ctx, fieldValue.Elem(), fieldPath, scope, group)
		}
	}
}

// populateField walks the source chain for one field. The bool result
// reports whether a source produced a value. A nil *FieldError with
// assigned=false means the field was merely absent everywhere and may be
// filled structurally (nested walk) or left at its zero value. Struct fields
// skip the mapping tiers here; those are applied through the nested walk so
// that env and secret tags inside the struct keep their precedence.
func (l *Loader) populateField(ctx context.Context, fieldValue reflect.Value, fieldPath string, tag fieldTag, scope fieldScope, structField bool) (bool, *FieldError) {
	collector := newAttemptCollector(fieldPath)
	assign := func(value any) error {
		return l.assignValue(fieldValue, value, tag.Format)
	}
	for _, src := range l.sourcesFor(tag, scope, structField) {
		if src == nil {
			continue
		}
		if collector.try(ctx, src, assign) {
			l.logger.Debug().Str("field", fieldPath).Str("source", string(src.Source())).Msg("field populated")
			return true, nil
		}
	}
	if tag.HasDefault {
		if err := l.assignValue(fieldValue, tag.DefaultValue, tag.Format); err != nil {
			collector.fail(SourceTag, "default", fmt.Errorf("default decode: %w", err))
			return false, collector.result()
		}
		return true, nil
	}
	if !tag.requiresValue() && collector.onlyNotSet() {
		return false, nil
	}
	return false, collector.result()
}

// assignValue writes a source value into the field. Raw strings go through
// the format decoders the way env and secret payloads always have; values
// already shaped by a document parser are converted structurally.
func (l *Loader) assignValue(field reflect.Value, value any, format string) error {
	targetType := field.Type()
	ptr := false
	if targetType.Kind() == reflect.Pointer {
		ptr = true
		targetType = targetType.Elem()
	}

	var (
		result reflect.Value
		err    error
	)
	if raw, ok := value.(string); ok {
		result, err = l.decodeString(raw, targetType, format)
	} else {
		result, err = convertAny(value, targetType)
	}
	if err != nil {
		return err
	}
	if !result.IsValid() {
		return errors.New("decoder produced invalid value")
	}
	if !result.Type().AssignableTo(targetType) {
		if result.Type().ConvertibleTo(targetType) {
			result = result.Convert(targetType)
		} else {
			return fmt.Errorf("decoder produced %s, cannot assign to %s", result.Type(), targetType)
		}
	}
	if ptr {
		if field.IsNil() {
			field.Set(reflect.New(targetType))
		}
		field.Elem().Set(result)
	} else {
		field.Set(result)
	}
	return nil
}

func (l *Loader) decodeString(raw string, targetType reflect.Type, format string) (reflect.Value, error) {
	resolvedFormat := strings.ToLower(format)
	if resolvedFormat == "" && l.defaultFormat != "" && needsStructuredFormat(targetType) {
		resolvedFormat = l.defaultFormat
	}

	var (
		result any
		err    error
	)
	if resolvedFormat != "" {
		decoder, ok := l.decoders[resolvedFormat]
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown format %q", resolvedFormat)
		}
		result, err = decoder(raw, targetType)
	} else {
		result, err = decodePrimitive(raw, targetType)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	value := reflect.ValueOf(result)
	if !value.IsValid() {
		return reflect.Value{}, errors.New("decoder produced invalid value")
	}
	return value, nil
}

func isStructField(fieldValue reflect.Value) bool {
	switch fieldValue.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return fieldValue.Type().Elem().Kind() == reflect.Struct
	default:
		return false
	}
}

func needsStructuredFormat(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Interface:
		return true
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	default:
		return false
	}
}
