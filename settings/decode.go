package settings

import (
	"encoding"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DecodeFunc turns a raw string into a value assignable to the target type.
// Custom formats can be registered with WithDecoder.
type DecodeFunc func(raw string, targetType reflect.Type) (any, error)

var builtinDecoders = map[string]DecodeFunc{
	"json": decodeJSON,
	"xml":  decodeXML,
	"text": decodeTextFormat,
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
var jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
var timeDurationType = reflect.TypeOf(time.Duration(0))

func decodeJSON(raw string, targetType reflect.Type) (any, error) {
	holder := reflect.New(targetType)
	if err := json.Unmarshal([]byte(raw), holder.Interface()); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	return holder.Elem().Interface(), nil
}

func decodeXML(raw string, targetType reflect.Type) (any, error) {
	holder := reflect.New(targetType)
	if err := xml.Unmarshal([]byte(raw), holder.Interface()); err != nil {
		return nil, fmt.Errorf("xml decode: %w", err)
	}
	return holder.Elem().Interface(), nil
}

func decodeTextFormat(raw string, targetType reflect.Type) (any, error) {
	ptrType := reflect.PointerTo(targetType)
	if ptrType.Implements(textUnmarshalerType) {
		dest := reflect.New(targetType)
		if err := dest.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("text decode: %w", err)
		}
		return dest.Elem().Interface(), nil
	}
	return decodePrimitive(raw, targetType)
}

func decodePrimitive(raw string, targetType reflect.Type) (any, error) {
	switch targetType.Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse bool: %w", err)
		}
		return v, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if targetType == timeDurationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("parse duration: %w", err)
			}
			return d, nil
		}
		v, err := strconv.ParseInt(raw, 10, targetType.Bits())
		if err != nil {
			return nil, fmt.Errorf("parse int: %w", err)
		}
		return reflect.ValueOf(v).Convert(targetType).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := strconv.ParseUint(raw, 10, targetType.Bits())
		if err != nil {
			return nil, fmt.Errorf("parse uint: %w", err)
		}
		return reflect.ValueOf(v).Convert(targetType).Interface(), nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, targetType.Bits())
		if err != nil {
			return nil, fmt.Errorf("parse float: %w", err)
		}
		return reflect.ValueOf(v).Convert(targetType).Interface(), nil
	case reflect.Slice:
		if targetType.Elem().Kind() == reflect.Uint8 {
			return []byte(raw), nil
		}
		fallthrough
	case reflect.Struct, reflect.Array, reflect.Map, reflect.Interface:
		return decodeJSON(raw, targetType)
	default:
		ptrType := reflect.PointerTo(targetType)
		switch {
		case ptrType.Implements(textUnmarshalerType):
			return decodeTextFormat(raw, targetType)
		case ptrType.Implements(jsonUnmarshalerType):
			holder := reflect.New(targetType)
			if err := holder.Interface().(json.Unmarshaler).UnmarshalJSON([]byte(raw)); err != nil {
				return nil, fmt.Errorf("json decode: %w", err)
			}
			return holder.Elem().Interface(), nil
		default:
			return nil, fmt.Errorf("unsupported target type %s", targetType)
		}
	}
}

// convertAny turns an already-parsed document value (as produced by YAML or
// JSON unmarshalling: scalars, []any, map[string]any) into a value assignable
// to targetType. Strings fall back to the primitive decoder so durations and
// text unmarshalers keep working when a file carries them as strings.
func convertAny(value any, targetType reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(targetType), nil
	}
	if targetType.Kind() == reflect.Pointer {
		inner, err := convertAny(value, targetType.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(targetType.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	}

	valueType := reflect.TypeOf(value)
	if valueType.AssignableTo(targetType) {
		return reflect.ValueOf(value), nil
	}

	switch targetType.Kind() {
	case reflect.Struct:
		mapping, ok := value.(map[string]any)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot decode %T into %s", value, targetType)
		}
		return convertStruct(mapping, targetType)
	case reflect.Map:
		mapping, ok := value.(map[string]any)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot decode %T into %s", value, targetType)
		}
		if targetType.Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("map target must have string keys, got %s", targetType)
		}
		out := reflect.MakeMapWithSize(targetType, len(mapping))
		for key, element := range mapping {
			converted, err := convertAny(element, targetType.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			out.SetMapIndex(reflect.ValueOf(key).Convert(targetType.Key()), converted)
		}
		return out, nil
	case reflect.Slice:
		if items, ok := value.([]any); ok {
			out := reflect.MakeSlice(targetType, len(items), len(items))
			for i, item := range items {
				converted, err := convertAny(item, targetType.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
				}
				out.Index(i).Set(converted)
			}
			return out, nil
		}
		if valueType.AssignableTo(targetType) {
			return reflect.ValueOf(value), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot decode %T into %s", value, targetType)
	default:
		if raw, ok := value.(string); ok {
			decoded, err := decodePrimitive(raw, targetType)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(decoded), nil
		}
		if valueType.ConvertibleTo(targetType) {
			return reflect.ValueOf(value).Convert(targetType), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot decode %T into %s", value, targetType)
	}
}

func convertStruct(mapping map[string]any, targetType reflect.Type) (reflect.Value, error) {
	out := reflect.New(targetType).Elem()
	for i := 0; i < targetType.NumField(); i++ {
		field := targetType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, err := parseFieldTag(field.Tag.Get("settings"))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		name := tag.Name
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		raw, present := mapping[name]
		if !present {
			continue
		}
		converted, err := convertAny(raw, field.Type)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		out.Field(i).Set(converted)
	}
	return out, nil
}
