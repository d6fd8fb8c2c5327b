package settings

import (
	"reflect"
	"testing"
	"time"
)

func TestDecodePrimitiveCoversCommonTypes(t *testing.T) {
	check := func(expected any, raw string, targetType reflect.Type) {
		t.Helper()
		got, err := decodePrimitive(raw, targetType)
		if err != nil {
			t.Fatalf("decodePrimitive error: %v", err)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("expected %v (%T), got %v (%T)", expected, expected, got, got)
		}
	}
	check(true, "true", reflect.TypeOf(true))
	check(int64(42), "42", reflect.TypeOf(int64(0)))
	check(uint32(7), "7", reflect.TypeOf(uint32(0)))
	check(float32(3.14), "3.14", reflect.TypeOf(float32(0)))
	check(time.Second*5, "5s", reflect.TypeOf(time.Duration(0)))
	check([]byte("abc"), "abc", reflect.TypeOf([]byte(nil)))
}

func TestDecodeJSONStruct(t *testing.T) {
	type payload struct {
		Value string `json:"value"`
	}
	target := reflect.TypeOf(payload{})
	got, err := decodeJSON(`{"value":"hello"}`, target)
	if err != nil {
		t.Fatalf("decodeJSON error: %v", err)
	}
	if got.(payload).Value != "hello" {
		t.Fatalf("expected hello, got %+v", got)
	}
}

func TestConvertAnyScalars(t *testing.T) {
	got, err := convertAny(42, reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("convertAny error: %v", err)
	}
	if got.Interface() != int64(42) {
		t.Fatalf("expected int64 42, got %v", got)
	}

	got, err = convertAny("30s", reflect.TypeOf(time.Duration(0)))
	if err != nil {
		t.Fatalf("convertAny error: %v", err)
	}
	if got.Interface() != 30*time.Second {
		t.Fatalf("expected 30s, got %v", got)
	}
}

func TestConvertAnyStructFromMapping(t *testing.T) {
	type database struct {
		Host string
		Port int
	}
	mapping := map[string]any{"host": "db.internal", "port": 5432}
	got, err := convertAny(mapping, reflect.TypeOf(database{}))
	if err != nil {
		t.Fatalf("convertAny error: %v", err)
	}
	db := got.Interface().(database)
	if db.Host != "db.internal" || db.Port != 5432 {
		t.Fatalf("unexpected struct %+v", db)
	}
}

func TestConvertAnyStructHonorsNameTag(t *testing.T) {
	type config struct {
		URL string `settings:"name:database_url"`
	}
	mapping := map[string]any{"database_url": "postgres://db"}
	got, err := convertAny(mapping, reflect.TypeOf(config{}))
	if err != nil {
		t.Fatalf("convertAny error: %v", err)
	}
	if got.Interface().(config).URL != "postgres://db" {
		t.Fatalf("unexpected struct %+v", got.Interface())
	}
}

func TestConvertAnySlice(t *testing.T) {
	got, err := convertAny([]any{"a", "b"}, reflect.TypeOf([]string(nil)))
	if err != nil {
		t.Fatalf("convertAny error: %v", err)
	}
	if !reflect.DeepEqual(got.Interface(), []string{"a", "b"}) {
		t.Fatalf("unexpected slice %v", got.Interface())
	}
}

func TestConvertAnyTypedMap(t *testing.T) {
	got, err := convertAny(map[string]any{"a": 1, "b": 2}, reflect.TypeOf(map[string]int(nil)))
	if err != nil {
		t.Fatalf("convertAny error: %v", err)
	}
	if !reflect.DeepEqual(got.Interface(), map[string]int{"a": 1, "b": 2}) {
		t.Fatalf("unexpected map %v", got.Interface())
	}
}

func TestConvertAnyPointerTarget(t *testing.T) {
	got, err := convertAny("hello", reflect.TypeOf((*string)(nil)))
	if err != nil {
		t.Fatalf("convertAny error: %v", err)
	}
	if *got.Interface().(*string) != "hello" {
		t.Fatalf("unexpected pointer value %v", got.Interface())
	}
}

func TestConvertAnyRejectsMismatchedShape(t *testing.T) {
	if _, err := convertAny([]any{1}, reflect.TypeOf(map[string]int(nil))); err == nil {
		t.Fatal("expected error decoding list into map")
	}
}
