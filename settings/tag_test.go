package settings

import "testing"

func TestParseFieldTagSuccess(t *testing.T) {
	tag, err := parseFieldTag(`name:db env:DATABASE_URL secret:db-url backend:vault format:json`)
	if err != nil {
		t.Fatalf("parseFieldTag error: %v", err)
	}
	if tag.Name != "db" {
		t.Fatalf("expected name db, got %s", tag.Name)
	}
	if tag.EnvKey != "DATABASE_URL" {
		t.Fatalf("expected env key DATABASE_URL, got %s", tag.EnvKey)
	}
	if tag.SecretKey != "db-url" {
		t.Fatalf("expected secret key db-url, got %s", tag.SecretKey)
	}
	if tag.BackendName != "vault" {
		t.Fatalf("expected backend vault, got %s", tag.BackendName)
	}
	if tag.Format != "json" {
		t.Fatalf("expected format json, got %s", tag.Format)
	}
}

func TestParseFieldTagQuotedDefault(t *testing.T) {
	tag, err := parseFieldTag(`env:GREETING default:"hello world"`)
	if err != nil {
		t.Fatalf("parseFieldTag error: %v", err)
	}
	if !tag.HasDefault || tag.DefaultValue != "hello world" {
		t.Fatalf("unexpected default %+v", tag)
	}
}

func TestParseFieldTagUnknownKey(t *testing.T) {
	if _, err := parseFieldTag(`env:FOO foo:bar`); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseFieldTagMalformedComponent(t *testing.T) {
	if _, err := parseFieldTag(`envFOO`); err == nil {
		t.Fatal("expected error for malformed component")
	}
}

func TestRequiresValue(t *testing.T) {
	if (fieldTag{Name: "host"}).requiresValue() {
		t.Fatal("name-only tags must not require a value")
	}
	if !(fieldTag{EnvKey: "HOST"}).requiresValue() {
		t.Fatal("env tags must require a value")
	}
	if !(fieldTag{SecretKey: "host"}).requiresValue() {
		t.Fatal("secret tags must require a value")
	}
}
