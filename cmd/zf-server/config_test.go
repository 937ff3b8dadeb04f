package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	response "github.com/zf-go/response"
)

func TestGetConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(filename, []byte(`
port: 9000
templates:
  db: memory
  seed:
    index: "<h1>{{.path}}</h1>"
cacheControl:
  - public
  - max-age=60
rules:
  - prefix: /admin
    override: [no-store]
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	config, err := getConfig(filename)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Port: 9000,
		Templates: TemplatesConfig{
			DB:   "memory",
			Seed: map[string]string{"index": "<h1>{{.path}}</h1>"},
		},
		CacheControl: []string{"public", "max-age=60"},
		Rules:        Rules{Rule{Prefix: "/admin", Override: []string{"no-store"}}},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Fatalf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigRules(t *testing.T) {
	config := Config{
		CacheControl: []string{"public"},
		Rules:        Rules{Rule{Prefix: "/admin", Override: []string{"no-store"}}},
	}
	rules := config.rules()
	if len(rules) != 2 || rules[1].Default[0] != "public" {
		t.Fatalf("Rules are %+v", rules)
	}
	if rules := (Config{}).rules(); len(rules) != 0 {
		t.Fatalf("Rules are %+v", rules)
	}
}

func TestGetConfigMissingFile(t *testing.T) {
	if _, err := getConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("Expected error")
	}
}

func TestDirectives(t *testing.T) {
	got := directives([]string{"public", "max-age = 60"})
	want := []response.Directive{{Value: "public"}, {Key: "max-age", Value: "60"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Directives mismatch (-want +got):\n%s", diff)
	}
}
