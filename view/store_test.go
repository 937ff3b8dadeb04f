package view

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testStore(t *testing.T, store Store) {
	modified := time.Date(2022, time.March, 1, 12, 0, 0, 123, time.UTC)

	if _, ok, err := store.Get("missing"); ok || err != nil {
		t.Fatalf("Get missing returned %v, %v", ok, err)
	}

	for _, name := range []string{"b", "a"} {
		if err := store.Put(Template{Name: name, Modified: modified, Source: "source " + name}); err != nil {
			t.Fatalf("Put %s: %v", name, err)
		}
	}
	tmpl, ok, err := store.Get("a")
	if err != nil || !ok {
		t.Fatalf("Get returned %v, %v", ok, err)
	}
	if tmpl.Source != "source a" || !tmpl.Modified.Equal(modified) {
		t.Fatalf("Template is %+v", tmpl)
	}

	names, err := store.Names()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}

	if err := store.Put(Template{Name: "a", Modified: modified.Add(time.Hour), Source: "new"}); err != nil {
		t.Fatal(err)
	}
	if tmpl, _, _ := store.Get("a"); tmpl.Source != "new" {
		t.Fatalf("Template not replaced: %+v", tmpl)
	}

	if err := store.Purge("a"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get("a"); ok {
		t.Fatal("Template not purged")
	}
}

func TestMemStore(t *testing.T) {
	testStore(t, NewMemStore())
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "templates.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	testStore(t, store)
}
