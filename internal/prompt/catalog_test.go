package prompt

import (
	"reflect"
	"testing"
)

func TestCatalog_HasSixTemplates(t *testing.T) {
	got := Catalog()
	if len(got) != 6 {
		t.Fatalf("Catalog: got %d templates, want 6", len(got))
	}
	seen := make(map[string]bool)
	for _, tmpl := range got {
		if tmpl.ID == "" || tmpl.Name == "" || tmpl.Body == "" || tmpl.Category == "" {
			t.Errorf("template %q has empty fields: %+v", tmpl.ID, tmpl)
		}
		if seen[tmpl.ID] {
			t.Errorf("duplicate template id %q", tmpl.ID)
		}
		seen[tmpl.ID] = true
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0].Name = "mutated"
	b := Catalog()
	if b[0].Name == "mutated" {
		t.Error("Catalog must return a copy, not the shared slice")
	}
}

func TestFind(t *testing.T) {
	tmpl, ok := Find("content-writer")
	if !ok {
		t.Fatal("Find(content-writer): not found")
	}
	if tmpl.Name != "Content Writer" {
		t.Errorf("Find: got name %q", tmpl.Name)
	}

	if _, ok := Find("nope"); ok {
		t.Error("Find(nope): expected not found")
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		body string
		want []string
	}{
		{"Write a [type] about [topic]", []string{"type", "topic"}},
		{"no placeholders", nil},
		{"", nil},
		{"[unclosed", nil},
		{"[] empty brackets", nil},
		{"[a][a] duplicates kept", []string{"a", "a"}},
	}
	for _, tt := range tests {
		if got := Placeholders(tt.body); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Placeholders(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestPlaceholders_EveryCatalogTemplateHasSome(t *testing.T) {
	for _, tmpl := range Catalog() {
		if len(Placeholders(tmpl.Body)) == 0 {
			t.Errorf("template %q has no placeholders", tmpl.ID)
		}
	}
}
