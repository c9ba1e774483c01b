package localization

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}
}

func TestLocalizer(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "ja.json", `{"group.not_found": "グループが見つかりません"}`)
	writeCatalog(t, dir, "en.json", `{"group.not_found": "Group not found"}`)
	writeCatalog(t, dir, "notes.txt", "ignored")

	loc, err := NewLocalizer(dir)
	if err != nil {
		t.Fatalf("NewLocalizer() error = %v", err)
	}

	if got := loc.GetString("ja", "group.not_found"); got != "グループが見つかりません" {
		t.Errorf("GetString(ja) = %q", got)
	}
	if got := loc.GetString("en", "group.not_found"); got != "Group not found" {
		t.Errorf("GetString(en) = %q", got)
	}

	// missing key or language falls back to the key itself
	if got := loc.GetString("ja", "no.such.key"); got != "no.such.key" {
		t.Errorf("GetString(missing key) = %q", got)
	}
	if got := loc.GetString("fr", "group.not_found"); got != "group.not_found" {
		t.Errorf("GetString(missing lang) = %q", got)
	}
}

func TestLocalizerBadDirectory(t *testing.T) {
	if _, err := NewLocalizer("/no/such/directory"); err == nil {
		t.Error("NewLocalizer() should fail for a missing directory")
	}
}

func TestLocalizerInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "ja.json", "{broken")

	if _, err := NewLocalizer(dir); err == nil {
		t.Error("NewLocalizer() should fail for invalid JSON")
	}
}
