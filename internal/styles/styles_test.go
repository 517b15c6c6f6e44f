package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clipforge/clipforge-agent/internal/clip"
)

func TestBuiltin(t *testing.T) {
	reg := Builtin()

	def := reg.Default()
	if def.FontFamily == "" {
		t.Error("default preset has no font family")
	}
	if def.Size != clip.SizeMedium {
		t.Errorf("default Size = %s, want medium", def.Size)
	}

	if _, ok := reg.Get("minimal"); !ok {
		t.Error("builtin preset minimal missing")
	}
	if _, ok := reg.Get("does-not-exist"); ok {
		t.Error("Get() returned an unknown preset")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	reg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if len(reg.Names()) != 3 {
		t.Errorf("Names() = %v, want the 3 builtins", reg.Names())
	}
}

func TestLoad_MergesOverBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
presets:
  brand:
    font_family: "Custom Sans"
    text_color: "#EEEEEE"
    position: top
    size: large
    animation_style: slide
  classic:
    font_family: "Overridden"
    position: bottom
    size: medium
    animation_style: karaoke
default: brand
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write presets file: %v", err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if reg.Default().FontFamily != "Custom Sans" {
		t.Errorf("Default().FontFamily = %s, want Custom Sans", reg.Default().FontFamily)
	}

	classic, _ := reg.Get("classic")
	if classic.FontFamily != "Overridden" {
		t.Errorf("classic.FontFamily = %s, file should override builtin", classic.FontFamily)
	}
}

func TestLoad_InvalidPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
presets:
  broken:
    position: sideways
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write presets file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject an invalid position")
	}
}

func TestLoad_UnknownDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("default: ghost\n"), 0644); err != nil {
		t.Fatalf("write presets file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject an undefined default preset")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/presets.yaml"); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
