package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected the default config (-want +got):\n%s", diff)
	}
}

func TestLoad_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	data := `
[emulator]
speed = 2.0

[display]
palette = "green"

[keys]
A = "Z"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Default()
	want.Emulator.Speed = 2
	want.Display.Palette = "green"
	want.Keys["A"] = "Z"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":  "[emulator",
		"unknown": "[emulator]\nturbo = true\n",
		"speed":   "[emulator]\nspeed = -1.0\n",
		"view":    "[emulator]\ndebug_mode = \"nope\"\n",
		"palette": "[display]\npalette = \"purple\"\n",
		"button":  "[keys]\nTURBO = \"T\"\n",
		"level":   "[web]\ncompression_level = 12\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), Filename)
			if err := os.WriteFile(path, []byte(data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)

	cfg := Default()
	cfg.Display.Driver = "web"
	cfg.Display.Options = map[string]string{"fullscreen": "true"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("expected the saved config (-want +got):\n%s", diff)
	}
}
