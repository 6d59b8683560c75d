// Package config holds the user configuration of the emulator, stored
// as TOML in the user configuration directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/internal/ppu"
	"github.com/thelolagemann/gameboj/internal/ppu/palette"
	"github.com/thelolagemann/gameboj/pkg/display"
)

const (
	// Filename is the name of the configuration file.
	Filename = "config.toml"

	// DefaultFileMode is the mode of the configuration directory.
	DefaultFileMode = os.FileMode(0755)
)

// Config is the configuration of the emulator.
type Config struct {
	Emulator EmulatorConfig `toml:"emulator"`
	Display  DisplayConfig  `toml:"display"`
	Web      WebConfig      `toml:"web"`
	// Keys maps joypad button names to key names.
	Keys map[string]string `toml:"keys"`
}

type EmulatorConfig struct {
	Speed float64 `toml:"speed"`
	// BootROM is the path of the boot ROM to run, if any.
	BootROM   string `toml:"boot_rom"`
	DebugMode string `toml:"debug_mode"`
	LogLevel  string `toml:"log_level"`
}

type DisplayConfig struct {
	Driver  string  `toml:"driver"`
	Scale   float64 `toml:"scale"`
	Palette string  `toml:"palette"`
	// Options are passed to the display driver, by option name.
	Options map[string]string `toml:"options"`
}

type WebConfig struct {
	Listen           string `toml:"listen"`
	Compression      bool   `toml:"compression"`
	CompressionLevel int    `toml:"compression_level"`
}

// Dir returns the directory holding the configuration file, creating it
// if needed.
var Dir = sync.OnceValues(func() (string, error) {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: no user config directory: %w", err)
	}

	dir := filepath.Join(cfgdir, "gameboj")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		return "", fmt.Errorf("config: creating %s: %w", dir, err)
	}
	return dir, nil
})

// DefaultPath returns the path of the configuration file in Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Filename), nil
}

// Default returns the default configuration.
func Default() Config {
	keys := make(map[string]string)
	for key, button := range display.DefaultKeys() {
		keys[button.String()] = key
	}
	return Config{
		Emulator: EmulatorConfig{
			Speed:     1,
			DebugMode: ppu.ViewMessages.String(),
			LogLevel:  "info",
		},
		Display: DisplayConfig{
			Driver:  "auto",
			Scale:   4,
			Palette: palette.Greyscale.String(),
		},
		Web: WebConfig{
			Listen:           "localhost:8080",
			Compression:      true,
			CompressionLevel: 5,
		},
		Keys: keys,
	}
}

// Load reads the configuration at path. Settings missing from the file
// keep their default value, and a missing file yields Default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown keys in %s: %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg at path.
func Save(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Validate checks the values which can't be checked by the decoder.
func (c Config) Validate() error {
	if c.Emulator.Speed <= 0 {
		return fmt.Errorf("invalid speed %v", c.Emulator.Speed)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("invalid scale %v", c.Display.Scale)
	}
	if _, err := ppu.ParseView(c.Emulator.DebugMode); err != nil {
		return err
	}
	if _, err := palette.ParseScheme(c.Display.Palette); err != nil {
		return err
	}
	for button := range c.Keys {
		if _, err := joypad.ParseButton(button); err != nil {
			return err
		}
	}
	if c.Web.CompressionLevel < 0 || c.Web.CompressionLevel > 11 {
		return fmt.Errorf("invalid compression level %d", c.Web.CompressionLevel)
	}
	return nil
}
