// Command gameboj runs Game Boy ROMs.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/thelolagemann/gameboj/internal/boot"
	"github.com/thelolagemann/gameboj/internal/config"
	"github.com/thelolagemann/gameboj/internal/gameboy"
	"github.com/thelolagemann/gameboj/internal/ppu"
	"github.com/thelolagemann/gameboj/internal/ppu/palette"
	"github.com/thelolagemann/gameboj/pkg/display"
	_ "github.com/thelolagemann/gameboj/pkg/display/fyne"
	_ "github.com/thelolagemann/gameboj/pkg/display/glfw"
	_ "github.com/thelolagemann/gameboj/pkg/display/sdl"
	_ "github.com/thelolagemann/gameboj/pkg/display/web"
	"github.com/thelolagemann/gameboj/pkg/log"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

// version is set at link time.
var version = "dev"

func init() {
	// the GUI drivers must run on the main thread
	runtime.LockOSThread()
}

type CLI struct {
	Config string `help:"Configuration file. (default: ${config_path})" type:"path" placeholder:"FILE"`
	Log    string `help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`

	Run        Run        `cmd:"" default:"withargs" help:"Run a ROM. (default command)"`
	Info       Info       `cmd:"" help:"Show the cartridge header of a ROM."`
	Bench      Bench      `cmd:"" help:"Run a ROM without display, and chart the frame times."`
	Screenshot Screenshot `cmd:"" help:"Run a ROM without display, and save the last frame."`
	Version    Version    `cmd:"" help:"Show the gameboj version."`
}

// env is what every command needs once the global flags are parsed.
type env struct {
	cfg config.Config
	log log.Logger
}

func main() {
	configPath, err := config.DefaultPath()
	if err != nil {
		configPath = config.Filename
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gameboj"),
		kong.Description("A cycle-accurate Game Boy emulator."),
		kong.UsageOnError(),
		kong.Vars{
			"config_path": configPath,
			"drivers":     strings.Join(display.Names(), ", "),
		})

	if cli.Config != "" {
		configPath = cli.Config
	}
	e, err := newEnv(configPath, cli.Log)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(e))
}

// newEnv loads the configuration at path, writing the default one when
// there is none yet.
func newEnv(path, level string) (*env, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(path, config.Default()); err != nil {
			return nil, fmt.Errorf("writing default configuration: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level == "" {
		level = cfg.Emulator.LogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log.NewWithOutput(os.Stderr, lvl)}, nil
}

// helpMessages are shown by the messages debug view.
var helpMessages = []string{
	"T: TURBO",
	"D: DEBUG VIEW",
	"K: PALETTE",
	"ESC: PAUSE",
	"R: RESET",
	"P: SAVE SCREENSHOT",
	"C: COPY SCREENSHOT",
}

// newGameBoy loads the ROM at romPath, and the boot ROM at bootPath or
// the configured one, into a Game Boy set up from the configuration.
func (e *env) newGameBoy(romPath, bootPath string, extra ...gameboy.Opt) (*gameboy.GameBoy, error) {
	rom, err := utils.LoadFile(romPath)
	if err != nil {
		return nil, err
	}

	view, err := ppu.ParseView(e.cfg.Emulator.DebugMode)
	if err != nil {
		return nil, err
	}
	scheme, err := palette.ParseScheme(e.cfg.Display.Palette)
	if err != nil {
		return nil, err
	}
	opts := []gameboy.Opt{
		gameboy.WithLogger(e.log),
		gameboy.Speed(e.cfg.Emulator.Speed),
		gameboy.WithDebugMode(view),
		gameboy.WithPalette(scheme),
	}

	if bootPath == "" {
		bootPath = e.cfg.Emulator.BootROM
	}
	if bootPath != "" {
		raw, err := utils.LoadFile(bootPath)
		if err != nil {
			return nil, err
		}
		b, err := boot.LoadBootROM(raw)
		if err != nil {
			return nil, err
		}
		e.log.Infof("boot ROM %s (%s)", b.Model(), b.Checksum())
		opts = append(opts, gameboy.WithBootROM(b))
	}

	gb, err := gameboy.NewGameBoy(rom, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	if err := gb.SetMessages(helpMessages...); err != nil {
		return nil, err
	}
	return gb, nil
}

type Version struct{}

func (Version) Run() error {
	fmt.Printf("gameboj %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
