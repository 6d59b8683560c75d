package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/thelolagemann/gameboj/internal/cheats"
	"github.com/thelolagemann/gameboj/internal/gameboy"
	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/display/event"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

type Run struct {
	ROM     string            `arg:"" optional:"" help:"ROM to run, possibly in a .zip, .7z or .gz archive. Asked for when missing." type:"existingfile"`
	Driver  string            `help:"Display driver: auto, ${drivers}." placeholder:"NAME"`
	BootROM string            `name:"boot-rom" help:"Boot ROM to run before the cartridge." type:"existingfile" placeholder:"FILE"`
	Speed   float64           `help:"Speed factor, overrides the configuration."`
	Cheats  string            `help:"Cheat file of Game Genie and GameShark codes." type:"existingfile" placeholder:"FILE"`
	Option  map[string]string `short:"o" help:"Display driver option." placeholder:"NAME=VALUE"`
}

func (r *Run) Run(e *env) error {
	if r.ROM == "" {
		wd, _ := os.Getwd()
		rom, err := utils.AskForFile("Open ROM", wd)
		if err != nil {
			return fmt.Errorf("no ROM to run: %w", err)
		}
		r.ROM = rom
	}
	if r.Speed > 0 {
		e.cfg.Emulator.Speed = r.Speed
	}

	name := r.Driver
	if name == "" {
		name = e.cfg.Display.Driver
	}
	if len(display.InstalledDrivers) == 0 {
		return errors.New("no display drivers installed")
	}
	driver, err := display.GetDriver(name)
	if err != nil {
		return err
	}
	if err := driver.Configure(r.driverOptions(e, driver)); err != nil {
		return err
	}
	if l, ok := driver.Driver.(display.Logged); ok {
		l.SetLogger(e.log)
	}

	keys, err := display.ParseKeys(e.cfg.Keys)
	if err != nil {
		return err
	}

	var opts []gameboy.Opt
	if r.Cheats != "" {
		list, err := loadCheats(r.Cheats)
		if err != nil {
			return err
		}
		e.log.Infof("loaded %d cheats from %s", len(list), r.Cheats)
		opts = append(opts, gameboy.WithCheats(list))
	}

	gb, err := e.newGameBoy(r.ROM, r.BootROM, opts...)
	if err != nil {
		return err
	}
	driver.Initialize(gb, keys)
	e.log.Infof("running with the %s driver", driver.Name)

	frames := make(chan display.Frame, 1)
	events := make(chan event.Event, 16)
	pressed := make(chan joypad.Button, 8)
	released := make(chan joypad.Button, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer driver.Stop()
		return gb.Start(ctx, frames, events, pressed, released)
	})

	// the driver keeps the main goroutine
	err = driver.Start(frames, events, pressed, released)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

// driverOptions merges the configured options of the driver with the
// command line ones, which take precedence. The scale and the web
// settings of the configuration apply to the drivers having them.
func (r *Run) driverOptions(e *env, driver *display.InstalledDriver) map[string]string {
	values := map[string]string{}
	has := func(name string) bool {
		for _, opt := range driver.Options {
			if opt.Name == name {
				return true
			}
		}
		return false
	}
	set := func(name, value string) {
		if has(name) {
			values[name] = value
		}
	}

	set("scale", strconv.FormatFloat(e.cfg.Display.Scale, 'f', -1, 64))
	set("listen", e.cfg.Web.Listen)
	set("compression", strconv.FormatBool(e.cfg.Web.Compression))
	set("compression-level", strconv.Itoa(e.cfg.Web.CompressionLevel))
	for name, value := range e.cfg.Display.Options {
		values[name] = value
	}
	for name, value := range r.Option {
		values[name] = value
	}
	return values
}

func loadCheats(path string) ([]cheats.Cheat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list, err := cheats.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}
