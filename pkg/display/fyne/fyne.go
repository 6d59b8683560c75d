//go:build !test

// Package fyne implements a desktop display driver with fyne, showing
// the LCD in one window and the debug view in another.
package fyne

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/display/event"
	"github.com/thelolagemann/gameboj/pkg/emulator"
	"github.com/thelolagemann/gameboj/pkg/log"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

func init() {
	driver := &fyneDriver{log: log.NewNullLogger()}
	display.Install("fyne", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     4.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the windows by this factor",
		},
		{
			Name:        "debug-window",
			Default:     true,
			Value:       &driver.debugWindow,
			Type:        "bool",
			Description: "Show the debug view in a second window",
		},
	})
}

type fyneDriver struct {
	scale       float64
	debugWindow bool

	emu  display.Emulator
	keys display.Keys
	log  log.Logger

	app      fyne.App
	stopOnce sync.Once
	stop     chan struct{}

	screen, debug *screen
}

// Initialize implements display.Driver.
func (f *fyneDriver) Initialize(emu display.Emulator, keys display.Keys) {
	f.emu = emu
	f.keys = keys
	f.stop = make(chan struct{})
}

// SetLogger sets the logger of the driver.
func (f *fyneDriver) SetLogger(l log.Logger) {
	f.log = log.WithComponent(l, "fyne")
}

// Start implements display.Driver. It must be called from the main
// goroutine.
func (f *fyneDriver) Start(frames <-chan display.Frame, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	f.app = app.NewWithID("io.github.thelolagemann.gameboj")
	f.app.Settings().SetTheme(gameboyTheme{})

	main := f.app.NewWindow("gameboj")
	main.SetMaster()
	main.SetPadded(false)
	f.screen = newScreen(display.ScreenWidth, display.ScreenHeight, func(x, y int) {
		f.send(emulator.PointPacket(emulator.CommandClickScreen, x, y))
	})
	main.SetContent(f.screen)
	main.Resize(f.size(display.ScreenWidth, display.ScreenHeight))
	f.bindKeys(main, pressed, released, false)

	var debug fyne.Window
	if f.debugWindow {
		debug = f.app.NewWindow("gameboj debug")
		debug.SetPadded(false)
		f.debug = newScreen(display.ScreenWidth, display.ScreenHeight, func(x, y int) {
			f.send(emulator.PointPacket(emulator.CommandClickDebug, x, y))
		})
		debug.SetContent(f.debug)
		debug.Resize(f.size(display.ScreenWidth, display.ScreenHeight))
		f.bindKeys(debug, pressed, released, true)
		debug.Show()
	}

	go f.loop(main, frames, events)

	main.ShowAndRun()
	f.stopOnce.Do(func() { close(f.stop) })
	return nil
}

func (f *fyneDriver) size(width, height int) fyne.Size {
	return fyne.NewSize(float32(float64(width)*f.scale), float32(float64(height)*f.scale))
}

// loop draws the frames and handles the emulator events until the
// driver stops.
func (f *fyneDriver) loop(main fyne.Window, frames <-chan display.Frame, events <-chan event.Event) {
	errored := false
	for {
		select {
		case <-f.stop:
			return
		case frame := <-frames:
			f.screen.set(frame.Screen)
			if f.debug != nil && frame.Debug != nil {
				f.debug.set(frame.Debug)
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				main.SetTitle(e.Data.(string))
			case event.FrameTime:
				f.log.Debugf("frame time %v", e.Data)
			case event.Error:
				errored = true
				if err, ok := e.Data.(error); ok {
					dialog.ShowError(err, main)
				}
			case event.Quit:
				// leave the error on screen until the user closes it
				if !errored {
					f.app.Quit()
					return
				}
			}
		}
	}
}

// bindKeys forwards the joypad keys of w, and handles the settings
// keys. The debug window additionally confirms tile edits with Return.
func (f *fyneDriver) bindKeys(w fyne.Window, pressed, released chan<- joypad.Button, debug bool) {
	dc, ok := w.Canvas().(desktop.Canvas)
	if !ok {
		f.log.Warnf("window %q has no keyboard", w.Title())
		return
	}

	dc.SetOnKeyDown(func(e *fyne.KeyEvent) {
		if debug && e.Name == fyne.KeyReturn {
			f.send(display.ConfirmTile)
			return
		}
		if b, ok := f.keys[string(e.Name)]; ok {
			pressed <- b
			return
		}
		f.setting(e.Name)
	})
	dc.SetOnKeyUp(func(e *fyne.KeyEvent) {
		if debug && e.Name == fyne.KeyReturn {
			return
		}
		if b, ok := f.keys[string(e.Name)]; ok {
			released <- b
		}
	})
}

// setting handles the keys that aren't bound to the joypad.
func (f *fyneDriver) setting(key fyne.KeyName) {
	switch key {
	case fyne.KeyT:
		speed := display.NextSpeed(f.emu.Speed())
		f.send(emulator.SpeedPacket(speed))
	case fyne.KeyD:
		if resp := f.send(display.SwitchDebugMode); resp.Error == nil {
			f.log.Infof("debug view: %s", resp.Data)
		}
	case fyne.KeyK:
		if resp := f.send(display.CyclePalette); resp.Error == nil {
			f.log.Infof("palette: %s", resp.Data)
		}
	case fyne.KeyR:
		f.send(display.Reset)
	case fyne.KeyEscape:
		if resp := display.TogglePause(f.emu); resp.Error != nil {
			f.log.Errorf("toggling pause: %v", resp.Error)
		}
	case fyne.KeyC:
		if err := utils.CopyImage(f.screen.image()); err != nil {
			f.log.Errorf("copying screenshot: %v", err)
		}
	case fyne.KeyP:
		img := f.screen.image()
		go func() {
			if err := utils.SaveImage(img); err != nil && !errors.Is(err, utils.ErrCancelled) {
				f.log.Errorf("saving screenshot: %v", err)
			}
		}()
	}
}

func (f *fyneDriver) send(cmd emulator.CommandPacket) emulator.ResponsePacket {
	resp := f.emu.SendCommand(cmd)
	if resp.Error != nil {
		f.log.Errorf("%s: %v", cmd.Command, resp.Error)
	}
	return resp
}

// Stop implements display.Driver.
func (f *fyneDriver) Stop() error {
	f.stopOnce.Do(func() { close(f.stop) })
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}
