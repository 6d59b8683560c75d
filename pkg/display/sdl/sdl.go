//go:build !test

// Package sdl implements a display driver with SDL2, showing the LCD
// and the debug view in two windows.
package sdl

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/display/event"
	"github.com/thelolagemann/gameboj/pkg/emulator"
	"github.com/thelolagemann/gameboj/pkg/log"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

func init() {
	driver := &sdlDriver{log: log.NewNullLogger()}
	display.Install("sdl", driver, []display.DriverOption{
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
		{
			Name:        "vsync",
			Default:     false,
			Value:       &driver.vsync,
			Type:        "bool",
			Description: "Synchronize the rendering with the monitor refresh",
		},
	})
}

type sdlDriver struct {
	scale       float64
	debugWindow bool
	vsync       bool

	emu  display.Emulator
	keys map[sdl.Keycode]joypad.Button
	log  log.Logger

	stop chan struct{}
	once sync.Once

	screen, debug *window
}

// window is an SDL window streaming images to a texture. The
// renderer's logical size follows the image, so mouse positions are
// reported in image pixels.
type window struct {
	*sdl.Window
	id       uint32
	renderer *sdl.Renderer
	texture  *sdl.Texture
	bounds   image.Rectangle
	last     *image.RGBA
}

func newWindow(title string, width, height int, scale float64, flags uint32) (*window, error) {
	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(float64(width)*scale), int32(float64(height)*scale), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, err
	}
	renderer, err := sdl.CreateRenderer(win, -1, flags)
	if err != nil {
		win.Destroy()
		return nil, err
	}
	id, err := win.GetID()
	if err != nil {
		renderer.Destroy()
		win.Destroy()
		return nil, err
	}
	w := &window{Window: win, id: id, renderer: renderer}
	if err := w.resize(image.Rect(0, 0, width, height)); err != nil {
		w.destroy()
		return nil, err
	}
	return w, nil
}

// resize recreates the texture for images of the given bounds.
func (w *window) resize(bounds image.Rectangle) error {
	if w.texture != nil {
		if err := w.texture.Destroy(); err != nil {
			return err
		}
	}
	// ABGR8888 stores the bytes in R, G, B, A order on little endian
	t, err := w.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		int32(bounds.Dx()), int32(bounds.Dy()))
	if err != nil {
		return err
	}
	w.texture = t
	w.bounds = bounds
	return w.renderer.SetLogicalSize(int32(bounds.Dx()), int32(bounds.Dy()))
}

// draw uploads img and presents it.
func (w *window) draw(img *image.RGBA) error {
	if img.Rect != w.bounds {
		if err := w.resize(img.Rect); err != nil {
			return err
		}
	}
	w.last = img

	pixels, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return err
	}
	for y := 0; y < img.Rect.Dy(); y++ {
		copy(pixels[y*pitch:], img.Pix[y*img.Stride:y*img.Stride+img.Rect.Dx()*4])
	}
	w.texture.Unlock()

	if err := w.renderer.Clear(); err != nil {
		return err
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return err
	}
	w.renderer.Present()
	return nil
}

func (w *window) destroy() {
	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	_ = w.renderer.Destroy()
	_ = w.Window.Destroy()
}

// Initialize implements display.Driver.
func (s *sdlDriver) Initialize(emu display.Emulator, keys display.Keys) {
	s.emu = emu
	s.stop = make(chan struct{})
	s.keys = make(map[sdl.Keycode]joypad.Button, len(keys))
	for name, button := range keys {
		// SDL looks key names up case insensitively
		if code := sdl.GetKeyFromName(name); code != sdl.K_UNKNOWN {
			s.keys[code] = button
		}
	}
}

// SetLogger sets the logger of the driver.
func (s *sdlDriver) SetLogger(l log.Logger) {
	s.log = log.WithComponent(l, "sdl")
}

// Start implements display.Driver. SDL must run on the main thread.
func (s *sdlDriver) Start(frames <-chan display.Frame, events <-chan event.Event, pressed, released chan<- joypad.Button) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	defer sdl.Quit()

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if s.vsync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	if s.screen, err = newWindow("gameboj", display.ScreenWidth, display.ScreenHeight, s.scale, flags); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	defer s.screen.destroy()
	if s.debugWindow {
		if s.debug, err = newWindow("gameboj debug", display.ScreenWidth, display.ScreenHeight, s.scale, flags); err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
		defer s.debug.destroy()
	}

	pollTicker := time.NewTicker(10 * time.Millisecond)
	defer pollTicker.Stop()
	errored := false
	for {
		select {
		case <-s.stop:
			return nil
		case f := <-frames:
			if err := s.screen.draw(f.Screen); err != nil {
				return fmt.Errorf("sdl: %w", err)
			}
			if s.debug != nil && f.Debug != nil {
				if err := s.debug.draw(f.Debug); err != nil {
					return fmt.Errorf("sdl: %w", err)
				}
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				s.screen.SetTitle(e.Data.(string))
			case event.Error:
				errored = true
				if err, ok := e.Data.(error); ok {
					_ = sdl.ShowSimpleMessageBox(sdl.MESSAGEBOX_ERROR, "gameboj", err.Error(), s.screen.Window)
				}
			case event.Quit:
				if !errored {
					return nil
				}
			}
		case <-pollTicker.C:
		}

		if quit := s.poll(pressed, released); quit {
			return nil
		}
	}
}

// poll handles the pending SDL events, and reports whether the user
// closed the LCD window.
func (s *sdlDriver) poll(pressed, released chan<- joypad.Button) bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch e := e.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				if e.WindowID == s.screen.id {
					return true
				}
				if s.debug != nil && e.WindowID == s.debug.id {
					s.debug.Hide()
				}
			}
		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			s.key(e, pressed, released)
		case *sdl.MouseButtonEvent:
			if e.Type != sdl.MOUSEBUTTONDOWN || e.Button != sdl.BUTTON_LEFT {
				continue
			}
			switch {
			case e.WindowID == s.screen.id:
				s.send(emulator.PointPacket(emulator.CommandClickScreen, int(e.X), int(e.Y)))
			case s.debug != nil && e.WindowID == s.debug.id:
				s.send(emulator.PointPacket(emulator.CommandClickDebug, int(e.X), int(e.Y)))
			}
		}
	}
	return false
}

func (s *sdlDriver) key(e *sdl.KeyboardEvent, pressed, released chan<- joypad.Button) {
	down := e.Type == sdl.KEYDOWN
	code := e.Keysym.Sym

	if s.debug != nil && e.WindowID == s.debug.id && code == sdl.K_RETURN {
		if down {
			s.send(display.ConfirmTile)
		}
		return
	}
	if b, ok := s.keys[code]; ok {
		if down {
			pressed <- b
		} else {
			released <- b
		}
		return
	}
	if !down {
		return
	}

	switch code {
	case sdl.K_ESCAPE:
		display.TogglePause(s.emu)
	case sdl.K_t:
		s.send(emulator.SpeedPacket(display.NextSpeed(s.emu.Speed())))
	case sdl.K_d:
		s.send(display.SwitchDebugMode)
	case sdl.K_k:
		if resp := s.send(display.CyclePalette); resp.Error == nil {
			s.log.Infof("palette: %s", resp.Data)
		}
	case sdl.K_r:
		s.send(display.Reset)
	case sdl.K_c:
		if img := s.screen.last; img != nil {
			if err := utils.CopyImage(img); err != nil {
				s.log.Errorf("copying screenshot: %v", err)
			}
		}
	case sdl.K_p:
		if img := s.screen.last; img != nil {
			go func() {
				if err := utils.SaveImage(img); err != nil && !errors.Is(err, utils.ErrCancelled) {
					s.log.Errorf("saving screenshot: %v", err)
				}
			}()
		}
	}
}

func (s *sdlDriver) send(cmd emulator.CommandPacket) emulator.ResponsePacket {
	resp := s.emu.SendCommand(cmd)
	if resp.Error != nil {
		s.log.Errorf("%s: %v", cmd.Command, resp.Error)
	}
	return resp
}

// Stop implements display.Driver.
func (s *sdlDriver) Stop() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}
