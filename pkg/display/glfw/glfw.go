//go:build !test

// Package glfw implements a barebones display driver using GLFW and
// the OpenGL API. It only shows the LCD.
package glfw

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/display/event"
	"github.com/thelolagemann/gameboj/pkg/emulator"
	"github.com/thelolagemann/gameboj/pkg/log"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

const aspectRatio = float32(display.ScreenWidth) / float32(display.ScreenHeight)

func init() {
	driver := &glfwDriver{log: log.NewNullLogger()}
	display.Install("glfw", driver, []display.DriverOption{
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
		{
			Name:        "scale",
			Default:     4.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "maintain-aspect-ratio",
			Default:     false,
			Value:       &driver.maintainAspectRatio,
			Type:        "bool",
			Description: "Force the window to maintain the correct aspect ratio",
		},
	})
}

// keyNames translates the key names of display.Keys to GLFW keys.
var keyNames = map[string]glfw.Key{
	"Up": glfw.KeyUp, "Down": glfw.KeyDown, "Left": glfw.KeyLeft, "Right": glfw.KeyRight,
	"Return": glfw.KeyEnter, "BackSpace": glfw.KeyBackspace, "Space": glfw.KeySpace,
	"Tab": glfw.KeyTab, "Escape": glfw.KeyEscape,
	"LeftShift": glfw.KeyLeftShift, "RightShift": glfw.KeyRightShift,
	"LeftControl": glfw.KeyLeftControl, "RightControl": glfw.KeyRightControl,
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyNames[string(c)] = glfw.KeyA + glfw.Key(c-'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = glfw.Key0 + glfw.Key(c-'0')
	}
}

// glfwDriver implements a barebones display driver using GLFW
// and the OpenGL API.
type glfwDriver struct {
	fullscreen          bool
	scale               float64
	maintainAspectRatio bool

	emu    display.Emulator
	log    log.Logger
	keys   map[glfw.Key]joypad.Button
	window *glfw.Window
	mon    *glfw.Monitor
	last   *image.RGBA
	stop   chan struct{}
	once   sync.Once

	windowSettings struct {
		width      int
		height     int
		xPos, yPos int
	}

	// the LCD is drawn at offset, targetWidth x targetHeight pixels
	offsetX, offsetY          int32
	targetWidth, targetHeight int32
}

// Initialize implements display.Driver.
func (g *glfwDriver) Initialize(e display.Emulator, keys display.Keys) {
	g.emu = e
	g.stop = make(chan struct{})
	g.keys = make(map[glfw.Key]joypad.Button, len(keys))
	for name, button := range keys {
		if key, ok := keyNames[name]; ok {
			g.keys[key] = button
		}
	}
}

// SetLogger sets the logger of the driver.
func (g *glfwDriver) SetLogger(l log.Logger) {
	g.log = log.WithComponent(l, "glfw")
}

// Start implements display.Driver. GLFW must run on the main thread.
func (g *glfwDriver) Start(frames <-chan display.Frame, evts <-chan event.Event, pressed, released chan<- joypad.Button) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()
	g.mon = glfw.GetPrimaryMonitor()

	window, err := glfw.CreateWindow(int(display.ScreenWidth*g.scale), int(display.ScreenHeight*g.scale), "gameboj", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	g.window = window

	if g.maintainAspectRatio {
		window.SetAspectRatio(10, 9)
	}
	g.windowSettings.width, g.windowSettings.height = window.GetSize()
	g.windowSettings.xPos, g.windowSettings.yPos = window.GetPos()
	if g.fullscreen {
		best := g.bestMode()
		window.SetMonitor(g.mon, 0, 0, best.Width, best.Height, best.RefreshRate)
	}

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("glfw: initializing OpenGL: %w", err)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, display.ScreenWidth, display.ScreenHeight, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	var fb uint32
	gl.GenFramebuffers(1, &fb)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if button, ok := g.keys[key]; ok {
			switch action {
			case glfw.Press:
				pressed <- button
			case glfw.Release:
				released <- button
			}
			return
		}
		if action == glfw.Press {
			g.setting(key)
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		if x, y, ok := g.screenPoint(w.GetCursorPos()); ok {
			g.send(emulator.PointPacket(emulator.CommandClickScreen, x, y))
		}
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		g.resize(w, h)
	})
	g.resize(window.GetFramebufferSize())

	// to handle events while paused
	pollTicker := time.NewTicker(time.Millisecond * 100)
	defer pollTicker.Stop()
	for {
		select {
		case <-g.stop:
			return nil
		case f := <-frames:
			glfw.PollEvents()
			if window.ShouldClose() {
				return nil
			}
			g.last = f.Screen
			gl.Clear(gl.COLOR_BUFFER_BIT)
			gl.BindTexture(gl.TEXTURE_2D, texture)
			gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, display.ScreenWidth, display.ScreenHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Screen.Pix))

			// the framebuffer's origin is bottom left, flip while blitting
			gl.BlitFramebuffer(0, 0, display.ScreenWidth, display.ScreenHeight,
				g.offsetX, g.offsetY+g.targetHeight, g.offsetX+g.targetWidth, g.offsetY,
				gl.COLOR_BUFFER_BIT, gl.NEAREST)
			window.SwapBuffers()
		case e := <-evts:
			switch e.Type {
			case event.Title:
				window.SetTitle(e.Data.(string))
			case event.Error:
				g.log.Errorf("%v", e.Data)
			case event.Quit:
				return nil
			}
		case <-pollTicker.C:
			glfw.PollEvents()
			if window.ShouldClose() {
				return nil
			}
		}
	}
}

// resize centers the LCD in a framebuffer of w x h pixels, keeping its
// aspect ratio.
func (g *glfwDriver) resize(w, h int) {
	if h == 0 {
		return
	}
	if float32(w)/float32(h) > aspectRatio {
		g.targetWidth = int32(float32(h) * aspectRatio)
		g.targetHeight = int32(h)
	} else {
		g.targetWidth = int32(w)
		g.targetHeight = int32(float32(w) / aspectRatio)
	}
	g.offsetX = (int32(w) - g.targetWidth) / 2
	g.offsetY = (int32(h) - g.targetHeight) / 2
}

// screenPoint converts a cursor position in window coordinates to an
// LCD pixel.
func (g *glfwDriver) screenPoint(cx, cy float64) (int, int, bool) {
	winW, winH := g.window.GetSize()
	fbW, fbH := g.window.GetFramebufferSize()
	if winW == 0 || winH == 0 || g.targetWidth == 0 || g.targetHeight == 0 {
		return 0, 0, false
	}
	// window coordinates may differ from framebuffer pixels on HiDPI
	fx := cx * float64(fbW) / float64(winW)
	fy := cy * float64(fbH) / float64(winH)

	x := int((fx - float64(g.offsetX)) * display.ScreenWidth / float64(g.targetWidth))
	y := int((fy - float64(g.offsetY)) * display.ScreenHeight / float64(g.targetHeight))
	if fx < float64(g.offsetX) || fy < float64(g.offsetY) || x >= display.ScreenWidth || y >= display.ScreenHeight {
		return 0, 0, false
	}
	return x, y, true
}

// setting handles the keys that aren't bound to the joypad.
func (g *glfwDriver) setting(key glfw.Key) {
	switch key {
	case glfw.KeyF11:
		g.toggleFullscreen()
	case glfw.KeyEscape, glfw.KeyPause:
		display.TogglePause(g.emu)
	case glfw.KeyT:
		g.send(emulator.SpeedPacket(display.NextSpeed(g.emu.Speed())))
	case glfw.KeyD:
		g.send(display.SwitchDebugMode)
	case glfw.KeyK:
		if resp := g.send(display.CyclePalette); resp.Error == nil {
			g.log.Infof("palette: %s", resp.Data)
		}
	case glfw.KeyR:
		g.send(display.Reset)
	case glfw.KeyC:
		if g.last != nil {
			if err := utils.CopyImage(g.last); err != nil {
				g.log.Errorf("copying screenshot: %v", err)
			}
		}
	case glfw.KeyP:
		if g.last != nil {
			img := g.last
			go func() {
				if err := utils.SaveImage(img); err != nil && !errors.Is(err, utils.ErrCancelled) {
					g.log.Errorf("saving screenshot: %v", err)
				}
			}()
		}
	}
}

func (g *glfwDriver) toggleFullscreen() {
	if g.fullscreen {
		g.window.SetMonitor(nil, g.windowSettings.xPos, g.windowSettings.yPos, g.windowSettings.width, g.windowSettings.height, glfw.DontCare)
	} else {
		g.windowSettings.width, g.windowSettings.height = g.window.GetSize()
		g.windowSettings.xPos, g.windowSettings.yPos = g.window.GetPos()

		best := g.bestMode()
		g.window.SetMonitor(g.mon, 0, 0, best.Width, best.Height, best.RefreshRate)
	}
	g.fullscreen = !g.fullscreen
}

func (g *glfwDriver) send(cmd emulator.CommandPacket) emulator.ResponsePacket {
	resp := g.emu.SendCommand(cmd)
	if resp.Error != nil {
		g.log.Errorf("%s: %v", cmd.Command, resp.Error)
	}
	return resp
}

// Stop implements display.Driver.
func (g *glfwDriver) Stop() error {
	g.once.Do(func() { close(g.stop) })
	return nil
}

// bestMode returns the best video mode for the current monitor
// by choosing the highest resolution that is the closest match to
// the native aspect ratio of the monitor. Monitors without a 60Hz mode
// get their current mode.
func (g *glfwDriver) bestMode() *glfw.VidMode {
	sizeX, sizeY := g.mon.GetPhysicalSize()
	monAspectRatio := float32(sizeX) / float32(sizeY)
	closestMatch := float32(-1)

	var best *glfw.VidMode
	for _, vm := range g.mon.GetVideoModes() {
		if vm.RefreshRate != 60 {
			continue
		}

		diff := float32(vm.Width)/float32(vm.Height) - monAspectRatio
		if diff < 0 {
			diff = -diff
		}
		if closestMatch >= 0 && diff > closestMatch {
			continue
		}
		closestMatch = diff
		best = vm
	}

	if best == nil {
		return g.mon.GetVideoMode()
	}
	return best
}
