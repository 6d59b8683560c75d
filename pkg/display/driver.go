// Package display defines the contract between the emulator and the
// display drivers rendering its frames, and keeps the registry of the
// installed drivers.
package display

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strconv"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/internal/ppu"
	"github.com/thelolagemann/gameboj/pkg/display/event"
	"github.com/thelolagemann/gameboj/pkg/emulator"
	"github.com/thelolagemann/gameboj/pkg/log"
)

const (
	ScreenWidth  = ppu.ScreenWidth
	ScreenHeight = ppu.ScreenHeight
)

// Frame is a frame of the emulator, ready to be drawn.
type Frame struct {
	// Screen is the LCD, ScreenWidth x ScreenHeight pixels.
	Screen *image.RGBA
	// Debug is the current debug view, or nil when there is none.
	Debug *image.RGBA
	// Number is the number of frames drawn by the emulator so far.
	Number uint64
}

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the emulator that is using it, with the keys mapped to the
	// joypad buttons.
	Initialize(emu Emulator, keys Keys)
	// Start the display driver. It blocks until the user closes the
	// display, or an event.Quit is received.
	Start(frames <-chan Frame, events <-chan event.Event, pressed, released chan<- joypad.Button) error
	// Stop the display driver.
	Stop() error
}

// Logged is implemented by the drivers that log through the emulator
// logger.
type Logged interface {
	SetLogger(l log.Logger)
}

// Emulator is the interface that wraps the basic methods for an
// emulator to implement in order for the driver to be able to
// interact with it. This is used to allow the driver to
// control the emulator. The emulator is passed to the driver
// during initialization.
type Emulator = emulator.Controller

var (
	Pause           = emulator.CommandPacket{Command: emulator.CommandPause}
	Resume          = emulator.CommandPacket{Command: emulator.CommandResume}
	Reset           = emulator.CommandPacket{Command: emulator.CommandReset}
	Close           = emulator.CommandPacket{Command: emulator.CommandClose}
	SwitchDebugMode = emulator.CommandPacket{Command: emulator.CommandSwitchDebugMode}
	CyclePalette    = emulator.CommandPacket{Command: emulator.CommandCyclePalette}
	ConfirmTile     = emulator.CommandPacket{Command: emulator.CommandConfirmTile}
)

// Speeds are the speed factors the drivers cycle through.
var Speeds = []float64{1, 2, 3, 0.5}

// NextSpeed returns the speed following speed in Speeds.
func NextSpeed(speed float64) float64 {
	for i, s := range Speeds {
		if s == speed {
			return Speeds[(i+1)%len(Speeds)]
		}
	}
	return Speeds[0]
}

// TogglePause pauses a running emulator, and resumes a paused one.
func TogglePause(emu Emulator) emulator.ResponsePacket {
	if emu.Status().IsPaused() {
		return emu.SendCommand(Resume)
	}
	return emu.SendCommand(Pause)
}

// DriverOption is a display driver option. This is used to
// configure a display driver.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "int", "bool", "string", "float"
}

// Set parses value and stores it in the option.
func (o DriverOption) Set(value string) error {
	switch ptr := o.Value.(type) {
	case *string:
		*ptr = value
	case *bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", o.Name, err)
		}
		*ptr = b
	case *int:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", o.Name, err)
		}
		*ptr = i
	case *float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("option %s: %w", o.Name, err)
		}
		*ptr = f
	default:
		return fmt.Errorf("option %s: unknown type %T", o.Name, ptr) // should never happen, but just in case...
	}
	return nil
}

// InstalledDriver is a driver that has been installed. This is
// used to allow drivers to register their name.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// ErrUnknownDriver is returned when looking up a driver that isn't
// installed.
var ErrUnknownDriver = errors.New("display: unknown driver")

// InstalledDrivers is a list of all the installed drivers. This
// variable is exported so that it can be used by the main
// program to determine which drivers can be used. Drivers should
// call display.Install in their init() function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name. The name "auto"
// picks the first installed driver.
func GetDriver(name string) (*InstalledDriver, error) {
	if name == "auto" && len(InstalledDrivers) > 0 {
		return InstalledDrivers[0], nil
	}
	for _, driver := range InstalledDrivers {
		if driver.Name == name {
			return driver, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
}

// Names returns the names of the installed drivers, sorted.
func Names() []string {
	names := make([]string, 0, len(InstalledDrivers))
	for _, driver := range InstalledDrivers {
		names = append(names, driver.Name)
	}
	sort.Strings(names)
	return names
}

// Install registers a display driver with the given name. The
// options are reset to their default value.
func Install(name string, driver Driver, options []DriverOption) {
	for _, opt := range options {
		if err := opt.Set(fmt.Sprint(opt.Default)); err != nil {
			panic(fmt.Sprintf("display: driver %s: %v", name, err))
		}
	}

	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// Configure sets the options of the driver from values, keyed by
// option name.
func (d *InstalledDriver) Configure(values map[string]string) error {
	for name, value := range values {
		found := false
		for _, opt := range d.Options {
			if opt.Name == name {
				if err := opt.Set(value); err != nil {
					return fmt.Errorf("display: driver %s: %w", d.Name, err)
				}
				found = true
			}
		}
		if !found {
			return fmt.Errorf("display: driver %s has no option %q", d.Name, name)
		}
	}
	return nil
}
