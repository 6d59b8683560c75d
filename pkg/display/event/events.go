// Package event holds what the emulation loop tells a display driver,
// apart from frames. It lives outside of display so that the gameboy
// package can send events without importing the drivers.
package event

// Type selects what a driver does with an Event.
type Type int

const (
	// Quit: the loop has exited, Start should return.
	Quit Type = iota
	// FrameTime carries the mean busy time of a frame over the last
	// second, as a time.Duration.
	FrameTime
	// Title carries the window title, the cartridge title and the
	// frame rate.
	Title
	// Error carries the error that stopped the loop. It is sent just
	// before Quit.
	Error
)

// Event is sent on the events channel of display.Driver.Start. The
// type of Data depends on Type, and is nil for Quit.
type Event struct {
	Type Type
	Data interface{}
}
