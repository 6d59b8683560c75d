package emulator

// Status is the state of the emulation loop of a GameBoy.
type Status int

const (
	// Running means frames are being emulated.
	Running Status = iota
	// Paused means the loop is alive and answers commands, but the
	// machine does not advance.
	Paused
	// Errored means the machine panicked, at a fatal opcode for
	// instance, and the loop has exited.
	Errored
)

var statusNames = [...]string{"Running", "Paused", "Errored"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

func (s Status) IsRunning() bool { return s == Running }
func (s Status) IsPaused() bool  { return s == Paused }
func (s Status) IsErrored() bool { return s == Errored }
