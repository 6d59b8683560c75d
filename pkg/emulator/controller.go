package emulator

// Controller defines the interface contract for an Emulator to
// implement in order for a display.Driver to be able to control
// it. SendCommand blocks until the emulator has handled the command.
type Controller interface {
	SendCommand(CommandPacket) ResponsePacket
	Speed() float64
	Status() Status
}
