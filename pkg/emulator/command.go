package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset resets the emulator to its power on state.
	CommandReset
	// CommandSetSpeed sets the speed of the emulator, Data holding
	// the speed factor as encoded by SpeedPacket.
	CommandSetSpeed
	// CommandSwitchDebugMode moves on to the next debug view. The
	// response Data holds the name of the new view.
	CommandSwitchDebugMode
	// CommandCyclePalette moves on to the next colour scheme. The
	// response Data holds the name of the new scheme.
	CommandCyclePalette
	// CommandClickScreen forwards a click on the screen, Data holding
	// the coordinates as encoded by PointPacket.
	CommandClickScreen
	// CommandClickDebug forwards a click on the debug view.
	CommandClickDebug
	// CommandConfirmTile writes the tile being edited back to VRAM.
	CommandConfirmTile
)

var commandNames = map[Command]string{
	CommandPause:           "pause",
	CommandResume:          "resume",
	CommandClose:           "close",
	CommandReset:           "reset",
	CommandSetSpeed:        "set speed",
	CommandSwitchDebugMode: "switch debug mode",
	CommandCyclePalette:    "cycle palette",
	CommandClickScreen:     "click screen",
	CommandClickDebug:      "click debug",
	CommandConfirmTile:     "confirm tile",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ErrMalformedPacket is returned when the data of a packet can't be
// decoded for its command.
var ErrMalformedPacket = errors.New("emulator: malformed packet")

// SpeedPacket returns a CommandSetSpeed packet for speed.
func SpeedPacket(speed float64) CommandPacket {
	return CommandPacket{
		Command: CommandSetSpeed,
		Data:    binary.LittleEndian.AppendUint64(nil, math.Float64bits(speed)),
	}
}

// Speed decodes the speed factor of a CommandSetSpeed packet.
func (p CommandPacket) Speed() (float64, error) {
	if len(p.Data) != 8 {
		return 0, fmt.Errorf("%w: %s expects 8 bytes, got %d", ErrMalformedPacket, p.Command, len(p.Data))
	}
	speed := math.Float64frombits(binary.LittleEndian.Uint64(p.Data))
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, fmt.Errorf("%w: invalid speed %v", ErrMalformedPacket, speed)
	}
	return speed, nil
}

// PointPacket returns a click packet for command at x, y.
func PointPacket(command Command, x, y int) CommandPacket {
	data := binary.LittleEndian.AppendUint32(nil, uint32(int32(x)))
	return CommandPacket{
		Command: command,
		Data:    binary.LittleEndian.AppendUint32(data, uint32(int32(y))),
	}
}

// Point decodes the coordinates of a click packet.
func (p CommandPacket) Point() (x, y int, err error) {
	if len(p.Data) != 8 {
		return 0, 0, fmt.Errorf("%w: %s expects 8 bytes, got %d", ErrMalformedPacket, p.Command, len(p.Data))
	}
	x = int(int32(binary.LittleEndian.Uint32(p.Data)))
	y = int(int32(binary.LittleEndian.Uint32(p.Data[4:])))
	return x, y, nil
}
