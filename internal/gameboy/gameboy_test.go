package gameboy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/gameboj/internal/boot"
	"github.com/thelolagemann/gameboj/internal/cartridge"
	"github.com/thelolagemann/gameboj/internal/cheats"
	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/internal/ppu"
	"github.com/thelolagemann/gameboj/internal/ppu/palette"
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/emulator"
)

// makeROM returns a 32 KiB cartridge of type typ with program at the
// entry point.
func makeROM(typ uint8, program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "TEST")
	rom[0x147] = typ
	copy(rom[types.EntryPoint:], program)
	return rom
}

// storeLoop stores 0x42 at 0xC000, then spins.
var storeLoop = []uint8{
	0x3E, 0x42, // LD A, 0x42
	0xEA, 0x00, 0xC0, // LD (0xC000), A
	0x18, 0xFE, // JR -2
}

func newTestGameBoy(t *testing.T, program ...uint8) *GameBoy {
	t.Helper()
	g, err := NewGameBoy(makeROM(0x00, program...))
	require.NoError(t, err)
	return g
}

func TestNewGameBoy(t *testing.T) {
	g := newTestGameBoy(t, storeLoop...)

	require.Equal(t, types.EntryPoint, g.CPU.PC)
	require.Equal(t, uint16(0xFFFE), g.CPU.SP)
	require.Equal(t, uint8(0x91), g.PPU.Register(ppu.LCDC))
	require.Equal(t, uint8(0xFC), g.PPU.Register(ppu.BGP))
	require.False(t, g.Boot.Enabled())
	require.Equal(t, "TEST", g.Cartridge.Title())
	require.Equal(t, emulator.Running, g.Status())
	require.Equal(t, 1.0, g.Speed())
}

func TestNewGameBoy_UnsupportedCartridge(t *testing.T) {
	_, err := NewGameBoy(makeROM(0x0F))
	require.ErrorIs(t, err, cartridge.ErrUnsupportedType)
}

func TestGameBoy_RunUntil(t *testing.T) {
	g := newTestGameBoy(t, storeLoop...)
	g.RunUntil(100)

	require.Equal(t, int64(100), g.Cycles())
	require.Equal(t, uint8(0x42), g.bus.Read(0xC000))
	require.Equal(t, uint8(0x42), g.bus.Read(0xE000), "echo RAM mirrors work RAM")

	require.Panics(t, func() { g.RunUntil(50) })
}

func TestGameBoy_RunFrame(t *testing.T) {
	g := newTestGameBoy(t, storeLoop...)
	g.RunFrame()
	require.Equal(t, uint64(1), g.PPU.Frames())

	f := g.Frame()
	require.Equal(t, ppu.ScreenWidth, f.Screen.Bounds().Dx())
	require.Equal(t, ppu.ScreenHeight, f.Screen.Bounds().Dy())
	require.Equal(t, uint64(1), f.Number)
	require.NotNil(t, f.Debug)

	// tile 0 is blank, and BGP maps colour 0 to white
	require.Equal(t, palette.Get(palette.Greyscale).GetColour(0), f.Screen.RGBAAt(0, 0))
}

func TestGameBoy_Joypad(t *testing.T) {
	g := newTestGameBoy(t, storeLoop...)

	g.bus.Write(types.P1, 0x20) // select the direction keys
	g.Press(joypad.ButtonUp)
	require.Equal(t, uint8(0b1011), g.bus.Read(types.P1)&0x0F)
	g.Release(joypad.ButtonUp)
	require.Equal(t, uint8(0b1111), g.bus.Read(types.P1)&0x0F)
}

func TestGameBoy_SnapshotRestore(t *testing.T) {
	g := newTestGameBoy(t, storeLoop...)
	g.RunUntil(5000)
	snapshot := g.Snapshot()

	g.RunUntil(40000)
	require.NotEqual(t, snapshot, g.Snapshot())

	require.NoError(t, g.Restore(snapshot))
	require.Equal(t, int64(5000), g.Cycles())
	require.Equal(t, snapshot, g.Snapshot())

	require.Error(t, g.Restore(snapshot[:10]))
}

func TestGameBoy_Reset(t *testing.T) {
	g := newTestGameBoy(t, storeLoop...)
	powerOn := g.Snapshot()

	g.RunUntil(20000)
	g.Reset()
	require.Equal(t, int64(0), g.Cycles())
	require.Equal(t, powerOn, g.Snapshot())
}

func TestGameBoy_BootROM(t *testing.T) {
	program := []uint8{
		0x3E, 0x01, // LD A, 1
		0xE0, 0x50, // LDH (0x50), A
	}
	raw := make([]byte, boot.Size)
	copy(raw, program)
	rom, err := boot.LoadBootROM(raw)
	require.NoError(t, err)

	g, err := NewGameBoy(makeROM(0x00, storeLoop...), WithBootROM(rom))
	require.NoError(t, err)
	require.True(t, g.Boot.Enabled())
	require.Equal(t, uint16(0), g.CPU.PC)
	require.Equal(t, uint8(0x3E), g.bus.Read(0x0000))

	g.RunUntil(100)
	require.False(t, g.Boot.Enabled())
	require.Equal(t, uint8(0x00), g.bus.Read(0x0000))
}

func TestGameBoy_DebugControls(t *testing.T) {
	g, err := NewGameBoy(makeROM(0x00, storeLoop...), WithDebugMode(ppu.ViewTiles), WithPalette(palette.Green))
	require.NoError(t, err)

	require.Equal(t, ppu.ViewTiles, g.PPU.View())
	require.Equal(t, ppu.ViewBackground, g.SwitchDebugMode())
	require.Equal(t, palette.Blue, g.CyclePalette())
	require.NoError(t, g.SetMessages("HELLO"))
	require.Error(t, g.SetMessages("THIS MESSAGE IS FAR TOO LONG FOR THE SCREEN"))

	g.Reset()
	require.Equal(t, ppu.ViewBackground, g.PPU.View(), "reset keeps the debug view")
}

func TestGameBoy_Cheats(t *testing.T) {
	// patch LD A, 0x42 into LD A, 0x24, and write 0x77 at 0xC001
	genie := cheats.GameGenie{NewData: 0x24, Address: types.EntryPoint + 1, OldData: 0x42}
	shark := cheats.GameShark{NewData: 0x77, Address: 0xC001}
	list := []cheats.Cheat{{Name: "test", Enabled: true, Genie: []cheats.GameGenie{genie}, Shark: []cheats.GameShark{shark}}}

	g, err := NewGameBoy(makeROM(0x00, storeLoop...), WithCheats(list))
	require.NoError(t, err)
	require.NotNil(t, g.Cheats)

	g.RunFrame()
	require.Equal(t, uint8(0x24), g.bus.Read(0xC000))
	require.Equal(t, uint8(0x77), g.bus.Read(0xC001))
}

// startTestGameBoy runs g in the background, and returns a function
// waiting for Start to return.
func startTestGameBoy(t *testing.T, g *GameBoy) func() error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	frames := make(chan display.Frame, 1)
	errs := make(chan error, 1)
	go func() {
		errs <- g.Start(ctx, frames, nil, nil, nil)
	}()
	return func() error {
		select {
		case err := <-errs:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("emulator did not stop")
			return nil
		}
	}
}

func TestGameBoy_Commands(t *testing.T) {
	g := newTestGameBoy(t, storeLoop...)
	wait := startTestGameBoy(t, g)

	resp := g.SendCommand(display.Pause)
	require.NoError(t, resp.Error)
	require.Equal(t, emulator.Paused, g.Status())

	resp = g.SendCommand(display.Resume)
	require.NoError(t, resp.Error)
	require.Equal(t, emulator.Running, g.Status())

	resp = g.SendCommand(emulator.SpeedPacket(2))
	require.NoError(t, resp.Error)
	require.Equal(t, 2.0, g.Speed())

	resp = g.SendCommand(emulator.CommandPacket{Command: emulator.CommandSetSpeed})
	require.ErrorIs(t, resp.Error, emulator.ErrMalformedPacket)

	resp = g.SendCommand(display.SwitchDebugMode)
	require.NoError(t, resp.Error)
	require.Equal(t, "sprites", string(resp.Data))

	resp = g.SendCommand(display.CyclePalette)
	require.Equal(t, "green", string(resp.Data))

	resp = g.SendCommand(emulator.PointPacket(emulator.CommandClickScreen, 10, 10))
	require.NoError(t, resp.Error)

	resp = g.SendCommand(display.Close)
	require.NoError(t, resp.Error)
	require.NoError(t, wait())

	resp = g.SendCommand(display.Pause)
	require.ErrorIs(t, resp.Error, ErrNotRunning)
	require.ErrorIs(t, g.Start(context.Background(), nil, nil, nil, nil), ErrAlreadyStarted)
}

func TestGameBoy_Errored(t *testing.T) {
	g := newTestGameBoy(t, 0xD3) // unsupported opcode
	wait := startTestGameBoy(t, g)

	require.Error(t, wait())
	require.Equal(t, emulator.Errored, g.Status())
}
