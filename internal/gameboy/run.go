package gameboy

import (
	"context"
	"fmt"
	"time"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/display/event"
	"github.com/thelolagemann/gameboj/pkg/emulator"
)

// Start runs the emulator loop until ctx is done, or a close command
// is received. Every FrameDuration it simulates a frame worth of
// cycles scaled by the speed, and sends the frame to frames, dropping
// it if the driver is still busy with the previous one. Joypad events
// and commands are handled in between frames, so that the components
// are only ever touched by this goroutine.
//
// A panic of the core stops the loop with the emulator.Errored status,
// and is returned as an error.
func (g *GameBoy) Start(ctx context.Context, frames chan<- display.Frame, events chan<- event.Event, pressed, released <-chan joypad.Button) (err error) {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return ErrAlreadyStarted
	}
	g.started = true
	g.mu.Unlock()

	defer close(g.done)
	defer func() {
		if r := recover(); r != nil {
			g.setStatus(emulator.Errored)
			err = fmt.Errorf("gameboy: emulation stopped at cycle %d: %v", g.cycle, r)
			g.Errorf("%v", err)
			send(events, event.Event{Type: event.Error, Data: err})
		}
		send(events, event.Event{Type: event.Quit})
	}()

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()
	second := time.NewTicker(time.Second)
	defer second.Stop()

	var (
		budget     float64 // cycles owed to the emulated machine
		lastFrames = g.PPU.Frames()
		busy       time.Duration
		ticks      int
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-g.commands:
			resp := g.handle(cmd)
			g.responses <- resp
			if cmd.Command == emulator.CommandClose {
				return nil
			}
		case b := <-pressed:
			g.Press(b)
		case b := <-released:
			g.Release(b)
		case <-ticker.C:
			if g.Status() != emulator.Running {
				continue
			}
			start := time.Now()
			budget += CyclesPerFrame * g.Speed()
			whole := int64(budget)
			budget -= float64(whole)
			g.advance(whole)
			busy += time.Since(start)
			ticks++

			select {
			case frames <- g.Frame():
			default:
			}
		case <-second.C:
			drawn := g.PPU.Frames() - lastFrames
			lastFrames = g.PPU.Frames()
			send(events, event.Event{Type: event.Title, Data: fmt.Sprintf("%s (%d FPS)", g.Cartridge.Title(), drawn)})
			if ticks > 0 {
				send(events, event.Event{Type: event.FrameTime, Data: busy / time.Duration(ticks)})
			}
			busy, ticks = 0, 0
		}
	}
}

// send delivers e unless nobody is listening.
func send(events chan<- event.Event, e event.Event) {
	if events == nil {
		return
	}
	select {
	case events <- e:
	default:
	}
}

// SendCommand implements emulator.Controller. It blocks until the
// loop started by Start has handled the command.
func (g *GameBoy) SendCommand(cmd emulator.CommandPacket) emulator.ResponsePacket {
	select {
	case g.commands <- cmd:
		return <-g.responses
	case <-g.done:
		return emulator.ResponsePacket{Command: cmd.Command, Error: ErrNotRunning}
	}
}

func (g *GameBoy) handle(cmd emulator.CommandPacket) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: cmd.Command}
	switch cmd.Command {
	case emulator.CommandPause:
		g.setStatus(emulator.Paused)
	case emulator.CommandResume:
		g.setStatus(emulator.Running)
	case emulator.CommandClose:
		g.Infof("closing")
	case emulator.CommandReset:
		g.Reset()
		g.Infof("reset")
	case emulator.CommandSetSpeed:
		speed, err := cmd.Speed()
		if err != nil {
			resp.Error = err
			break
		}
		g.SetSpeed(speed)
		g.Infof("speed set to %vx", speed)
	case emulator.CommandSwitchDebugMode:
		resp.Data = []byte(g.SwitchDebugMode().String())
	case emulator.CommandCyclePalette:
		resp.Data = []byte(g.CyclePalette().String())
	case emulator.CommandClickScreen, emulator.CommandClickDebug:
		x, y, err := cmd.Point()
		if err != nil {
			resp.Error = err
			break
		}
		if cmd.Command == emulator.CommandClickScreen {
			g.ClickOnScreen(x, y)
		} else {
			g.ClickOnDebug(x, y)
		}
	case emulator.CommandConfirmTile:
		g.ConfirmTile()
	default:
		resp.Error = fmt.Errorf("gameboy: unsupported command %s", cmd.Command)
	}
	return resp
}
