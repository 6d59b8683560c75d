package emulator

import (
	"errors"
	"testing"
)

func TestSpeedPacket(t *testing.T) {
	for _, speed := range []float64{0.5, 1, 2, 3} {
		got, err := SpeedPacket(speed).Speed()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != speed {
			t.Errorf("expected speed %v, got %v", speed, got)
		}
	}

	if _, err := SpeedPacket(-1).Speed(); !errors.Is(err, ErrMalformedPacket) {
		t.Errorf("expected ErrMalformedPacket for a negative speed, got %v", err)
	}
	if _, err := (CommandPacket{Command: CommandSetSpeed}).Speed(); !errors.Is(err, ErrMalformedPacket) {
		t.Errorf("expected ErrMalformedPacket for an empty packet, got %v", err)
	}
}

func TestPointPacket(t *testing.T) {
	p := PointPacket(CommandClickScreen, -3, 143)
	if p.Command != CommandClickScreen {
		t.Errorf("expected command %s, got %s", CommandClickScreen, p.Command)
	}
	x, y, err := p.Point()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != -3 || y != 143 {
		t.Errorf("expected -3,143, got %d,%d", x, y)
	}
}

func TestStatus(t *testing.T) {
	if !Running.IsRunning() || !Paused.IsPaused() || !Errored.IsErrored() {
		t.Errorf("expected status predicates to match")
	}
	if Status(9).String() != "Unknown" {
		t.Errorf("expected Unknown, got %s", Status(9))
	}
	if CommandConfirmTile.String() != "confirm tile" {
		t.Errorf("expected confirm tile, got %s", CommandConfirmTile)
	}
}

func TestStatus_String(t *testing.T) {
	for s, expected := range map[Status]string{Running: "Running", Paused: "Paused", Errored: "Errored", Status(7): "Unknown", Status(-1): "Unknown"} {
		if s.String() != expected {
			t.Errorf("expected %s, got %s", expected, s)
		}
	}
}
