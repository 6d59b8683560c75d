package cheats

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseGameGenie(t *testing.T) {
	g, err := ParseGameGenie("00A-17B-C49")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NewData != 0x00 || g.Address != 0x4A17 || g.OldData != 0xC8 {
		t.Errorf("expected 00 at 4A17 over C8, got %02X at %04X over %02X", g.NewData, g.Address, g.OldData)
	}
	if s := g.String(); s != "00A-17B-C49" {
		t.Errorf("expected the code to be written back unchanged, got %s", s)
	}

	for _, code := range []string{"00A17BC49", "00A-17B-C4", "0GA-17B-C49"} {
		if _, err := ParseGameGenie(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("%s: expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func TestParseGameShark(t *testing.T) {
	s, err := ParseGameShark("010999C1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(GameShark{Bank: 0x01, NewData: 0x09, Address: 0xC199}, s); diff != "" {
		t.Errorf("unexpected code (-want +got):\n%s", diff)
	}
	if s.String() != "010999C1" {
		t.Errorf("expected 010999C1, got %s", s)
	}

	if _, err := ParseGameShark("01090040"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected a ROM address to be rejected, got %v", err)
	}
}

const cheatFile = `# Infinite lives
00A-17B-C49

# Max money
-
010999C1
`

func TestParse(t *testing.T) {
	cheats, err := Parse(strings.NewReader(cheatFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Cheat{
		{Name: "Infinite lives", Enabled: true, Genie: []GameGenie{{NewData: 0x00, Address: 0x4A17, OldData: 0xC8, h: 4}}},
		{Name: "Max money", Shark: []GameShark{{Bank: 0x01, NewData: 0x09, Address: 0xC199}}},
	}
	if diff := cmp.Diff(want, cheats, cmp.AllowUnexported(GameGenie{}), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected cheats (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := Write(&buf, cheats); err != nil {
		t.Fatal(err)
	}
	if buf.String() != strings.ReplaceAll(cheatFile, "\n\n", "\n") {
		t.Errorf("expected the file to be written back, got:\n%s", buf.String())
	}

	if _, err := Parse(strings.NewReader("00A-17B-C49\n")); err == nil {
		t.Errorf("expected a code without a name to fail")
	}
	if _, err := Parse(strings.NewReader("# bad\nXYZ\n")); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}

// rom answers every ROM address with its low byte.
type rom struct{}

func (rom) Read(address uint16) (uint8, bool) { return uint8(address), address < 0x8000 }
func (rom) Write(uint16, uint8)               {}

type memory map[uint16]uint8

func (m memory) Write(address uint16, value uint8) { m[address] = value }

func TestEngine(t *testing.T) {
	cheats := []Cheat{
		{Name: "patch", Enabled: true, Genie: []GameGenie{
			{NewData: 0xAA, Address: 0x4017, OldData: 0x17},
			{NewData: 0xBB, Address: 0x4018, OldData: 0x00}, // old data doesn't match
		}},
		{Name: "money", Shark: []GameShark{{NewData: 0x99, Address: 0xC000}}},
	}
	e := NewEngine(rom{}, cheats)

	if v, ok := e.Read(0x4017); !ok || v != 0xAA {
		t.Errorf("expected 0x4017 to be patched to AA, got %02X, %t", v, ok)
	}
	if _, ok := e.Read(0x4018); ok {
		t.Errorf("expected a mismatching old value to leave the ROM alone")
	}
	if _, ok := e.Read(0xC000); ok {
		t.Errorf("expected RAM reads to fall through")
	}

	m := memory{}
	e.Apply(m)
	if len(m) != 0 {
		t.Errorf("expected disabled cheats not to write, got %v", m)
	}
	if !e.SetEnabled("money", true) || e.SetEnabled("missing", true) {
		t.Errorf("expected SetEnabled to report the cheats it found")
	}
	e.Apply(m)
	if m[0xC000] != 0x99 {
		t.Errorf("expected GameShark code to write 99 at C000, got %v", m)
	}

	e.SetEnabled("patch", false)
	if _, ok := e.Read(0x4017); ok {
		t.Errorf("expected disabled Game Genie code to fall through")
	}
}
