package tests

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/thelolagemann/gameboj/internal/cpu"
	"github.com/thelolagemann/gameboj/internal/gameboy"
)

// maxMooneyeFrames bounds the run of a mooneye ROM, which usually
// reports within a few frames.
const maxMooneyeFrames = 60 * 10

type mooneyeTest struct {
	romPath string
	name    string
	passed  bool
}

func (m *mooneyeTest) Name() string {
	return m.name
}

func (m *mooneyeTest) Run(t *testing.T) {
	m.passed = testMooneyeROM(t, m.romPath)
}

func (m *mooneyeTest) Passed() bool {
	return m.passed
}

func newMooneyeTestCollectionFromDir(suite *TestSuite, dir string) {
	romDir := romFile("mooneye", "acceptance", dir)
	files, err := os.ReadDir(romDir)
	if err != nil {
		return
	}

	name := dir
	if name == "" {
		name = "misc"
	}
	tc := suite.NewTestCollection(name)
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".gb" {
			continue
		}
		tc.Add(&mooneyeTest{
			romPath: filepath.Join(romDir, file.Name()),
			name:    file.Name(),
		})
	}
}

func testMooneye(t *testing.T, table *TestTable) {
	tS := table.NewTestSuite("mooneye")
	for _, dir := range []string{"bits", "instr", "interrupts", "oam_dma", "ppu", "timer", ""} {
		newMooneyeTestCollectionFromDir(tS, dir)
	}
}

var fibonacci = []uint8{3, 5, 8, 13, 21, 34}

// testMooneyeROM runs a mooneye ROM. A passing ROM writes the
// fibonacci sequence 3/5/8/13/21/34 to the registers B, C, D, E, H
// and L, a failing one writes 0x42 to all of them.
func testMooneyeROM(t *testing.T, romPath string) (passed bool) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("emulation stopped: %v", r)
			passed = false
		}
	}()
	rom, err := os.ReadFile(romPath)
	if err != nil {
		t.Skipf("missing ROM: %v", err)
	}
	g, err := gameboy.NewGameBoy(rom)
	if err != nil {
		t.Skipf("unsupported ROM: %v", err)
	}

	registers := []cpu.Register{cpu.B, cpu.C, cpu.D, cpu.E, cpu.H, cpu.L}
	got := make([]uint8, len(registers))
	for frame := 0; frame < maxMooneyeFrames; frame++ {
		g.RunFrame()
		for i, r := range registers {
			got[i] = g.CPU.Register(r)
		}
		if got[0] == 0x42 || slices.Equal(got, fibonacci) {
			break
		}
	}

	if !slices.Equal(got, fibonacci) {
		t.Errorf("expected registers %v, got %v", fibonacci, got)
		return false
	}
	return true
}
