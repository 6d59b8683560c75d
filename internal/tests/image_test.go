package tests

import (
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/thelolagemann/gameboj/internal/gameboy"
	"github.com/thelolagemann/gameboj/internal/ppu/palette"
)

// genericImageTest runs a ROM for a while, then compares the screen
// with a reference screenshot.
type genericImageTest struct {
	romPath         string
	name            string
	expectedImage   string
	emulatedSeconds int
	passed          bool
}

func (g *genericImageTest) Name() string {
	return g.name
}

func (g *genericImageTest) Run(t *testing.T) {
	g.passed = testROMWithExpectedImage(t, g.romPath, g.expectedImage, g.emulatedSeconds)
}

func (g *genericImageTest) Passed() bool {
	return g.passed
}

func testROMWithExpectedImage(t *testing.T, romPath, expectedImage string, seconds int) (passed bool) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("emulation stopped: %v", r)
			passed = false
		}
	}()
	if seconds == 0 {
		seconds = 2
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		t.Skipf("missing ROM: %v", err)
	}
	expected, err := loadPNG(expectedImage)
	if err != nil {
		t.Skipf("missing reference image: %v", err)
	}

	g, err := gameboy.NewGameBoy(rom, gameboy.WithPalette(palette.Greyscale))
	if err != nil {
		t.Fatal(err)
	}
	g.RunUntil(int64(seconds) * int64(gameboy.CyclesPerFrame) * 60)

	got := g.Frame().Screen
	if !got.Bounds().Eq(expected.Bounds()) {
		t.Errorf("expected a %v image, got %v", expected.Bounds(), got.Bounds())
		return false
	}
	for y := 0; y < got.Bounds().Dy(); y++ {
		for x := 0; x < got.Bounds().Dx(); x++ {
			er, eg, eb, _ := expected.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(x, y).RGBA()
			if er != gr || eg != gg || eb != gb {
				t.Errorf("pixel %d,%d differs from %s", x, y, expectedImage)
				return false
			}
		}
	}
	return true
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
