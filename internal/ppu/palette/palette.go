// Package palette turns the 2-bit colours produced by the LCD into
// RGBA images.
package palette

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// Scheme identifies one of the available palettes.
type Scheme uint8

const (
	// Greyscale is the default black and white palette.
	Greyscale Scheme = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Blue is a blue and purple palette.
	Blue
	// Weird is a magenta and green palette.
	Weird
)

var schemeNames = [...]string{"greyscale", "green", "blue", "weird"}

func (s Scheme) String() string {
	if int(s) < len(schemeNames) {
		return schemeNames[s]
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

// Next returns the scheme following s, wrapping around after the last
// one.
func (s Scheme) Next() Scheme {
	return (s + 1) % Scheme(len(Palettes))
}

// ParseScheme returns the scheme named name, ignoring case.
func ParseScheme(name string) (Scheme, error) {
	for i, n := range schemeNames {
		if strings.EqualFold(n, name) {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("palette: unknown scheme %q", name)
}

// Palette represents a palette. A palette is an array of 4 RGB values,
// colour 0 being the lightest.
type Palette struct {
	Colors [4][3]uint8
}

// Palettes holds the palette of every Scheme.
var Palettes = [...]Palette{
	Greyscale: {
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xD3, 0xD3, 0xD3},
			{0xA9, 0xA9, 0xA9},
			{0x00, 0x00, 0x00},
		},
	},
	Green: {
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	Blue: {
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0x23, 0xE3, 0xC3},
			{0xB9, 0x2E, 0xA1},
			{0x00, 0x00, 0x99},
		},
	},
	Weird: {
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0xFF},
			{0x00, 0xFF, 0x00},
			{0x00, 0xA9, 0xD3},
			{0x00, 0x43, 0x00},
		},
	},
}

// Get returns the palette of scheme s.
func Get(s Scheme) Palette {
	return Palettes[s]
}

// GetColour returns the colour based on the colour index.
func (p Palette) GetColour(index uint8) color.RGBA {
	c := p.Colors[index&0b11]
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}

// Indexed is an image of 2-bit colours.
type Indexed interface {
	Width() int
	Height() int
	Get(x, y int) uint8
}

// Render converts img to RGBA through p.
func (p Palette) Render(img Indexed) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width(), img.Height()))
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := p.Colors[img.Get(x, y)&0b11]
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c[0]
			out.Pix[i+1] = c[1]
			out.Pix[i+2] = c[2]
			out.Pix[i+3] = 0xFF
		}
	}
	return out
}

// Enlarge scales src by factor, keeping pixels sharp.
func Enlarge(src image.Image, factor int) *image.RGBA {
	if factor < 1 {
		panic(fmt.Sprintf("palette: invalid scale factor %d", factor))
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
