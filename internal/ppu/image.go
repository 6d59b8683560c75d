package ppu

import (
	"fmt"

	"github.com/thelolagemann/gameboj/pkg/bits"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

// Image is an immutable image made of lines of 2-bit colours.
type Image struct {
	width, height int
	lines         []Line
}

// Width returns the width of the image in pixels.
func (i *Image) Width() int { return i.width }

// Height returns the number of lines of the image.
func (i *Image) Height() int { return i.height }

// Line returns line y of the image.
func (i *Image) Line(y int) Line {
	return i.lines[y]
}

// Get returns the colour, 0 to 3, of the pixel at x, y.
func (i *Image) Get(x, y int) uint8 {
	if x < 0 || x >= i.width || y < 0 || y >= i.height {
		panic(fmt.Sprintf("ppu: pixel %d,%d outside of %dx%d image", x, y, i.width, i.height))
	}
	return i.lines[y].colour(x)
}

// Below places i below that, line by line.
func (i *Image) Below(that *Image) *Image {
	if i.width != that.width || i.height != that.height {
		panic(fmt.Sprintf("ppu: cannot merge %dx%d and %dx%d images", i.width, i.height, that.width, that.height))
	}
	b := NewImageBuilder(i.width, i.height)
	for y, l := range i.lines {
		b.SetLine(y, l.Under(that.lines[y]))
	}
	return b.Build()
}

// Equal reports whether both images are identical.
func (i *Image) Equal(that *Image) bool {
	if i.width != that.width || i.height != that.height {
		return false
	}
	for y := range i.lines {
		if !i.lines[y].Equal(that.lines[y]) {
			return false
		}
	}
	return true
}

// RectangleBorder returns a transparent width x height image holding
// the one pixel border of a w x h rectangle whose top left corner is
// at x, y. The image is a torus, parts of the rectangle falling off one
// edge come back on the opposite one.
func RectangleBorder(width, height, x, y, w, h int) *Image {
	if w <= 0 || w%bits.WordSize != 0 || w > width || h <= 0 || h > height {
		panic(fmt.Sprintf("ppu: invalid %dx%d rectangle in %dx%d image", w, h, width, height))
	}

	top := floorMod(y, height)
	bottom := floorMod(top+h, height)
	inside := func(l int) bool {
		if top < bottom {
			return l > top && l < bottom
		}
		return l > top || l < bottom
	}

	b := NewImageBuilder(width, height)
	for l := 0; l < height; l++ {
		var line Line
		switch {
		case l == top || l == bottom:
			edge := bits.NewVector(w, true).ExtractZeroExtended(0, width)
			line = NewLine(edge, edge, edge)
		case inside(l):
			line = NewLineBuilder(width).
				SetBytes(0, 0b0000_0001, 0b0000_0001).
				SetBytes(w/8-1, 0b1000_0000, 0b1000_0000).
				Build()
		default:
			line = emptyLine(width)
		}
		b.SetLine(l, line.ExtractWrapped(-x, width))
	}
	return b.Build()
}

// ImageBuilder accumulates the lines of an Image. Lines that are never
// set are transparent. A builder builds once, any later use panics.
type ImageBuilder struct {
	width, height int
	lines         []Line
}

// NewImageBuilder returns a builder for a width x height image.
func NewImageBuilder(width, height int) *ImageBuilder {
	if width <= 0 || width%bits.WordSize != 0 || height <= 0 {
		panic(fmt.Sprintf("ppu: invalid image size %dx%d", width, height))
	}
	lines := make([]Line, height)
	empty := emptyLine(width)
	for y := range lines {
		lines[y] = empty
	}
	return &ImageBuilder{width: width, height: height, lines: lines}
}

// SetLine sets line y of the image.
func (b *ImageBuilder) SetLine(y int, l Line) *ImageBuilder {
	b.checkBuilt()
	if y < 0 || y >= b.height {
		panic(fmt.Sprintf("ppu: line %d outside of image of height %d", y, b.height))
	}
	if l.Size() != b.width {
		panic(fmt.Sprintf("ppu: line of size %d in image of width %d", l.Size(), b.width))
	}
	b.lines[y] = l
	return b
}

// Build returns the image.
func (b *ImageBuilder) Build() *Image {
	b.checkBuilt()
	img := &Image{width: b.width, height: b.height, lines: b.lines}
	b.lines = nil
	return img
}

func (b *ImageBuilder) checkBuilt() {
	if b.lines == nil {
		panic("ppu: image builder already built")
	}
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
