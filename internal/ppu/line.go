package ppu

import (
	"fmt"

	"github.com/thelolagemann/gameboj/pkg/bits"
)

// identityPalette maps every colour to itself.
const identityPalette = 0b11_10_01_00

// Line is a single line of pixels. Each pixel has a 2-bit colour,
// split over the msb and lsb planes, and an opacity bit. Lines are
// immutable, every operation returns a new Line.
type Line struct {
	msb, lsb, opacity bits.Vector
}

// NewLine returns a line made of the given planes, which must all have
// the same size.
func NewLine(msb, lsb, opacity bits.Vector) Line {
	if msb.Size() != lsb.Size() || msb.Size() != opacity.Size() {
		panic(fmt.Sprintf("ppu: line planes of different sizes %d/%d/%d", msb.Size(), lsb.Size(), opacity.Size()))
	}
	return Line{msb: msb, lsb: lsb, opacity: opacity}
}

// emptyLine returns a transparent line of colour 0.
func emptyLine(size int) Line {
	zero := bits.NewVector(size, false)
	return Line{msb: zero, lsb: zero, opacity: zero}
}

// Size returns the number of pixels of the line.
func (l Line) Size() int { return l.msb.Size() }

// MSB returns the plane of the high bits of the colours.
func (l Line) MSB() bits.Vector { return l.msb }

// LSB returns the plane of the low bits of the colours.
func (l Line) LSB() bits.Vector { return l.lsb }

// Opacity returns the plane telling which pixels are opaque.
func (l Line) Opacity() bits.Vector { return l.opacity }

// Equal reports whether both lines have the same pixels and opacity.
func (l Line) Equal(that Line) bool {
	return l.msb.Equal(that.msb) && l.lsb.Equal(that.lsb) && l.opacity.Equal(that.opacity)
}

func (l Line) colour(x int) (c uint8) {
	if l.msb.TestBit(x) {
		c |= 0b10
	}
	if l.lsb.TestBit(x) {
		c |= 0b01
	}
	return c
}

// Shift shifts the line by pixels, to the right of the screen when
// pixels is positive.
func (l Line) Shift(pixels int) Line {
	return Line{msb: l.msb.Shift(pixels), lsb: l.lsb.Shift(pixels), opacity: l.opacity.Shift(pixels)}
}

// ExtractWrapped returns length pixels starting at pixel of the
// infinite repetition of the line.
func (l Line) ExtractWrapped(pixel, length int) Line {
	return Line{
		msb:     l.msb.ExtractWrapped(pixel, length),
		lsb:     l.lsb.ExtractWrapped(pixel, length),
		opacity: l.opacity.ExtractWrapped(pixel, length),
	}
}

// MapColors remaps the colours of the line through palette, a byte
// holding the new colour of colour i in bits 2i and 2i+1. The identity
// palette returns the line unchanged. Opacity is kept, so a colour 0
// pixel stays transparent whatever it is mapped to.
func (l Line) MapColors(palette uint8) Line {
	if palette == identityPalette {
		return l
	}

	msb, lsb := l.msb, l.lsb
	for colour := uint8(0); colour < 4; colour++ {
		mapped := palette >> (colour * 2) & 0b11
		diff := colour ^ mapped
		if diff == 0 {
			continue
		}
		mask := l.pixelsOf(colour)
		if diff&0b10 != 0 {
			msb = msb.Xor(mask)
		}
		if diff&0b01 != 0 {
			lsb = lsb.Xor(mask)
		}
	}
	return Line{msb: msb, lsb: lsb, opacity: l.opacity}
}

// pixelsOf returns the pixels of the line having colour c.
func (l Line) pixelsOf(c uint8) bits.Vector {
	switch c {
	case 0b00:
		return l.msb.Or(l.lsb).Not()
	case 0b01:
		return l.lsb.And(l.msb.Not())
	case 0b10:
		return l.msb.And(l.lsb.Not())
	default:
		return l.msb.And(l.lsb)
	}
}

// Below places l below that. Pixels of that whose bit is set in
// opacity win, the others fall through to l. The resulting opacity is
// the union of the opacity of l and of the given one.
func (l Line) Below(that Line, opacity bits.Vector) Line {
	if l.Size() != that.Size() || opacity.Size() != l.Size() {
		panic(fmt.Sprintf("ppu: cannot merge lines of sizes %d, %d and opacity %d", l.Size(), that.Size(), opacity.Size()))
	}
	pick := func(below, above bits.Vector) bits.Vector {
		return below.And(opacity.Not()).Or(above.And(opacity))
	}
	return Line{
		msb:     pick(l.msb, that.msb),
		lsb:     pick(l.lsb, that.lsb),
		opacity: l.opacity.Or(opacity),
	}
}

// Under places l below that, using the opacity of that.
func (l Line) Under(that Line) Line {
	return l.Below(that, that.opacity)
}

// Join returns the first pixel pixels of l followed by the remaining
// pixels of that.
func (l Line) Join(that Line, pixel int) Line {
	if l.Size() != that.Size() || pixel < 0 || pixel > l.Size() {
		panic(fmt.Sprintf("ppu: cannot join lines of sizes %d and %d at %d", l.Size(), that.Size(), pixel))
	}
	left := bits.NewVector(l.Size(), true).Shift(pixel - l.Size())
	right := left.Not()
	join := func(a, b bits.Vector) bits.Vector {
		return a.And(left).Or(b.And(right))
	}
	return Line{
		msb:     join(l.msb, that.msb),
		lsb:     join(l.lsb, that.lsb),
		opacity: join(l.opacity, that.opacity),
	}
}

func (l Line) String() string {
	return l.msb.String() + "\n" + l.lsb.String() + "\n" + l.opacity.String()
}

// LineBuilder builds a Line byte by byte. A builder builds once, any
// later use panics.
type LineBuilder struct {
	msb, lsb *bits.VectorBuilder
}

// NewLineBuilder returns a builder for a line of size pixels.
func NewLineBuilder(size int) *LineBuilder {
	return &LineBuilder{msb: bits.NewVectorBuilder(size), lsb: bits.NewVectorBuilder(size)}
}

// SetBytes sets the 8 pixels starting at index*8. Bit 0 of each byte
// is the leftmost pixel.
func (b *LineBuilder) SetBytes(index int, msb, lsb uint8) *LineBuilder {
	b.msb.SetByte(index, msb)
	b.lsb.SetByte(index, lsb)
	return b
}

// Build returns the line, in which every pixel of colour 0 is
// transparent and every other pixel is opaque.
func (b *LineBuilder) Build() Line {
	msb, lsb := b.msb.Build(), b.lsb.Build()
	return Line{msb: msb, lsb: lsb, opacity: msb.Or(lsb)}
}
