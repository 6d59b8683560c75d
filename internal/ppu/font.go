package ppu

import "strings"

// glyphs describes the 5x7 characters of the debug font, one row per
// '|' separated group, X marking a lit pixel.
var glyphs = map[rune]string{
	'A': ".XXX.|X...X|X...X|XXXXX|X...X|X...X|X...X",
	'B': "XXXX.|X...X|X...X|XXXX.|X...X|X...X|XXXX.",
	'C': ".XXX.|X...X|X....|X....|X....|X...X|.XXX.",
	'D': "XXXX.|X...X|X...X|X...X|X...X|X...X|XXXX.",
	'E': "XXXXX|X....|X....|XXXX.|X....|X....|XXXXX",
	'F': "XXXXX|X....|X....|XXXX.|X....|X....|X....",
	'G': ".XXX.|X...X|X....|X.XXX|X...X|X...X|.XXXX",
	'H': "X...X|X...X|X...X|XXXXX|X...X|X...X|X...X",
	'I': ".XXX.|..X..|..X..|..X..|..X..|..X..|.XXX.",
	'J': "..XXX|...X.|...X.|...X.|...X.|X..X.|.XX..",
	'K': "X...X|X..X.|X.X..|XX...|X.X..|X..X.|X...X",
	'L': "X....|X....|X....|X....|X....|X....|XXXXX",
	'M': "X...X|XX.XX|X.X.X|X.X.X|X...X|X...X|X...X",
	'N': "X...X|X...X|XX..X|X.X.X|X..XX|X...X|X...X",
	'O': ".XXX.|X...X|X...X|X...X|X...X|X...X|.XXX.",
	'P': "XXXX.|X...X|X...X|XXXX.|X....|X....|X....",
	'Q': ".XXX.|X...X|X...X|X...X|X.X.X|X..X.|.XX.X",
	'R': "XXXX.|X...X|X...X|XXXX.|X.X..|X..X.|X...X",
	'S': ".XXXX|X....|X....|.XXX.|....X|....X|XXXX.",
	'T': "XXXXX|..X..|..X..|..X..|..X..|..X..|..X..",
	'U': "X...X|X...X|X...X|X...X|X...X|X...X|.XXX.",
	'V': "X...X|X...X|X...X|X...X|X...X|.X.X.|..X..",
	'W': "X...X|X...X|X...X|X.X.X|X.X.X|X.X.X|.X.X.",
	'X': "X...X|X...X|.X.X.|..X..|.X.X.|X...X|X...X",
	'Y': "X...X|X...X|.X.X.|..X..|..X..|..X..|..X..",
	'Z': "XXXXX|....X|...X.|..X..|.X...|X....|XXXXX",
	'0': ".XXX.|X...X|X..XX|X.X.X|XX..X|X...X|.XXX.",
	'1': "..X..|.XX..|..X..|..X..|..X..|..X..|.XXX.",
	'2': ".XXX.|X...X|....X|...X.|..X..|.X...|XXXXX",
	'3': "XXXXX|...X.|..X..|...X.|....X|X...X|.XXX.",
	'4': "...X.|..XX.|.X.X.|X..X.|XXXXX|...X.|...X.",
	'5': "XXXXX|X....|XXXX.|....X|....X|X...X|.XXX.",
	'6': "..XX.|.X...|X....|XXXX.|X...X|X...X|.XXX.",
	'7': "XXXXX|....X|...X.|..X..|.X...|.X...|.X...",
	'8': ".XXX.|X...X|X...X|.XXX.|X...X|X...X|.XXX.",
	'9': ".XXX.|X...X|X...X|.XXXX|....X|...X.|.XX..",
	' ': ".....|.....|.....|.....|.....|.....|.....",
	':': ".....|..X..|..X..|.....|..X..|..X..|.....",
	'.': ".....|.....|.....|.....|.....|.XX..|.XX..",
	'-': ".....|.....|.....|XXXXX|.....|.....|.....",
	'?': ".XXX.|X...X|....X|...X.|..X..|.....|..X..",
}

// font holds the 8x8 tile of every glyph, bit 7 of each row being the
// leftmost pixel. Unknown characters render as '?'.
var font = make(map[rune][8]uint8, len(glyphs))

func init() {
	for r, g := range glyphs {
		var tile [8]uint8
		for y, row := range strings.Split(g, "|") {
			for x, c := range row {
				if c == 'X' {
					tile[y] |= 0x40 >> x
				}
			}
		}
		font[r] = tile
	}
}

// glyph returns the tile of r, lower case letters being drawn in upper
// case.
func glyph(r rune) [8]uint8 {
	if t, ok := font[r]; ok {
		return t
	}
	if t, ok := font[r-'a'+'A']; ok && r >= 'a' && r <= 'z' {
		return t
	}
	return font['?']
}
