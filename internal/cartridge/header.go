package cartridge

import (
	"fmt"
	"strings"
)

// headerSize is the size of the header, located at 0x0100-0x014F.
const headerSize = 0x50

// ramSizes maps header byte 0x0149 to the size of the external RAM.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	MBC3        Type = 0x11
	MBC5        Type = 0x19
	MBC5RAM     Type = 0x1A
	MBC5RAMBATT Type = 0x1B
)

var typeNames = map[Type]string{
	ROM:         "ROM ONLY",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	MBC3:        "MBC3",
	MBC5:        "MBC5",
	MBC5RAM:     "MBC5+RAM",
	MBC5RAMBATT: "MBC5+RAM+BATTERY",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("unknown (%#02x)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, padded with zeroes
	Title string

	// 0x0143 - CGB flag. Colour cartridges still boot on a DMG, unless
	// they require a CGB.
	CGBOnly bool

	SGBFlag         bool
	CartridgeType   Type
	ROMSize         int
	RAMSize         int
	Destination     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	raw [headerSize]byte
}

// parseHeader parses the header of the given ROM. The ROM must be at
// least 0x150 bytes long.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x100+headerSize {
		return Header{}, fmt.Errorf("%w: %d bytes is too short to hold a header", ErrROMSize, len(rom))
	}
	h := Header{}
	copy(h.raw[:], rom[0x100:0x100+headerSize])
	header := h.raw[:]

	h.CGBOnly = header[0x43] == 0xC0

	// parse the title, which is shortened to make room for the
	// CGB flag on newer cartridges
	title := header[0x34:0x44]
	if header[0x43]&0x80 != 0 {
		title = header[0x34:0x43]
	}
	h.Title = strings.TrimRight(string(title), "\x00 ")

	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	if header[0x48] > 8 {
		return Header{}, fmt.Errorf("%w: invalid size code %#02x", ErrROMSize, header[0x48])
	}
	h.ROMSize = (32 * 1024) << header[0x48]

	size, ok := ramSizes[header[0x49]]
	if !ok {
		return Header{}, fmt.Errorf("cartridge: invalid RAM size code %#02x", header[0x49])
	}
	h.RAMSize = size

	h.Destination = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h, nil
}

// ChecksumValid reports whether the header checksum, computed over
// 0x0134-0x014C, matches the one stored at 0x014D. The boot ROM locks
// up on a mismatch, the emulator only reports it.
func (h *Header) ChecksumValid() bool {
	var sum uint8
	for _, b := range h.raw[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum == h.HeaderChecksum
}

func (h *Header) Hardware() string {
	if h.CGBOnly {
		return "CGB"
	}
	return "DMG"
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Type: %s | Mode: %s | ROM Size: %dkB | RAM Size: %dkB",
		h.Title, h.CartridgeType, h.Hardware(), h.ROMSize/1024, h.RAMSize/1024)
}
