// Package types holds the definitions shared by every hardware
// component: the memory map, register files and state snapshots.
package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// DIV is the address of the DIV hardware register. Internally
	// it is a 16-bit register, but only the upper 8 bits may be read.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. TIMA is
	// incremented at a rate selected by TAC, and reloaded from TMA
	// when it overflows.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register.
	//
	//  Bit 2: Timer enable
	//  Bit 1-0: Clock select
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCD control register.
	//
	//  Bit 7: LCD enable
	//  Bit 6: Window tile map area (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window enable
	//  Bit 4: BG and Window tile data area (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG tile map area (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ size (0=8x8, 1=8x16)
	//  Bit 1: OBJ enable
	//  Bit 0: BG enable
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the LCD status register.
	STAT HardwareAddress = 0xFF41
	// SCY is the address of the background vertical scroll register.
	SCY HardwareAddress = 0xFF42
	// SCX is the address of the background horizontal scroll register.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the current scanline register, it is
	// read-only.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the scanline compare register.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the OAM DMA register. Writing XX to it
	// copies XX00-XX9F into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the background palette register.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the address of the first sprite palette register.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the address of the second sprite palette register.
	OBP1 HardwareAddress = 0xFF49
	// WY is the address of the window Y position register.
	WY HardwareAddress = 0xFF4A
	// WX is the address of the window X position register, offset
	// by 7 pixels.
	WX HardwareAddress = 0xFF4B
	// BDIS is the address of the boot ROM disable register. Any
	// write unmaps the boot ROM.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)

// Memory regions, expressed as [start, end).
const (
	BootROMStart uint16 = 0x0000
	BootROMEnd   uint16 = 0x0100

	CartridgeHeaderStart uint16 = 0x0100
	CartridgeHeaderEnd   uint16 = 0x0150

	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0xA000
	VRAMSize         = int(VRAMEnd - VRAMStart)

	ExternalRAMStart uint16 = 0xA000
	ExternalRAMEnd   uint16 = 0xC000

	WRAMStart uint16 = 0xC000
	WRAMEnd   uint16 = 0xE000
	WRAMSize         = int(WRAMEnd - WRAMStart)

	EchoStart uint16 = 0xE000
	EchoEnd   uint16 = 0xFE00

	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFEA0
	OAMSize         = int(OAMEnd - OAMStart)

	LCDRegsStart uint16 = 0xFF40
	LCDRegsEnd   uint16 = 0xFF4C

	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFF
	HRAMSize         = int(HRAMEnd - HRAMStart)

	// BGMap0 and BGMap1 are the two 32x32 tile maps.
	BGMap0 uint16 = 0x9800
	BGMap1 uint16 = 0x9C00

	// TileData0 is the signed addressing area, TileData1 the unsigned one.
	TileData0 uint16 = 0x8800
	TileData1 uint16 = 0x8000
)

// Interrupt handler addresses.
const (
	VBlankVector  uint16 = 0x0040
	LCDStatVector uint16 = 0x0048
	TimerVector   uint16 = 0x0050
	SerialVector  uint16 = 0x0058
	JoypadVector  uint16 = 0x0060

	// EntryPoint is where execution starts once the boot ROM has
	// finished.
	EntryPoint uint16 = 0x0100
)
