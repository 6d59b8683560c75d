package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/thelolagemann/gameboj/internal/cartridge"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

type Info struct {
	ROM string `arg:"" help:"ROM to inspect." type:"existingfile"`
}

func (i *Info) Run() error {
	rom, err := utils.LoadFile(i.ROM)
	if err != nil {
		return err
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		return err
	}

	h := cart.Header()
	checksum := "valid"
	if !h.ChecksumValid() {
		checksum = fmt.Sprintf("invalid (%#02x)", h.HeaderChecksum)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Title\t%s\n", h.Title)
	fmt.Fprintf(w, "Type\t%s\n", h.CartridgeType)
	fmt.Fprintf(w, "Hardware\t%s\n", h.Hardware())
	fmt.Fprintf(w, "ROM size\t%d KiB\n", h.ROMSize/1024)
	fmt.Fprintf(w, "RAM size\t%d KiB\n", h.RAMSize/1024)
	fmt.Fprintf(w, "SGB\t%t\n", h.SGBFlag)
	fmt.Fprintf(w, "Version\t%d\n", h.MaskROMVersion)
	fmt.Fprintf(w, "Header checksum\t%s\n", checksum)
	return w.Flush()
}
