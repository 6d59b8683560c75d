package main

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/ppu/palette"
	"github.com/thelolagemann/gameboj/pkg/utils"
)

type Screenshot struct {
	ROM    string `arg:"" help:"ROM to run." type:"existingfile"`
	Frames int    `help:"Number of frames to run before the screenshot." default:"300"`
	Scale  int    `help:"Enlarge the screenshot by this factor." default:"1"`
	Debug  bool   `help:"Save the debug view instead of the screen."`
	Output string `short:"O" help:"PNG file to write." type:"path" default:"screenshot.png"`
}

func (s *Screenshot) Run(e *env) error {
	if s.Frames < 0 || s.Scale < 1 {
		return fmt.Errorf("invalid frames %d or scale %d", s.Frames, s.Scale)
	}
	gb, err := e.newGameBoy(s.ROM, "")
	if err != nil {
		return err
	}
	for i := 0; i < s.Frames; i++ {
		gb.RunFrame()
	}

	f := gb.Frame()
	img := f.Screen
	if s.Debug {
		if f.Debug == nil {
			return fmt.Errorf("no debug view after %d frames", s.Frames)
		}
		img = f.Debug
	}
	if s.Scale > 1 {
		img = palette.Enlarge(img, s.Scale)
	}
	if err := utils.WritePNG(s.Output, img); err != nil {
		return err
	}
	e.log.Infof("wrote frame %d to %s", f.Number, s.Output)
	return nil
}
