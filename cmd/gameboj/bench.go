package main

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/thelolagemann/gameboj/internal/gameboy"
)

type Bench struct {
	ROM    string `arg:"" help:"ROM to run." type:"existingfile"`
	Frames int    `help:"Number of frames to run." default:"3600"`
	Output string `short:"O" help:"Frame time chart to write." type:"path" default:"bench.png"`
}

func (b *Bench) Run(e *env) error {
	if b.Frames <= 0 {
		return fmt.Errorf("invalid number of frames %d", b.Frames)
	}
	gb, err := e.newGameBoy(b.ROM, "")
	if err != nil {
		return err
	}

	times := make([]time.Duration, b.Frames)
	var total, worst time.Duration
	for i := range times {
		start := time.Now()
		gb.RunFrame()
		times[i] = time.Since(start)

		total += times[i]
		worst = max(worst, times[i])
	}

	mean := total / time.Duration(b.Frames)
	fmt.Printf("%d frames in %v: mean %v, worst %v, %.1fx real time\n",
		b.Frames, total, mean, worst, float64(gameboy.FrameDuration)/float64(mean))

	return plotFrameTimes(b.Output, gb.Cartridge.Title(), times)
}

// plotFrameTimes charts times in microseconds against the frame
// number, with the real time budget of a frame as reference.
func plotFrameTimes(filename, title string, times []time.Duration) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s frame times", title)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Time (µs)"
	p.Y.Min = 0

	points := make(plotter.XYs, len(times))
	for i, t := range times {
		points[i].X = float64(i)
		points[i].Y = float64(t.Microseconds())
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}

	budget, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: float64(gameboy.FrameDuration.Microseconds())},
		{X: float64(len(times) - 1), Y: float64(gameboy.FrameDuration.Microseconds())},
	})
	if err != nil {
		return err
	}
	budget.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), line, budget)
	p.Legend.Add("frame", line)
	p.Legend.Add("real time", budget)

	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}
