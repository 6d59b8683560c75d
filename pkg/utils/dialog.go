//go:build !test

package utils

import (
	"image"

	"github.com/sqweek/dialog"
)

// ErrCancelled is returned when the user dismisses a dialog.
var ErrCancelled = dialog.ErrCancelled

// AskForFile asks the user to pick a ROM.
func AskForFile(title, startingDir string) (string, error) {
	return dialog.File().
		Filter("Game Boy ROMs", "gb", "zip", "7z", "gz").
		SetStartDir(startingDir).
		Title(title).
		Load()
}

// SaveImage asks the user where to save img, and writes it there as a
// PNG.
func SaveImage(img image.Image) error {
	filename, err := dialog.File().Filter("PNG Image", "png").Title("Save Image").Save()
	if err != nil {
		return err
	}
	return WritePNG(pngName(filename), img)
}
