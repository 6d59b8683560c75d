package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"golang.design/x/clipboard"
)

// WritePNG encodes img as a PNG file at filename.
func WritePNG(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

// CopyImage copies img to the clipboard, as a PNG.
func CopyImage(img image.Image) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("utils: clipboard unavailable: %w", err)
	}

	// encode image to byte slice
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, b.Bytes())
	return nil
}

// pngName appends the .png extension to filename when it is missing.
func pngName(filename string) string {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		return filename + ".png"
	}
	return filename
}
