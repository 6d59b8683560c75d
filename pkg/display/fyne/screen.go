package fyne

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// screen is a raster showing the last image it was given, scaled
// without filtering. Taps are translated to image coordinates.
type screen struct {
	widget.BaseWidget

	mu     sync.Mutex
	img    *image.RGBA
	raster *canvas.Raster

	onTap func(x, y int)
}

func newScreen(width, height int, onTap func(x, y int)) *screen {
	s := &screen{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		onTap: onTap,
	}
	s.raster = canvas.NewRaster(func(int, int) image.Image {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.img
	})
	s.raster.ScaleMode = canvas.ImageScalePixels
	s.raster.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *screen) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

// set copies img, reallocating when its size changed, and redraws.
func (s *screen) set(img *image.RGBA) {
	s.mu.Lock()
	if s.img.Rect != img.Rect {
		s.img = image.NewRGBA(img.Rect)
	}
	copy(s.img.Pix, img.Pix)
	s.mu.Unlock()

	s.raster.Refresh()
}

// image returns a copy of the image being shown.
func (s *screen) image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := image.NewRGBA(s.img.Rect)
	copy(img.Pix, s.img.Pix)
	return img
}

// Tapped implements fyne.Tappable.
func (s *screen) Tapped(e *fyne.PointEvent) {
	if s.onTap == nil {
		return
	}
	size := s.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}

	s.mu.Lock()
	bounds := s.img.Rect
	s.mu.Unlock()

	x := int(e.Position.X / size.Width * float32(bounds.Dx()))
	y := int(e.Position.Y / size.Height * float32(bounds.Dy()))
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return
	}
	s.onTap(x, y)
}
