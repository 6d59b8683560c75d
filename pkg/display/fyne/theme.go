package fyne

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var _ fyne.Theme = gameboyTheme{}

var colours = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      color.NRGBA{0x0f, 0x38, 0x0f, 0xff},
	theme.ColorNamePrimary:         color.NRGBA{0x8b, 0xac, 0x0f, 0xff},
	theme.ColorNameForeground:      color.NRGBA{0x9b, 0xbc, 0x0f, 0xff},
	theme.ColorNameButton:          color.NRGBA{0x30, 0x62, 0x30, 0xff},
	theme.ColorNameInputBackground: color.NRGBA{0x30, 0x62, 0x30, 0xff},
	theme.ColorNameHover:           color.NRGBA{0x4a, 0x7a, 0x2a, 0xff},
}

// gameboyTheme dresses the windows in the colours of the original
// screen, for the parts of the UI that aren't the emulator itself.
type gameboyTheme struct{}

func (gameboyTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := colours[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (gameboyTheme) Font(style fyne.TextStyle) fyne.Resource    { return theme.DefaultTheme().Font(style) }
func (gameboyTheme) Icon(name fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(name) }
func (gameboyTheme) Size(name fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(name) }
