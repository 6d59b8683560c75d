package display

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/joypad"
)

// Keys maps key names to joypad buttons. Key names follow the fyne
// naming ("A", "Up", "Return", "BackSpace"), drivers translate them
// to their own key codes.
type Keys map[string]joypad.Button

// DefaultKeys returns the default key bindings.
func DefaultKeys() Keys {
	return Keys{
		"Right":     joypad.ButtonRight,
		"Left":      joypad.ButtonLeft,
		"Up":        joypad.ButtonUp,
		"Down":      joypad.ButtonDown,
		"A":         joypad.ButtonA,
		"B":         joypad.ButtonB,
		"BackSpace": joypad.ButtonSelect,
		"Return":    joypad.ButtonStart,
	}
}

// ParseKeys builds the key bindings from a map of button names to key
// names, as found in the configuration file. Buttons that aren't
// bound keep their default key.
func ParseKeys(bindings map[string]string) (Keys, error) {
	keys := DefaultKeys()
	for name, key := range bindings {
		button, err := joypad.ParseButton(name)
		if err != nil {
			return nil, err
		}
		for k, b := range keys {
			if b == button {
				delete(keys, k)
			}
		}
		if other, ok := keys[key]; ok {
			return nil, fmt.Errorf("display: key %s bound to both %s and %s", key, other, button)
		}
		keys[key] = button
	}
	return keys, nil
}
