// Package cheats implements Game Genie and GameShark codes. Game Genie
// codes patch the bytes the CPU reads from the ROM, GameShark codes
// overwrite RAM once per frame.
package cheats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidCode is returned for codes which are neither Game Genie nor
// GameShark codes.
var ErrInvalidCode = errors.New("cheats: invalid code")

// Cheat is a named group of codes, enabled or disabled together.
type Cheat struct {
	Name    string
	Enabled bool

	Genie []GameGenie
	Shark []GameShark
}

// AddCode parses code and adds it to the cheat. Game Genie codes have
// 9 hex digits and hyphens, GameShark codes 8 hex digits.
func (c *Cheat) AddCode(code string) error {
	switch len(code) {
	case 11:
		g, err := ParseGameGenie(code)
		if err != nil {
			return err
		}
		c.Genie = append(c.Genie, g)
	case 8:
		s, err := ParseGameShark(code)
		if err != nil {
			return err
		}
		c.Shark = append(c.Shark, s)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return nil
}

// Parse reads a cheat file. Each cheat starts with a "# Name" line,
// followed by one code per line. Lines starting with "-" disable the
// cheat they follow:
//
//	# Infinite lives
//	00A-17B-C49
//	# Max money
//	-
//	010999C1
func Parse(r io.Reader) ([]Cheat, error) {
	var cheats []Cheat
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			cheats = append(cheats, Cheat{Name: strings.TrimSpace(line[1:]), Enabled: true})
			continue
		case len(cheats) == 0:
			return nil, fmt.Errorf("cheats: line %d: code before the first cheat name", n)
		}

		current := &cheats[len(cheats)-1]
		if line == "-" {
			current.Enabled = false
			continue
		}
		if err := current.AddCode(strings.ToUpper(line)); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	return cheats, scanner.Err()
}

// Write writes cheats in the format read by Parse.
func Write(w io.Writer, cheats []Cheat) error {
	bw := bufio.NewWriter(w)
	for _, c := range cheats {
		fmt.Fprintf(bw, "# %s\n", c.Name)
		if !c.Enabled {
			fmt.Fprintln(bw, "-")
		}
		for _, g := range c.Genie {
			fmt.Fprintln(bw, g)
		}
		for _, s := range c.Shark {
			fmt.Fprintln(bw, s)
		}
	}
	return bw.Flush()
}
