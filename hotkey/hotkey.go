// Package hotkey binds a global accelerator to the record toggle. The
// registration guarantees at-most-one press event per physical press; the
// consumer may still be busy with a previous cycle when the next press
// arrives.
package hotkey

import (
	"fmt"
	"strings"
)

type Hotkey interface {
	Register() error
	Unregister()
	// Presses delivers one value per physical press of the accelerator.
	Presses() <-chan struct{}
}

// Combo is a parsed accelerator: at least one modifier plus a key.
type Combo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string // "space" or a single letter a-z
}

func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, c.Key), "+")
}

// ParseCombo parses accelerator strings like "ctrl+alt+space" or
// "ctrl+shift+d". Modifiers may appear in any order; the final token must
// be the key. Unmodified keys are rejected — a bare global key would
// swallow normal typing.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(tokens) < 2 {
		return c, fmt.Errorf("accelerator %q needs at least one modifier and a key", s)
	}

	for _, mod := range tokens[:len(tokens)-1] {
		switch strings.TrimSpace(mod) {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "option":
			c.Alt = true
		case "shift":
			c.Shift = true
		default:
			return Combo{}, fmt.Errorf("unknown modifier %q in accelerator %q", mod, s)
		}
	}

	key := strings.TrimSpace(tokens[len(tokens)-1])
	switch {
	case key == "space":
	case len(key) == 1 && key[0] >= 'a' && key[0] <= 'z':
	default:
		return Combo{}, fmt.Errorf("unsupported key %q (use space or a letter)", key)
	}
	c.Key = key
	return c, nil
}
