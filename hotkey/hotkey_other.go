//go:build !linux

package hotkey

import (
	"fmt"

	xhotkey "golang.design/x/hotkey"
)

var xKeys = map[string]xhotkey.Key{
	"space": xhotkey.KeySpace,
	"a":     xhotkey.KeyA, "b": xhotkey.KeyB, "c": xhotkey.KeyC,
	"d": xhotkey.KeyD, "e": xhotkey.KeyE, "f": xhotkey.KeyF,
	"g": xhotkey.KeyG, "h": xhotkey.KeyH, "i": xhotkey.KeyI,
	"j": xhotkey.KeyJ, "k": xhotkey.KeyK, "l": xhotkey.KeyL,
	"m": xhotkey.KeyM, "n": xhotkey.KeyN, "o": xhotkey.KeyO,
	"p": xhotkey.KeyP, "q": xhotkey.KeyQ, "r": xhotkey.KeyR,
	"s": xhotkey.KeyS, "t": xhotkey.KeyT, "u": xhotkey.KeyU,
	"v": xhotkey.KeyV, "w": xhotkey.KeyW, "x": xhotkey.KeyX,
	"y": xhotkey.KeyY, "z": xhotkey.KeyZ,
}

type xHotkey struct {
	hk      *xhotkey.Hotkey
	presses chan struct{}
}

func New(combo Combo) (Hotkey, error) {
	key, ok := xKeys[combo.Key]
	if !ok {
		return nil, fmt.Errorf("key %q not supported on this platform", combo.Key)
	}
	var mods []xhotkey.Modifier
	if combo.Ctrl {
		mods = append(mods, xhotkey.ModCtrl)
	}
	if combo.Alt {
		mods = append(mods, altModifier)
	}
	if combo.Shift {
		mods = append(mods, xhotkey.ModShift)
	}
	return &xHotkey{
		hk:      xhotkey.New(mods, key),
		presses: make(chan struct{}, 1),
	}, nil
}

func (h *xHotkey) Register() error {
	if err := h.hk.Register(); err != nil {
		return err
	}
	go func() {
		for range h.hk.Keydown() {
			select {
			case h.presses <- struct{}{}:
			default:
			}
		}
	}()
	return nil
}

func (h *xHotkey) Unregister() {
	h.hk.Unregister()
}

func (h *xHotkey) Presses() <-chan struct{} {
	return h.presses
}
