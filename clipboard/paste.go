//go:build !darwin

package clipboard

import (
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

// Init creates the virtual keyboard once. On Linux the uinput device needs
// a moment to be picked up by the compositor before the first keystroke.
func Init() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
		if kbErr == nil {
			time.Sleep(200 * time.Millisecond)
		}
	})
	return kbErr
}

// Paste sends Ctrl+V to the focused window.
func Paste() error {
	if err := Init(); err != nil {
		return err
	}
	kb.Clear()
	kb.SetKeys(keybd_event.VK_V)
	kb.HasCTRL(true)
	return kb.Launching()
}
