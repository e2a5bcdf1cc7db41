// Package clipboard delivers transcripts: the text is written to the
// system clipboard and a paste keystroke is injected into the focused
// window.
package clipboard

import (
	"fmt"

	cb "github.com/atotto/clipboard"
)

func Copy(text string) error {
	return cb.WriteAll(text)
}

func Read() (string, error) {
	return cb.ReadAll()
}

// Deliver copies text to the clipboard and injects the paste chord. Either
// step can fail (headless session, injection denied); the error surfaces
// to the caller untouched.
func Deliver(text string) error {
	if err := Copy(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	if err := Paste(); err != nil {
		return fmt.Errorf("paste injection: %w", err)
	}
	return nil
}
