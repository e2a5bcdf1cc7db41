package hotkey

import "testing"

func TestParseCombo(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  Combo
	}{
		{"ctrl+alt+space", Combo{Ctrl: true, Alt: true, Key: "space"}},
		{"ctrl+shift+space", Combo{Ctrl: true, Shift: true, Key: "space"}},
		{"Ctrl+Alt+Space", Combo{Ctrl: true, Alt: true, Key: "space"}},
		{"alt+d", Combo{Alt: true, Key: "d"}},
		{"control+option+v", Combo{Ctrl: true, Alt: true, Key: "v"}},
		{"shift+ctrl+z", Combo{Ctrl: true, Shift: true, Key: "z"}},
	} {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCombo(tt.input)
			if err != nil {
				t.Fatalf("ParseCombo(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCombo(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseComboRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"space",       // no modifier
		"d",           // no modifier
		"ctrl+",       // empty key
		"ctrl+enter",  // unsupported key
		"ctrl+1",      // digits not supported
		"hyper+space", // unknown modifier
		"ctrl+alt+é",
	} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseCombo(input); err == nil {
				t.Errorf("ParseCombo(%q) accepted, want error", input)
			}
		})
	}
}

func TestComboString(t *testing.T) {
	c := Combo{Ctrl: true, Alt: true, Key: "space"}
	if got := c.String(); got != "ctrl+alt+space" {
		t.Errorf("String() = %q, want %q", got, "ctrl+alt+space")
	}
}
