package hotkey

import xhotkey "golang.design/x/hotkey"

// macOS calls it Option.
const altModifier = xhotkey.ModOption
