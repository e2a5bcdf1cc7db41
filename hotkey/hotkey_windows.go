package hotkey

import xhotkey "golang.design/x/hotkey"

const altModifier = xhotkey.ModAlt
