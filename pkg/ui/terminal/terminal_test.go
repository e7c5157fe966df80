package terminal

import "testing"

func TestKeyConstantsUnique(t *testing.T) {
	keys := []Key{
		KeyNone, KeyRune, KeyEnter, KeyBackspace, KeyTab, KeyBacktab, KeyEscape,
		KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd,
		KeyPageUp, KeyPageDown, KeyDelete, KeyF10, KeyCtrlC,
	}

	seen := make(map[Key]bool)
	names := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key constant: %d", k)
		}
		seen[k] = true
		if k != KeyNone && names[k.String()] {
			t.Errorf("duplicate key name: %s", k)
		}
		names[k.String()] = true
	}
}

func TestEventInterface(t *testing.T) {
	var _ Event = KeyEvent{}
	var _ Event = ResizeEvent{}
	var _ Event = MouseEvent{}
	var _ Event = PasteEvent{}
	var _ Event = InterruptEvent{}
}

func TestKeyString_Unknown(t *testing.T) {
	if got := Key(999).String(); got != "none" {
		t.Errorf("String() = %q, want none", got)
	}
}
