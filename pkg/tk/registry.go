package tk

// ctor adapts a typed constructor to Constructor without leaking a typed
// nil into the interface on failure.
func ctor[T Widget](fn func(Widget, string, Options) (T, error)) Constructor {
	return func(parent Widget, name string, opts Options) (Widget, error) {
		w, err := fn(parent, name, opts)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// ClassicWidgets returns the classic widget namespace, keyed by kind.
func ClassicWidgets() map[string]Constructor {
	return map[string]Constructor{
		"Frame":       ctor(NewFrame),
		"LabelFrame":  ctor(NewLabelFrame),
		"Label":       ctor(NewLabel),
		"Message":     ctor(NewMessage),
		"Button":      ctor(NewButton),
		"Checkbutton": ctor(NewCheckbutton),
		"Radiobutton": ctor(NewRadiobutton),
		"Entry":       ctor(NewEntry),
		"Spinbox":     ctor(NewSpinbox),
		"Listbox":     ctor(NewListbox),
		"Text":        ctor(NewText),
		"Scale":       ctor(NewScale),
		"Canvas":      ctor(NewCanvas),
	}
}

// ThemedWidgets returns the themed widget namespace, keyed by kind. Kinds
// shared with the classic namespace build themed variants.
func ThemedWidgets() map[string]Constructor {
	return map[string]Constructor{
		"Combobox":    ctor(newCombobox),
		"Notebook":    ctor(newNotebook),
		"Treeview":    ctor(newTreeview),
		"Progressbar": ctor(newProgressbar),
		"Separator":   ctor(newSeparator),
		"Labelframe":  ctor(newThemedLabelFrame),
		"Frame":       ctor(newThemedFrame),
		"Label":       ctor(newThemedLabel),
		"Button":      ctor(newThemedButton),
		"Entry":       ctor(newThemedEntry),
		"Checkbutton": ctor(newThemedCheckbutton),
		"Radiobutton": ctor(newThemedRadiobutton),
		"Scale":       ctor(newThemedScale),
	}
}
