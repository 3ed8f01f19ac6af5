package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the clock screen.
type keyMap struct {
	Toggle    key.Binding // only while the note box is not focused
	Submit    key.Binding // toggle from anywhere, note included
	Note      key.Binding
	Blur      key.Binding
	Copy      key.Binding
	Open      key.Binding
	Quit      key.Binding
	Interrupt key.Binding

	// Dialog answers
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "clock in/out"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "clock in/out"),
		),
		Note: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "note"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "done"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy row"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// bindingHelp renders a binding with helpEntry.
func bindingHelp(b key.Binding) string {
	h := b.Help()
	return helpEntry(h.Key, h.Desc)
}
