package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all key bindings with their help text.
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	FocusNext key.Binding

	PlayPause  key.Binding
	Stop       key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	SeekHome   key.Binding
	SeekEnd    key.Binding

	ToolSelect key.Binding
	ToolBlade  key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding

	Place      key.Binding
	Split      key.Binding
	TrimLeft   key.Binding
	TrimRight  key.Binding
	NudgeLeft  key.Binding
	NudgeRight key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	ClearSel   key.Binding

	AddVideoTrack key.Binding
	AddAudioTrack key.Binding
	RemoveTrack   key.Binding
	MuteTrack     key.Binding
	LockTrack     key.Binding

	AutoArrange key.Binding
	Export      key.Binding

	CursorUp   key.Binding
	CursorDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),

		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		SeekBack:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -1s")),
		SeekFwd:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +1s")),
		SeekHome:  key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("0", "seek to start")),
		SeekEnd:   key.NewBinding(key.WithKeys("end", "$"), key.WithHelp("$", "seek to end")),

		ToolSelect: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select tool")),
		ToolBlade:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "blade tool")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),

		Place:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "place clip at playhead")),
		Split:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "split at playhead")),
		TrimLeft:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "trim start to playhead")),
		TrimRight:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "trim end to playhead")),
		NudgeLeft:  key.NewBinding(key.WithKeys(","), key.WithHelp(",", "nudge left")),
		NudgeRight: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "nudge right")),
		Toggle:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enable/disable")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete selection")),
		ClearSel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),

		AddVideoTrack: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add video track")),
		AddAudioTrack: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "add audio track")),
		RemoveTrack:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "remove selected track")),
		MuteTrack:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute track")),
		LockTrack:     key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "lock track")),

		AutoArrange: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "auto-arrange clips")),
		Export:      key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export EDL")),

		CursorUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous clip")),
		CursorDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next clip")),
	}
}

// helpBindings returns the bindings shown in the help overlay, in display
// order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.PlayPause, k.Stop, k.SeekBack, k.SeekFwd, k.SeekHome, k.SeekEnd,
		k.ToolSelect, k.ToolBlade, k.ZoomIn, k.ZoomOut,
		k.Place, k.Split, k.TrimLeft, k.TrimRight,
		k.NudgeLeft, k.NudgeRight, k.Toggle, k.Delete, k.ClearSel,
		k.AddVideoTrack, k.AddAudioTrack, k.RemoveTrack, k.MuteTrack, k.LockTrack,
		k.AutoArrange, k.Export,
		k.FocusNext, k.Help, k.Quit,
	}
}
