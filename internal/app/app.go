// Package app wires the timeline store, clip registry, playhead and panels
// into the root bubbletea model. All mutations flow through this package on
// the UI thread; collaborators only ever read projected sequences.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lrousseau/montage/internal/clips"
	"github.com/lrousseau/montage/internal/composition"
	"github.com/lrousseau/montage/internal/config"
	"github.com/lrousseau/montage/internal/gesture"
	"github.com/lrousseau/montage/internal/playhead"
	"github.com/lrousseau/montage/internal/timeline"
	"github.com/lrousseau/montage/internal/ui/clippanel"
	"github.com/lrousseau/montage/internal/ui/timelinepanel"
)

// FocusTarget identifies which panel receives keyboard input.
type FocusTarget int

const (
	FocusTimeline FocusTarget = iota
	FocusClips
)

// Model is the root application model containing all state.
type Model struct {
	Cfg       *config.Config
	Store     *timeline.Store
	Selection *timeline.Selection
	Registry  *clips.Registry
	Notifier  *composition.Notifier
	Player    *playhead.Player
	PlayerSub *playhead.Subscription

	Timeline timelinepanel.Model
	Clips    clippanel.Model

	Tool  gesture.Tool
	Focus FocusTarget
	Drag  *gesture.Drag
	Trim  *gesture.Trim

	Keys     keyMap
	ShowHelp bool

	StatusMsg string
	ErrorMsg  string
	statusSeq int

	// Timeline panel content origin in terminal cells, kept in sync with
	// the layout so mouse positions can be translated.
	timelineX int
	timelineY int

	// Pointer X at gesture start, in panel-content columns.
	gestureStartX int

	Width  int
	Height int
}

// New creates the application model from configuration and an open clip
// registry.
func New(cfg *config.Config, registry *clips.Registry) Model {
	store := timeline.New(registry)
	store.SetTrailingMargin(cfg.GetTrailingMargin())

	sel := timeline.NewSelection()

	player := playhead.New()
	player.SetSequence(composition.Project(store))
	sub := player.Subscribe()

	tl := timelinepanel.New(store, sel, cfg.GetTrackHeight())
	tl.SetClipNamer(func(clipID string) string {
		c, ok := registry.Get(clipID)
		if !ok {
			return ""
		}
		return c.Name
	})
	tl.SetFocused(true)

	return Model{
		Cfg:       cfg,
		Store:     store,
		Selection: sel,
		Registry:  registry,
		Notifier:  composition.NewNotifier(),
		Player:    player,
		PlayerSub: sub,
		Timeline:  tl,
		Clips:     clippanel.New(registry),
		Tool:      gesture.ToolSelect,
		Focus:     FocusTimeline,
		Keys:      defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForPosition(m.PlayerSub),
		waitForState(m.PlayerSub),
	)
}

// Shutdown releases the background collaborators. Called once on quit.
func (m *Model) Shutdown() {
	m.Player.Close()
	m.Notifier.Close()
}
