package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lrousseau/montage/internal/composition"
	"github.com/lrousseau/montage/internal/export"
	"github.com/lrousseau/montage/internal/playhead"
)

const statusDuration = 3 * time.Second

// waitForPosition blocks on the player subscription and re-queues itself
// from Update after each message.
func waitForPosition(sub *playhead.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.PositionChanged:
			return PositionMsg{Position: e.Position}
		case <-sub.Done:
			return playerClosedMsg{}
		}
	}
}

// waitForState blocks on transport state changes.
func waitForState(sub *playhead.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return TransportStateMsg{Previous: e.Previous, Current: e.Current}
		case <-sub.Done:
			return playerClosedMsg{}
		}
	}
}

// clearStatusCmd expires the status message identified by seq.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// exportCmd writes the EDL off the UI thread. The sequence is an immutable
// snapshot, so later edits cannot race the write.
func exportCmd(seq composition.Sequence, path, title string, fps float64, name export.NameFunc) tea.Cmd {
	return func() tea.Msg {
		job := export.NewJob(path, nil)
		err := job.Run(seq, title, fps, name)
		if err != nil {
			log.Error("edl export failed", "path", path, "err", err)
		} else {
			log.Info("edl exported", "path", path)
		}
		return ExportDoneMsg{Path: path, Err: err}
	}
}
