package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lrousseau/montage/internal/composition"
)

// Job writes an EDL to disk, reporting progress per event and honoring a
// cancel token. It runs off the UI thread; it reads only the sequence it
// was handed and never touches the timeline store.
type Job struct {
	mu       sync.Mutex
	path     string
	progress func(done, total int)
	canceled bool
}

// ErrCanceled is returned by Run when the job was canceled before the file
// was written.
var ErrCanceled = fmt.Errorf("export canceled")

// NewJob creates a job writing to path. progress may be nil.
func NewJob(path string, progress func(done, total int)) *Job {
	return &Job{path: path, progress: progress}
}

// Cancel marks the job as canceled. Safe to call from any goroutine; the
// job checks the flag between events and before writing.
func (j *Job) Cancel() {
	j.mu.Lock()
	j.canceled = true
	j.mu.Unlock()
}

// Canceled reports whether Cancel was called.
func (j *Job) Canceled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.canceled
}

// Run renders the sequence and writes the EDL file. The write goes through
// a temp file and rename so a canceled or failed run never leaves a partial
// file at the destination.
func (j *Job) Run(seq composition.Sequence, title string, frameRate float64, name NameFunc) error {
	events := collectEvents(seq)
	total := len(events)
	for i := range events {
		if j.Canceled() {
			return ErrCanceled
		}
		if j.progress != nil {
			j.progress(i+1, total)
		}
	}

	content := RenderEDL(seq, title, frameRate, name)
	if j.Canceled() {
		return ErrCanceled
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("export edl: %w", err)
	}
	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("export edl: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("export edl: %w", err)
	}
	return nil
}
