package clips

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "montage"
	dbFileName = "clips.db"
)

// Registry holds the known source clips. When opened with a database it
// persists the catalog across sessions; NewInMemory keeps everything in the
// map only, which is what tests and the auto-edit collaborator use.
//
// Like the timeline store, the registry is owned by the UI thread and is
// not goroutine-safe.
type Registry struct {
	db    *sql.DB
	clips map[string]Clip
}

// Open loads (or creates) the clip catalog at the default xdg data path.
func Open() (*Registry, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt loads (or creates) the clip catalog at the given path.
func OpenAt(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	r := &Registry{db: db, clips: make(map[string]Clip)}
	if err := r.loadAll(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// NewInMemory creates a registry with no backing catalog.
func NewInMemory() *Registry {
	return &Registry{clips: make(map[string]Clip)}
}

// Close releases the backing catalog, if any.
func (r *Registry) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Register adds a clip to the registry, assigning an id when none is set,
// and returns the stored clip.
func (r *Registry) Register(c Clip) (Clip, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Name == "" {
		c.Name = filepath.Base(c.Path)
	}
	if c.Kind != KindImage && c.Duration <= 0 {
		return Clip{}, fmt.Errorf("register clip %s: non-positive duration %.3f", c.Name, c.Duration)
	}

	if r.db != nil {
		err := withTx(r.db, func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				INSERT OR REPLACE INTO clips (id, name, path, kind, duration, size_bytes)
				VALUES (?, ?, ?, ?, ?, ?)`,
				c.ID, c.Name, c.Path, int(c.Kind), c.Duration, c.SizeBytes)
			return err
		})
		if err != nil {
			return Clip{}, fmt.Errorf("register clip %s: %w", c.Name, err)
		}
	}

	r.clips[c.ID] = c
	return c, nil
}

// Remove deletes a clip from the registry. Segments referencing it keep
// playing their trimmed window; only future trim clamps lose the upper
// bound.
func (r *Registry) Remove(id string) error {
	if _, ok := r.clips[id]; !ok {
		return fmt.Errorf("remove clip %s: not found", id)
	}
	if r.db != nil {
		err := withTx(r.db, func(tx *sql.Tx) error {
			_, err := tx.Exec(`DELETE FROM clips WHERE id = ?`, id)
			return err
		})
		if err != nil {
			return fmt.Errorf("remove clip %s: %w", id, err)
		}
	}
	delete(r.clips, id)
	return nil
}

// Get returns the clip with the given id.
func (r *Registry) Get(id string) (Clip, bool) {
	c, ok := r.clips[id]
	return c, ok
}

// All returns every registered clip, sorted by name then id for a stable
// listing.
func (r *Registry) All() []Clip {
	out := make([]Clip, 0, len(r.clips))
	for _, c := range r.clips {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of registered clips.
func (r *Registry) Len() int {
	return len(r.clips)
}

// ClipDuration implements timeline.ClipSource. Still images report no
// intrinsic duration, so trims on image segments are unclamped at the top.
func (r *Registry) ClipDuration(id string) (float64, bool) {
	c, ok := r.clips[id]
	if !ok || c.Kind == KindImage {
		return 0, false
	}
	return c.Duration, true
}

func (r *Registry) loadAll() error {
	rows, err := r.db.Query(`SELECT id, name, path, kind, duration, size_bytes FROM clips`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c Clip
		var kind int
		if err := rows.Scan(&c.ID, &c.Name, &c.Path, &kind, &c.Duration, &c.SizeBytes); err != nil {
			return err
		}
		c.Kind = Kind(kind)
		r.clips[c.ID] = c
	}
	return rows.Err()
}

// withTx executes fn within a transaction, rolling back on error.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
