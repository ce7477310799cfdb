// Package artifact persists finished transcripts as downloadable files
// in ephemeral, request-scoped storage.
//
// Every artifact gets its own directory under the store root, named by a
// fresh UUID, so concurrent requests can never collide on a path. A
// directory lives only long enough for its download to be served; the
// store's janitor sweeps directories older than the retention period.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultRetention is how long an artifact stays on disk before the
// janitor may remove it.
const DefaultRetention = 30 * time.Minute

// Artifact is one written transcript file.
type Artifact struct {
	// ID is the request-scoped directory name (a UUID).
	ID string

	// Name is the sanitized file name including the ".md" extension.
	Name string

	// Path is the absolute path of the written file.
	Path string

	// CreatedAt is the write timestamp.
	CreatedAt time.Time
}

// WriteError reports a failed artifact write (disk full, permissions).
// Write failures are terminal for a request and are never retried.
type WriteError struct {
	// Path is the location the write was attempted at.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write artifact at '%s': %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Store manages the ephemeral storage root.
//
// The store itself carries no per-request state; each Create call
// allocates an isolated directory, so no locking is needed across
// requests.
type Store struct {
	root      string
	retention time.Duration
	ownsRoot  bool
}

// NewStore creates a store rooted at root. An empty root allocates a
// fresh temporary directory that Close will remove. Retention <= 0
// selects DefaultRetention.
func NewStore(root string, retention time.Duration) (*Store, error) {
	ownsRoot := false
	if root == "" {
		dir, err := os.MkdirTemp("", "2transcript-")
		if err != nil {
			return nil, fmt.Errorf("create storage root: %w", err)
		}
		root = dir
		ownsRoot = true
	} else if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{root: root, retention: retention, ownsRoot: ownsRoot}, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// Create writes text as UTF-8 into a fresh request-scoped directory and
// returns the resulting artifact. suggestedName is sanitized and given a
// ".md" extension; an unusable name falls back to "transcript.md".
func (s *Store) Create(text, suggestedName string) (*Artifact, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.root, id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, &WriteError{Path: dir, Err: err}
	}

	name := SanitizeName(suggestedName) + ".md"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		// Leave nothing half-written behind.
		os.RemoveAll(dir)
		return nil, &WriteError{Path: path, Err: err}
	}

	return &Artifact{
		ID:        id,
		Name:      name,
		Path:      path,
		CreatedAt: time.Now(),
	}, nil
}

// Resolve maps an artifact ID and file name back to an on-disk path,
// rejecting anything that would escape the store root. Returns
// os.ErrNotExist when the artifact is gone (served and swept, or never
// existed).
func (s *Store) Resolve(id, name string) (string, error) {
	if uuid.Validate(id) != nil {
		return "", os.ErrNotExist
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", os.ErrNotExist
	}

	path := filepath.Join(s.root, id, name)
	if _, err := os.Stat(path); err != nil {
		return "", os.ErrNotExist
	}
	return path, nil
}

// Release removes an artifact's directory. Releasing an already-swept
// artifact is not an error.
func (s *Store) Release(a *Artifact) error {
	if a == nil || a.ID == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(s.root, a.ID))
}

// Sweep removes artifact directories whose modification time is older
// than the retention period and reports how many were removed.
func (s *Store) Sweep(now time.Time) int {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0
	}

	removed := 0
	cutoff := now.Add(-s.retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.RemoveAll(filepath.Join(s.root, entry.Name())) == nil {
				removed++
			}
		}
	}
	return removed
}

// Janitor sweeps the store at the given interval until stop is closed.
// Run it in its own goroutine:
//
//	stop := make(chan struct{})
//	go store.Janitor(5*time.Minute, stop)
func (s *Store) Janitor(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.Sweep(now)
		case <-stop:
			return
		}
	}
}

// Close removes the storage root if the store allocated it.
func (s *Store) Close() error {
	if !s.ownsRoot {
		return nil
	}
	return os.RemoveAll(s.root)
}
