package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	fgerrors "github.com/gizzahub/fleetgit/internal/errors"
	"github.com/gizzahub/fleetgit/internal/gitcmd"
)

// DefaultFileName is the manifest's conventional file name.
const DefaultFileName = ".gitrepos"

// Load reads and parses path as a Manifest. A missing file surfaces
// ErrConfigFileNotFound; a parse failure surfaces LoadConfigFailedError.
func Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fgerrors.Wrap(fgerrors.ErrConfigFileNotFound, fgerrors.ErrConfigFileNotFound)
		}
		return nil, &fgerrors.LoadConfigFailedError{Path: path, Cause: err}
	}

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, &fgerrors.LoadConfigFailedError{Path: path, Cause: err}
	}
	if err := validateRepos(m.Repos); err != nil {
		return nil, err
	}
	return &m, nil
}

// validateRepos rejects a manifest entry whose remote URL or branch
// name couldn't safely be passed through to a git subprocess argument
// vector, catching a malformed `.gitrepos` edit before it ever reaches
// the executor.
func validateRepos(repos []RepoConfig) error {
	for _, r := range repos {
		if err := gitcmd.SanitizePath(r.DisplayLocal()); err != nil {
			return &fgerrors.ManifestValidationError{Local: r.DisplayLocal(), Field: "local", Cause: err}
		}
		if r.Remote != "" {
			if err := gitcmd.SanitizeURL(r.Remote); err != nil {
				return &fgerrors.ManifestValidationError{Local: r.DisplayLocal(), Field: "remote", Cause: err}
			}
		}
		if r.Branch != "" {
			if err := gitcmd.SanitizeBranchName(r.Branch); err != nil {
				return &fgerrors.ManifestValidationError{Local: r.DisplayLocal(), Field: "branch", Cause: err}
			}
		}
	}
	return nil
}

// Serialize renders m in the deterministic, human-editable text form:
// a header comment, then version/default_branch/default_remote when
// present, then repos sorted by lowercase local with fields in a fixed
// order, each absent field omitted.
func Serialize(m *Manifest) string {
	var b strings.Builder

	b.WriteString("# This file is synced by the fleet sync engine. Manual edits survive\n")
	b.WriteString("# until the next write; sparse-checkout edits do not.\n")

	if m.Version != "" {
		fmt.Fprintf(&b, "version = %s\n", quote(m.Version))
	}
	if m.DefaultBranch != "" {
		fmt.Fprintf(&b, "default_branch = %s\n", quote(m.DefaultBranch))
	}
	if m.DefaultRemote != "" {
		fmt.Fprintf(&b, "default_remote = %s\n", quote(m.DefaultRemote))
	}

	for _, r := range m.SortedRepos() {
		b.WriteString("\n[[repos]]\n")
		fmt.Fprintf(&b, "local = %s\n", quote(r.DisplayLocal()))
		if r.Remote != "" {
			fmt.Fprintf(&b, "remote = %s\n", quote(r.Remote))
		}
		if r.Branch != "" {
			fmt.Fprintf(&b, "branch = %s\n", quote(r.Branch))
		}
		if r.Tag != "" {
			fmt.Fprintf(&b, "tag = %s\n", quote(r.Tag))
		}
		if r.Commit != "" {
			fmt.Fprintf(&b, "commit = %s\n", quote(r.Commit))
		}
		if len(r.Sparse) > 0 {
			fmt.Fprintf(&b, "sparse = %s\n", quoteList(r.Sparse))
		}
		if len(r.Labels) > 0 {
			fmt.Fprintf(&b, "labels = %s\n", quoteList(r.Labels))
		}
	}

	return b.String()
}

func quote(s string) string {
	return strconv.Quote(s)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = quote(it)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Save atomically writes m to path: the full content is written to a
// temp file in the destination directory, then renamed over path. On
// any failure the intended content is preserved on the returned error
// so the caller can retry without re-deriving it.
func Save(path string, m *Manifest) error {
	content := Serialize(m)
	return writeAtomic(path, content)
}

func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gitrepos-*.tmp")
	if err != nil {
		return &fgerrors.ConfigSaveError{Path: path, Content: content, Cause: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return &fgerrors.ConfigSaveError{Path: path, Content: content, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &fgerrors.ConfigSaveError{Path: path, Content: content, Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &fgerrors.ConfigSaveError{Path: path, Content: content, Cause: err}
	}
	return nil
}

// DebouncedWriter coalesces rapid successive Save calls into a single
// write fired after a quiet window. It is single-producer (the caller
// enqueuing edits), single-consumer (the internal writer goroutine); a
// newly-enqueued write simply replaces the pending content.
type DebouncedWriter struct {
	path   string
	window time.Duration

	mu      sync.Mutex
	pending *Manifest
	timer   *time.Timer
	onError func(error)
}

// NewDebouncedWriter creates a writer targeting path, coalescing writes
// within window (default 500ms if window <= 0).
func NewDebouncedWriter(path string, window time.Duration, onError func(error)) *DebouncedWriter {
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &DebouncedWriter{path: path, window: window, onError: onError}
}

// Enqueue schedules m to be written after the debounce window, replacing
// any not-yet-fired pending write.
func (w *DebouncedWriter) Enqueue(m *Manifest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = m
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.window, w.flush)
}

// Retry fires the pending write immediately, bypassing the debounce
// window. It is a no-op if nothing is pending.
func (w *DebouncedWriter) Retry() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	w.flush()
}

func (w *DebouncedWriter) flush() {
	w.mu.Lock()
	m := w.pending
	w.pending = nil
	w.mu.Unlock()

	if m == nil {
		return
	}
	if err := Save(w.path, m); err != nil {
		w.mu.Lock()
		w.pending = m
		w.mu.Unlock()
		w.onError(err)
	}
}
