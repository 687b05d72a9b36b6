// Package progress defines the sink contract a scheduler reports batch
// and per-repo lifecycle events through, plus a no-op and a console
// implementation.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/gizzahub/fleetgit/pkg/style"
)

// RepoInfo identifies one repo within a batch: its manifest index
// (stable across the run) and its sequential dispatch order.
type RepoInfo struct {
	ID      int
	Index   int
	RelPath string
	Branch  string
	Remote  string
}

// Sink receives the lifecycle events a scheduler emits while running a
// batch of repos.
type Sink interface {
	OnBatchStart(total int)
	OnBatchFinish()
	OnRepoStart(repo RepoInfo, status string)
	OnRepoUpdate(repo RepoInfo, status string)
	OnRepoSuccess(repo RepoInfo, msg style.Message)
	OnRepoError(repo RepoInfo, msg style.Message)
}

// NoopSink discards every event.
type NoopSink struct{}

func (NoopSink) OnBatchStart(int)                      {}
func (NoopSink) OnBatchFinish()                        {}
func (NoopSink) OnRepoStart(RepoInfo, string)           {}
func (NoopSink) OnRepoUpdate(RepoInfo, string)          {}
func (NoopSink) OnRepoSuccess(RepoInfo, style.Message) {}
func (NoopSink) OnRepoError(RepoInfo, style.Message)   {}

// ConsoleSink renders plain-text lines to w, one per event, serialized
// with a mutex since the scheduler calls it from concurrent workers.
type ConsoleSink struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsoleSink returns a Sink that writes human-readable lines to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) OnBatchStart(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "syncing %d repos\n", total)
}

func (c *ConsoleSink) OnBatchFinish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, "done")
}

func (c *ConsoleSink) OnRepoStart(repo RepoInfo, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%d/%d] %s: %s\n", repo.Index, repo.ID, repo.RelPath, status)
}

func (c *ConsoleSink) OnRepoUpdate(repo RepoInfo, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%d/%d] %s: %s\n", repo.Index, repo.ID, repo.RelPath, status)
}

func (c *ConsoleSink) OnRepoSuccess(repo RepoInfo, msg style.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%d/%d] %s: %s\n", repo.Index, repo.ID, repo.RelPath, style.Render(msg))
}

func (c *ConsoleSink) OnRepoError(repo RepoInfo, msg style.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%d/%d] %s: ERROR %s\n", repo.Index, repo.ID, repo.RelPath, style.Render(msg))
}
