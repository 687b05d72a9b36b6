package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gizzahub/fleetgit/pkg/style"
)

func TestConsoleSinkRendersLifecycle(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	sink.OnBatchStart(2)
	sink.OnRepoStart(RepoInfo{ID: 1, Index: 1, RelPath: "a"}, "waiting...")
	sink.OnRepoSuccess(RepoInfo{ID: 1, Index: 1, RelPath: "a"}, style.New().Plain("ok"))
	sink.OnRepoError(RepoInfo{ID: 2, Index: 2, RelPath: "b"}, style.New().Plain("boom"))
	sink.OnBatchFinish()

	out := buf.String()
	for _, want := range []string{"syncing 2 repos", "waiting...", "ok", "ERROR", "boom", "done"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNoopSinkDoesNotPanic(t *testing.T) {
	var s Sink = NoopSink{}
	s.OnBatchStart(1)
	s.OnRepoStart(RepoInfo{}, "x")
	s.OnRepoUpdate(RepoInfo{}, "x")
	s.OnRepoSuccess(RepoInfo{}, style.New())
	s.OnRepoError(RepoInfo{}, style.New())
	s.OnBatchFinish()
}
