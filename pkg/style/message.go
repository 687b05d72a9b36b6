// Package style implements the StyleMessage contract: a sequence of
// colored text segments that can render as plain text or as an
// ANSI/lipgloss-styled terminal line, without the producer (the
// comparator, the pipeline, the scheduler) knowing which.
package style

import (
	"fmt"
	"strings"
)

// Color names a foreground color for a Segment. The zero value, None,
// carries no styling.
type Color int

const (
	None Color = iota
	Red
	Green
	Blue
	Yellow
	Purple
	Grey
)

// Segment is one (content, color, bold) run of a Message.
type Segment struct {
	Content string
	Color   Color
	Bold    bool
}

// Message is an ordered sequence of styled segments.
type Message struct {
	segments []Segment
}

// New returns an empty Message.
func New() Message {
	return Message{}
}

// Plain appends unstyled content and returns the Message for chaining.
func (m Message) Plain(content string) Message {
	return m.styled(content, None, false)
}

// Styled appends content in the given color.
func (m Message) Styled(content string, color Color) Message {
	return m.styled(content, color, false)
}

// StyledBold appends content in the given color, bold.
func (m Message) StyledBold(content string, color Color) Message {
	return m.styled(content, color, true)
}

func (m Message) styled(content string, color Color, bold bool) Message {
	segs := make([]Segment, len(m.segments), len(m.segments)+1)
	copy(segs, m.segments)
	segs = append(segs, Segment{Content: content, Color: color, Bold: bold})
	return Message{segments: segs}
}

// Join concatenates other onto m.
func (m Message) Join(other Message) Message {
	segs := make([]Segment, 0, len(m.segments)+len(other.segments))
	segs = append(segs, m.segments...)
	segs = append(segs, other.segments...)
	return Message{segments: segs}
}

// TryJoin joins other onto m only when other is non-nil.
func (m Message) TryJoin(other *Message) Message {
	if other == nil {
		return m
	}
	return m.Join(*other)
}

// Contains reports whether any segment's content contains substr.
func (m Message) Contains(substr string) bool {
	for _, s := range m.segments {
		if strings.Contains(s.Content, substr) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the message has no segments, or only
// empty-content segments.
func (m Message) IsEmpty() bool {
	for _, s := range m.segments {
		if s.Content != "" {
			return false
		}
	}
	return true
}

// PlainText drops all styling and concatenates segment content.
func (m Message) PlainText() string {
	var b strings.Builder
	for _, s := range m.segments {
		b.WriteString(s.Content)
	}
	return b.String()
}

// Segments exposes the underlying segments for a renderer.
func (m Message) Segments() []Segment {
	return m.segments
}

// Construction helpers mirroring the named message shapes used across
// the manifest store, comparator, and scheduler.

func DirNotFound(path string) Message {
	return New().Styled("directory not found: ", Red).Plain(path)
}

func DirAlreadyInited(path string) Message {
	return New().Styled("already inited: ", Yellow).Plain(path)
}

func ConfigFileNotFound() Message {
	return New().Styled(".gitrepos not found", Red)
}

func UpdateConfigSucc() Message {
	return New().Styled("update .gitrepos succeed", Green)
}

func RemoveFileFailed(path string, err error) Message {
	return New().Plain(path + " ").Styled(fmt.Sprintf("remove failed: %v", err), Red)
}

func RemoveFileSucc(path string) Message {
	return New().Plain(path + " ").Styled("removed", Green)
}

func RemoveRepoSucc(count int) Message {
	if count == 1 {
		return New().Styled("removed 1 repo", Green)
	}
	return New().Styled(fmt.Sprintf("removed %d repos", count), Green)
}

func OpsStart(ops, path string) Message {
	return New().Styled(ops+" repos ", Blue).Plain("in "+path)
}

func OpsSuccess(prefix string) Message {
	return New().Styled(prefix+" succeeded", Green)
}

// OpsErrors renders the batch-level summary: zero errors is a success
// message, any errors is a red failure count.
func OpsErrors(prefix string, count int) Message {
	if count == 0 {
		return OpsSuccess(prefix)
	}
	return New().Styled(fmt.Sprintf("%s failed (%d errors)", prefix, count), Red)
}

func GitError(relPath string, err error) Message {
	return New().Plain(relPath + " ").Styled(err.Error(), Red)
}

func GitStash(relPath, desc string) Message {
	return New().Plain(relPath + " ").Styled("stashed as "+desc, Yellow)
}

func GitUntracked(relPath, desc string) Message {
	return New().Plain(relPath + " ").Styled(desc+" untracked", Grey)
}

func GitTrackingSucc(relPath, localBranch, remoteDesc string) Message {
	return New().Plain(relPath + " ").Styled(localBranch+" tracking "+remoteDesc, Green)
}

func GitTrackingFailed(relPath, remoteDesc string) Message {
	return New().Plain(relPath + " ").Styled("failed to track "+remoteDesc, Red)
}

func GitRemoteNotFound(remoteRef string) Message {
	return New().Styled("remote ref not found: ", Red).Plain(remoteRef)
}

func GitCheckingOut(branch string) Message {
	return New().Styled("checking out "+branch, Blue)
}

// GitChanges renders a "changes(k)" fragment; nil when there are no
// dirty files.
func GitChanges(count int) *Message {
	if count == 0 {
		return nil
	}
	m := New().Styled(fmt.Sprintf("changes(%d)", count), Yellow)
	return &m
}

// GitCommits renders a "commits(n↑m↓)" fragment; nil when both counts
// are zero.
func GitCommits(ahead, behind int) *Message {
	if ahead == 0 && behind == 0 {
		return nil
	}
	m := New().Styled(fmt.Sprintf("commits(%d↑%d↓)", ahead, behind), Blue)
	return &m
}

func GitUnknownRevision() Message {
	return New().Styled("unknown revision", Red)
}

func GitUpdateToDate(branchLog string) Message {
	m := New().Styled("already update to date.", Green)
	if branchLog != "" {
		m = m.Plain(branchLog)
	}
	return m
}

// GitDiff assembles the remote-ref/commits/changes summary described in
// the comparator's message-assembly step.
func GitDiff(remoteDesc string, commits, changes *Message) Message {
	m := New().Styled(remoteDesc, Purple)
	if commits != nil {
		m = m.Plain(" ").Join(*commits)
	}
	if changes != nil {
		m = m.Plain(" ").Join(*changes)
	}
	return m
}

func GitNewBranch(path, branch string) Message {
	return New().Plain(path + " ").Styled("new branch "+branch, Green)
}

func GitDelBranch(path, branch string) Message {
	return New().Plain(path + " ").Styled("deleted branch "+branch, Red)
}

func GitNewTag(path, tag string) Message {
	return New().Plain(path + " ").Styled("new tag "+tag, Green)
}
