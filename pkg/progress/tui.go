package progress

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gizzahub/fleetgit/pkg/style"
)

// TUISink is a Sink backed by an interactive bubbletea program: one
// spinner line per in-flight repo plus an aggregate bar. Lifecycle
// methods are called concurrently from scheduler workers, so each one
// just forwards an event onto a channel; the bubbletea event loop is
// the only goroutine that touches the model.
type TUISink struct {
	events chan tuiEvent
}

type tuiEventKind int

const (
	evBatchStart tuiEventKind = iota
	evBatchFinish
	evRepoStart
	evRepoUpdate
	evRepoSuccess
	evRepoError
)

type tuiEvent struct {
	kind  tuiEventKind
	repo  RepoInfo
	total int
	msg   string
}

// NewTUISink creates a sink and returns it alongside a Run function
// that drives the bubbletea program to completion. Run blocks until
// OnBatchFinish fires, so callers invoke it from the same goroutine
// that waits on the scheduler, e.g.:
//
//	sink, run := progress.NewTUISink()
//	go func() { scheduler.Run(ctx, n, repos, sink, task) }()
//	run()
func NewTUISink() (*TUISink, func() error) {
	s := &TUISink{
		events: make(chan tuiEvent, 64),
	}
	m := newTUIModel(s.events)
	p := tea.NewProgram(m)
	return s, func() error {
		_, err := p.Run()
		return err
	}
}

func (s *TUISink) OnBatchStart(total int) {
	s.events <- tuiEvent{kind: evBatchStart, total: total}
}

func (s *TUISink) OnBatchFinish() {
	s.events <- tuiEvent{kind: evBatchFinish}
}

func (s *TUISink) OnRepoStart(repo RepoInfo, status string) {
	s.events <- tuiEvent{kind: evRepoStart, repo: repo, msg: status}
}

func (s *TUISink) OnRepoUpdate(repo RepoInfo, status string) {
	s.events <- tuiEvent{kind: evRepoUpdate, repo: repo, msg: status}
}

func (s *TUISink) OnRepoSuccess(repo RepoInfo, msg style.Message) {
	s.events <- tuiEvent{kind: evRepoSuccess, repo: repo, msg: msg.PlainText()}
}

func (s *TUISink) OnRepoError(repo RepoInfo, msg style.Message) {
	s.events <- tuiEvent{kind: evRepoError, repo: repo, msg: msg.PlainText()}
}

type repoRow struct {
	info   RepoInfo
	status string
	done   bool
	failed bool
}

type tuiModel struct {
	events   <-chan tuiEvent
	spin     spinner.Model
	bar      progress.Model
	total    int
	finished int
	rows     map[int]*repoRow
	order    []int
}

func newTUIModel(events <-chan tuiEvent) tuiModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return tuiModel{
		events: events,
		spin:   sp,
		bar:    progress.New(progress.WithDefaultGradient()),
		rows:   make(map[int]*repoRow),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForEvent(m.events))
}

func waitForEvent(events <-chan tuiEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return batchFinishedMsg{}
		}
		return ev
	}
}

type batchFinishedMsg struct{}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tuiEvent:
		m.apply(msg)
		if msg.kind == evBatchFinish {
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)

	case batchFinishedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m *tuiModel) apply(ev tuiEvent) {
	switch ev.kind {
	case evBatchStart:
		m.total = ev.total
	case evRepoStart, evRepoUpdate:
		row := m.rowFor(ev.repo)
		row.status = ev.msg
	case evRepoSuccess:
		row := m.rowFor(ev.repo)
		row.status = ev.msg
		row.done = true
		m.finished++
	case evRepoError:
		row := m.rowFor(ev.repo)
		row.status = ev.msg
		row.done = true
		row.failed = true
		m.finished++
	}
}

func (m *tuiModel) rowFor(info RepoInfo) *repoRow {
	row, ok := m.rows[info.Index]
	if !ok {
		row = &repoRow{info: info}
		m.rows[info.Index] = row
		m.order = append(m.order, info.Index)
		sort.Ints(m.order)
	}
	return row
}

func (m tuiModel) View() string {
	var b strings.Builder
	for _, idx := range m.order {
		row := m.rows[idx]
		icon := m.spin.View()
		if row.done {
			icon = "√"
			if row.failed {
				icon = "x"
			}
		}
		fmt.Fprintf(&b, "%s %-40s %s\n", icon, row.info.RelPath, row.status)
	}

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.finished) / float64(m.total)
	}
	b.WriteString(m.bar.ViewAs(pct))
	b.WriteString(fmt.Sprintf(" %d/%d\n", m.finished, m.total))
	return b.String()
}
