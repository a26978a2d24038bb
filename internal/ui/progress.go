// Package ui renders `kiwic build` progress in the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kiwi/internal/buildpipeline"
)

const statusWidth = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// fileState is the last thing heard about one schema file.
type fileState int

const (
	fileQueued fileState = iota
	fileWorking
	fileDone
	fileFailed
)

type fileItem struct {
	path    string
	state   fileState
	stage   buildpipeline.Stage
	elapsed time.Duration // summed over finished stages
	err     string
}

func (it fileItem) label() string {
	switch it.state {
	case fileDone:
		return "done"
	case fileFailed:
		return "error"
	case fileWorking:
		return stageLabel(it.stage)
	default:
		return "queued"
	}
}

type progressModel struct {
	title      string
	events     <-chan buildpipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	width      int
	done       bool
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders pipeline
// progress for files. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]fileItem, 0, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items = append(m.items, fileItem{path: file})
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(buildpipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		model, cmd := m.prog.Update(msg)
		m.prog = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-14, 20)
	for _, item := range m.items {
		m.renderItem(&b, item, nameWidth)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header() string {
	done, failed := m.counts()
	header := fmt.Sprintf("%s [%d/%d", m.title, done+failed, len(m.items))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	header += "]"
	if m.stageLabel != "" && !m.done {
		header += " " + m.stageLabel
	}
	if m.done {
		return "done: " + header
	}
	return m.spinner.View() + " " + header
}

func (m *progressModel) renderItem(b *strings.Builder, item fileItem, nameWidth int) {
	label := item.label()
	fmt.Fprintf(b, "  %s %s", styleFor(item.state).Render(fmt.Sprintf("%*s", statusWidth, label)), truncate(item.path, nameWidth))
	if item.state == fileDone && item.elapsed > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf(" %.1fms", float64(item.elapsed)/float64(time.Millisecond))))
	}
	b.WriteString("\n")
	if item.state == fileFailed && item.err != "" {
		pad := strings.Repeat(" ", statusWidth+3)
		b.WriteString(pad + errorStyle.Render(truncate(item.err, max(m.width-len(pad), 20))) + "\n")
	}
}

func (m *progressModel) counts() (done, failed int) {
	for _, it := range m.items {
		switch it.state {
		case fileDone:
			done++
		case fileFailed:
			failed++
		}
	}
	return done, failed
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates the file (or, for File == "", the overall stage) and
// returns the progress bar animation.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == buildpipeline.StatusWorking {
			m.stageLabel = stageLabel(ev.Stage)
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if item.state == fileFailed {
		return nil
	}
	item.elapsed += ev.Elapsed
	switch ev.Status {
	case buildpipeline.StatusQueued:
		item.state = fileQueued
	case buildpipeline.StatusWorking:
		item.state = fileWorking
		item.stage = ev.Stage
	case buildpipeline.StatusDone:
		item.state = fileDone
		item.stage = ev.Stage
	case buildpipeline.StatusError:
		item.state = fileFailed
		item.stage = ev.Stage
		if ev.Err != nil {
			item.err = firstLine(ev.Err.Error())
		}
	}
	return m.prog.SetPercent(m.Percent())
}

// Percent returns overall completion in [0, 1]. Finished files count fully.
func (m *progressModel) Percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		switch item.state {
		case fileDone, fileFailed:
			total += 1.0
		case fileWorking:
			total += stageWeight(item.stage)
		}
	}
	return total / float64(len(m.items))
}

func stageWeight(stage buildpipeline.Stage) float64 {
	switch stage {
	case buildpipeline.StageParse:
		return 0.1
	case buildpipeline.StageValidate:
		return 0.3
	case buildpipeline.StagePlan:
		return 0.5
	case buildpipeline.StageEmit:
		return 0.7
	case buildpipeline.StageWrite:
		return 0.9
	default:
		return 0.0
	}
}

func stageLabel(stage buildpipeline.Stage) string {
	switch stage {
	case buildpipeline.StageParse:
		return "parsing"
	case buildpipeline.StageValidate:
		return "validating"
	case buildpipeline.StagePlan:
		return "planning"
	case buildpipeline.StageEmit:
		return "emitting"
	case buildpipeline.StageWrite:
		return "writing"
	default:
		return ""
	}
}

func styleFor(state fileState) lipgloss.Style {
	switch state {
	case fileDone:
		return doneStyle
	case fileFailed:
		return errorStyle
	case fileWorking:
		return workingStyle
	default:
		return idleStyle
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
