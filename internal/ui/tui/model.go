package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is reported when the user quits before all files finished.
var ErrInterrupted = errors.New("interrupted")

// Status is the state of one request file.
type Status int

// File states.
const (
	StatusPending Status = iota
	StatusRunning
	StatusPassed
	StatusFailed
	StatusErrored
)

// Finished reports whether s is a final state.
func (s Status) Finished() bool {
	return s >= StatusPassed
}

// FileState is one row of the display.
type FileState struct {
	Name   string
	Status Status
	Detail string
}

// Model is the Bubble Tea model for the validate progress display.
type Model struct {
	Files     []FileState
	StartTime time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width int
	Err   error
	Done  bool

	index map[string]int
}

// NewValidateModel creates a model with every file pending.
func NewValidateModel(files []string) Model {
	m := Model{
		StartTime: time.Now(),
		index:     make(map[string]int, len(files)),
	}
	for i, f := range files {
		m.Files = append(m.Files, FileState{Name: f})
		m.index[f] = i
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.allFinished() {
				m.Err = ErrInterrupted
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case FileStartedMsg:
		m.setStatus(msg.File, StatusRunning, "")

	case FileDoneMsg:
		m.setStatus(msg.File, msg.Status, msg.Detail)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) setStatus(file string, s Status, detail string) {
	i, ok := m.index[file]
	if !ok {
		return
	}
	// Rows are values; copy-on-write keeps earlier models intact.
	files := make([]FileState, len(m.Files))
	copy(files, m.Files)
	files[i].Status = s
	files[i].Detail = detail
	m.Files = files
}

func (m Model) allFinished() bool {
	for _, f := range m.Files {
		if !f.Status.Finished() {
			return false
		}
	}
	return true
}

// Finished returns the number of files in a final state.
func (m Model) Finished() int {
	n := 0
	for _, f := range m.Files {
		if f.Status.Finished() {
			n++
		}
	}
	return n
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
