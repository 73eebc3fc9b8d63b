// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/corvid-labs/anyhub/internal/chat"
	"github.com/corvid-labs/anyhub/internal/model"
	"github.com/corvid-labs/anyhub/internal/storage"
	"github.com/corvid-labs/anyhub/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	orch       *chat.Orchestrator
	transcript *model.Transcript
	history    *storage.History

	theme    *styles.Theme
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	busy  bool
	ready bool
	err   error
}

// New creates the chat screen. history may be nil to disable
// persistence.
func New(orch *chat.Orchestrator, hist *storage.History) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask, or tell me what to create, find, or change..."
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)

	return Model{
		orch:       orch,
		transcript: model.NewTranscript(),
		history:    hist,
		theme:      styles.NewTheme(),
		input:      ti,
		spin:       sp,
		renderer:   renderer,
	}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// =============================================================================
// MESSAGES
// =============================================================================

// replyMsg signals that the orchestrator finished one turn.
type replyMsg struct{}

// saveErrMsg carries a failed history write.
type saveErrMsg struct{ err error }

// submit hands the input line to the orchestrator off the UI goroutine.
func (m *Model) submit(text string) tea.Cmd {
	orch, tr, hist := m.orch, m.transcript, m.history
	return func() tea.Msg {
		orch.Handle(context.Background(), tr, text)
		if hist != nil {
			if err := hist.Save(tr); err != nil {
				return saveErrMsg{err: err}
			}
		}
		return replyMsg{}
	}
}
