// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatui

import (
	"fmt"
	"strings"

	"github.com/corvid-labs/anyhub/internal/model"
	"github.com/corvid-labs/anyhub/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.theme.InputContainer.Width(m.theme.Width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m Model) headerView() string {
	title := m.theme.HeaderTitle.Render("anyhub")
	session := m.theme.StatusHint.Render(
		util.TruncateWidth(m.transcript.DisplayTitle(), 48))
	return m.theme.Header.Width(m.theme.Width).Render(title + "  " + session)
}

func (m Model) statusView() string {
	var status string
	switch {
	case m.err != nil:
		status = m.theme.ErrorText.Render(fmt.Sprintf("save failed: %v", m.err))
	case m.busy:
		status = m.theme.PipelinePending.Render(m.spin.View() + " working...")
	default:
		status = m.theme.StatusHint.Render("enter: send  ctrl+n: new session  esc: quit")
	}
	return m.theme.StatusBar.Width(m.theme.Width).Render(status)
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for i, msg := range m.transcript.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// renderMessage renders one transcript message as a labeled block.
func (m *Model) renderMessage(msg *model.Message) string {
	var label, body string

	switch msg.Role {
	case model.RoleUser:
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
		body = m.theme.UserBubble.Render(msg.Content)
	default:
		label = m.theme.AssistantLabel.Render(msg.Role.DisplayName())
		body = m.renderAssistantBody(msg)
	}

	if badge := m.statusBadge(msg); badge != "" {
		label += " " + badge
	}
	return label + "\n" + body
}

// renderAssistantBody renders assistant content through glamour when
// possible, falling back to plain text.
func (m *Model) renderAssistantBody(msg *model.Message) string {
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Content); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return m.theme.AssistantText.Render(msg.Content)
}

// statusBadge marks command-routed messages with their pipeline state.
func (m *Model) statusBadge(msg *model.Message) string {
	switch msg.ExecutionStatus {
	case model.ExecPending:
		return m.theme.PipelinePending.Render("[running]")
	case model.ExecSuccess:
		return m.theme.PipelineSuccess.Render("[done]")
	case model.ExecFailed:
		return m.theme.PipelineFailed.Render("[failed]")
	default:
		return ""
	}
}
