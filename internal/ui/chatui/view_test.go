// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatui

import (
	"strings"
	"testing"

	"github.com/corvid-labs/anyhub/internal/model"
)

func TestStatusBadge(t *testing.T) {
	m := New(nil, nil)

	tests := []struct {
		name   string
		msg    *model.Message
		want   string
		wantNo bool
	}{
		{"plain message has no badge", model.NewAssistantMessage("hi"), "", true},
		{"pending", model.NewPipelineMessage("..."), "running", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badge := m.statusBadge(tt.msg)
			if tt.wantNo {
				if badge != "" {
					t.Errorf("badge = %q, want none", badge)
				}
				return
			}
			if !strings.Contains(badge, tt.want) {
				t.Errorf("badge = %q, want substring %q", badge, tt.want)
			}
		})
	}

	done := model.NewPipelineMessage("...")
	done.MarkSuccess("ok")
	if badge := m.statusBadge(done); !strings.Contains(badge, "done") {
		t.Errorf("success badge = %q", badge)
	}

	failed := model.NewPipelineMessage("...")
	failed.MarkFailed("x", "boom")
	if badge := m.statusBadge(failed); !strings.Contains(badge, "failed") {
		t.Errorf("failed badge = %q", badge)
	}
}

func TestRenderMessageShowsRoleLabel(t *testing.T) {
	m := New(nil, nil)

	user := m.renderMessage(model.NewUserMessage("hello"))
	if !strings.Contains(user, "You") || !strings.Contains(user, "hello") {
		t.Errorf("user render = %q", user)
	}

	assistant := m.renderMessage(model.NewAssistantMessage("hi there"))
	if !strings.Contains(assistant, "Assistant") {
		t.Errorf("assistant render = %q", assistant)
	}
}
