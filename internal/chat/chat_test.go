// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/corvid-labs/anyhub/internal/command"
	"github.com/corvid-labs/anyhub/internal/execute"
	"github.com/corvid-labs/anyhub/internal/llm"
	"github.com/corvid-labs/anyhub/internal/model"
	"github.com/corvid-labs/anyhub/internal/translate"
)

func TestShouldProcessAsCommand(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Create a new page about taxes", true},
		{"delete the old draft", true},
		{"Search for meeting notes", true},
		{"list all objects", true},
		{"LINK obj_1 to obj_2", true},
		{"organize my notes by topic", true},
		{"please create a note", true}, // infix phrase
		{"what do you think about taxes?", false},
		{"I created a page yesterday", false},
		{"the weather is nice", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ShouldProcessAsCommand(tt.text); got != tt.want {
				t.Errorf("ShouldProcessAsCommand(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// scripted pipeline fakes

type fakeTranslator struct {
	res   translate.Result
	calls int
}

func (f *fakeTranslator) TranslateWithRetry(context.Context, string) translate.Result {
	f.calls++
	return f.res
}

type fakeExecutor struct {
	out   execute.Outcome
	calls int
	panic bool
}

func (f *fakeExecutor) Execute(context.Context, command.Command) execute.Outcome {
	f.calls++
	if f.panic {
		panic("executor exploded")
	}
	return f.out
}

type fakeChatProvider struct {
	reply string
	calls int
}

func (f *fakeChatProvider) Name() string                                    { return "fake" }
func (f *fakeChatProvider) ValidateKey(context.Context) error               { return nil }
func (f *fakeChatProvider) ListModels(context.Context) ([]llm.Model, error) { return nil, nil }

func (f *fakeChatProvider) Complete(context.Context, llm.CompletionRequest) (string, error) {
	f.calls++
	return f.reply, nil
}

func okCommand(t *testing.T) *command.Command {
	t.Helper()
	cmd, err := command.Validate(command.Candidate{
		Action:     command.ActionListObjects,
		Parameters: map[string]string{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &cmd
}

func TestHandleCommandSuccess(t *testing.T) {
	tr := model.NewTranscript()
	ft := &fakeTranslator{res: translate.Result{Command: okCommand(t)}}
	fe := &fakeExecutor{out: execute.Outcome{
		Success: true,
		Message: "Listed 0 object(s)",
		Data:    map[string]any{"objectCount": 0},
	}}

	o := NewOrchestrator(&fakeChatProvider{reply: "title"}, ft, fe)
	msg := o.Handle(context.Background(), tr, "list all objects")

	if tr.Len() != 2 {
		t.Fatalf("transcript length = %d, want user + one pipeline message", tr.Len())
	}
	if msg.ExecutionStatus != model.ExecSuccess {
		t.Errorf("status = %q", msg.ExecutionStatus)
	}
	if ft.calls != 1 || fe.calls != 1 {
		t.Errorf("translator=%d executor=%d", ft.calls, fe.calls)
	}
	if !strings.Contains(msg.Content, "I understood:") {
		t.Errorf("content = %q", msg.Content)
	}
}

func TestHandleTranslationFailureIsTerminalWithoutExecution(t *testing.T) {
	tr := model.NewTranscript()
	ft := &fakeTranslator{res: translate.Result{
		Kind:    translate.FailureParse,
		Message: "failed to parse AI response as valid MCP command",
	}}
	fe := &fakeExecutor{}

	o := NewOrchestrator(nil, ft, fe)
	msg := o.Handle(context.Background(), tr, "create a page")

	if msg.ExecutionStatus != model.ExecFailed {
		t.Errorf("status = %q", msg.ExecutionStatus)
	}
	if msg.ExecutionError != "failed to parse AI response as valid MCP command" {
		t.Errorf("execution error = %q", msg.ExecutionError)
	}
	if fe.calls != 0 {
		t.Error("executor must not run after failed translation")
	}
}

func TestHandleValidationFailureShowsUnderstoodText(t *testing.T) {
	tr := model.NewTranscript()
	cand := &command.Candidate{Action: "DELETE_OBJECT", Parameters: map[string]string{}}
	ft := &fakeTranslator{res: translate.Result{
		Kind:      translate.FailureValidation,
		Message:   "Validation failed: DELETE_OBJECT: missing required parameter object_id",
		Candidate: cand,
	}}

	o := NewOrchestrator(nil, ft, &fakeExecutor{})
	msg := o.Handle(context.Background(), tr, "delete it")

	if !strings.Contains(msg.Content, "I understood: DELETE_OBJECT") {
		t.Errorf("content = %q; validation failures must show what was understood", msg.Content)
	}
	if !strings.Contains(msg.Content, "Validation failed:") {
		t.Errorf("content = %q", msg.Content)
	}
}

func TestHandleExecutionFailureKeepsUnderstoodText(t *testing.T) {
	tr := model.NewTranscript()
	ft := &fakeTranslator{res: translate.Result{Command: okCommand(t)}}
	fe := &fakeExecutor{out: execute.Outcome{Success: false, Error: "object not found"}}

	o := NewOrchestrator(nil, ft, fe)
	msg := o.Handle(context.Background(), tr, "show my notes")

	if msg.ExecutionStatus != model.ExecFailed || msg.ExecutionError != "object not found" {
		t.Errorf("msg = %+v", msg)
	}
	if !strings.Contains(msg.Content, "I understood:") {
		t.Errorf("content = %q", msg.Content)
	}
}

func TestHandlePanicBackstop(t *testing.T) {
	tr := model.NewTranscript()
	ft := &fakeTranslator{res: translate.Result{Command: okCommand(t)}}
	fe := &fakeExecutor{panic: true}

	o := NewOrchestrator(nil, ft, fe)
	msg := o.Handle(context.Background(), tr, "list everything")

	if msg.ExecutionStatus != model.ExecFailed {
		t.Errorf("status = %q; panics must end in a terminal failed state", msg.ExecutionStatus)
	}
	if !strings.Contains(msg.ExecutionError, "executor exploded") {
		t.Errorf("execution error = %q", msg.ExecutionError)
	}
}

func TestHandleConversationBypassesPipeline(t *testing.T) {
	tr := model.NewTranscript()
	ft := &fakeTranslator{}
	fe := &fakeExecutor{}
	fp := &fakeChatProvider{reply: "Taxes fund public services."}

	o := NewOrchestrator(fp, ft, fe)
	msg := o.Handle(context.Background(), tr, "what do you think about taxes?")

	if ft.calls != 0 || fe.calls != 0 {
		t.Error("conversation must not touch translator or executor")
	}
	if msg.IsCommand() {
		t.Error("conversation reply must carry no pipeline status")
	}
	if msg.Content != "Taxes fund public services." {
		t.Errorf("content = %q", msg.Content)
	}
}

func TestHandleGeneratesTitleOnce(t *testing.T) {
	tr := model.NewTranscript()
	fp := &fakeChatProvider{reply: "Tax Questions"}
	o := NewOrchestrator(fp, &fakeTranslator{}, &fakeExecutor{})

	o.Handle(context.Background(), tr, "tell me about taxes")
	if tr.Title != "Tax Questions" {
		t.Errorf("title = %q", tr.Title)
	}

	calls := fp.calls
	o.Handle(context.Background(), tr, "and about deductions?")
	// One chat completion for the reply, none for a second title.
	if fp.calls != calls+1 {
		t.Errorf("provider calls = %d, want %d", fp.calls, calls+1)
	}
}
