// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"

	"github.com/corvid-labs/anyhub/internal/command"
	"github.com/corvid-labs/anyhub/internal/execute"
	"github.com/corvid-labs/anyhub/internal/llm"
	"github.com/corvid-labs/anyhub/internal/model"
	"github.com/corvid-labs/anyhub/internal/translate"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Translator is the slice of the translation layer the orchestrator uses.
type Translator interface {
	TranslateWithRetry(ctx context.Context, userText string) translate.Result
}

// Executor is the slice of the execution layer the orchestrator uses.
type Executor interface {
	Execute(ctx context.Context, cmd command.Command) execute.Outcome
}

// maxHistoryTurns bounds the conversation context sent to the model.
const maxHistoryTurns = 20

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator routes each user message either through the command
// pipeline or to plain conversation, appending to the transcript and
// mutating the pipeline message in place as state advances.
type Orchestrator struct {
	provider   llm.Provider
	translator Translator
	executor   Executor
}

// NewOrchestrator wires the pipeline stages together.
func NewOrchestrator(provider llm.Provider, tr Translator, ex Executor) *Orchestrator {
	return &Orchestrator{provider: provider, translator: tr, executor: ex}
}

// Handle processes one user message against the transcript. It appends
// the user message and exactly one assistant message, and always leaves
// that assistant message in a terminal state; no failure escapes to the
// caller.
func (o *Orchestrator) Handle(ctx context.Context, tr *model.Transcript, userText string) *model.Message {
	tr.Append(model.NewUserMessage(userText))

	var reply *model.Message
	if ShouldProcessAsCommand(userText) {
		reply = model.NewPipelineMessage("Translating your command...")
		tr.Append(reply)
		o.runPipeline(ctx, reply, userText)
	} else {
		reply = model.NewAssistantMessage("")
		tr.Append(reply)
		o.converse(ctx, tr, reply)
	}

	o.ensureTitle(ctx, tr)
	return reply
}

// runPipeline drives one command-routed message through translation and
// execution. Every transition mutates msg in place so the UI shows one
// evolving bubble. A recover here is the final backstop: whatever blew
// up, the message still reaches a terminal state.
func (o *Orchestrator) runPipeline(ctx context.Context, msg *model.Message, userText string) {
	defer func() {
		if r := recover(); r != nil {
			msg.MarkFailed(msg.Content, fmt.Sprintf("%v", r))
		}
	}()

	res := o.translator.TranslateWithRetry(ctx, userText)
	if !res.Ok() {
		msg.MarkFailed(translationFailureText(res), res.Message)
		return
	}

	msg.Command = res.Command
	msg.Content = fmt.Sprintf("I understood: %s\nExecuting...", res.Command.Summary())

	out := o.executor.Execute(ctx, *res.Command)
	text := execute.FormatOutcome(*res.Command, out)
	if out.Success {
		msg.MarkSuccess(text)
	} else {
		msg.MarkFailed(text, out.Error)
	}
}

// translationFailureText builds the visible text for a failed
// translation. A validation failure still shows what the model
// understood, so the user can rephrase precisely.
func translationFailureText(res translate.Result) string {
	if res.Kind == translate.FailureValidation && res.Candidate != nil {
		return fmt.Sprintf("I understood: %s %v\n\n%s",
			res.Candidate.Action, res.Candidate.Parameters, res.Message)
	}
	return res.Message
}

// converse handles a plain conversational message.
func (o *Orchestrator) converse(ctx context.Context, tr *model.Transcript, msg *model.Message) {
	if o.provider == nil {
		msg.Content = "No chat provider is configured."
		return
	}

	reply, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Messages: historyFor(tr, msg),
	})
	if err != nil {
		msg.Content = fmt.Sprintf("The chat provider returned an error: %v", err)
		return
	}
	msg.Content = reply
}

// historyFor converts recent transcript turns into provider messages,
// excluding the still-empty reply being filled in.
func historyFor(tr *model.Transcript, exclude *model.Message) []llm.Message {
	var msgs []llm.Message
	for _, m := range tr.Messages {
		if m == exclude || m.Content == "" {
			continue
		}
		msgs = append(msgs, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	if len(msgs) > maxHistoryTurns {
		msgs = msgs[len(msgs)-maxHistoryTurns:]
	}
	return msgs
}

// ensureTitle generates a session title after the first exchange,
// best-effort; an untitled transcript falls back to a content preview.
func (o *Orchestrator) ensureTitle(ctx context.Context, tr *model.Transcript) {
	if tr.Title != "" || o.provider == nil {
		return
	}
	first := tr.FirstUserText()
	if first == "" {
		return
	}
	if title, err := llm.GenerateTitle(ctx, o.provider, first); err == nil {
		tr.Title = title
	}
}
