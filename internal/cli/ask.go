// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - one-shot ask and the line-based REPL.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterh/liner"

	"github.com/corvid-labs/anyhub/internal/chat"
	"github.com/corvid-labs/anyhub/internal/model"
)

// runAsk translates and executes one request, or answers it as
// conversation when it does not look like a command.
func (a *App) runAsk(ctx context.Context, args Args) int {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return a.fail("provide a request, e.g. anyhub ask \"list all objects\"")
	}

	orch := chat.NewOrchestrator(a.provider(), a.translator(), a.executor())
	tr := model.NewTranscript()
	msg := orch.Handle(ctx, tr, query)

	if args.JSON && msg.IsCommand() {
		return a.printAskJSON(msg)
	}

	fmt.Fprintln(a.out, msg.Content)
	if msg.ExecutionStatus == model.ExecFailed {
		return 1
	}
	return 0
}

func (a *App) printAskJSON(msg *model.Message) int {
	out := map[string]any{
		"status": msg.ExecutionStatus,
		"text":   msg.Content,
	}
	if msg.Command != nil {
		out["action"] = msg.Command.Action
		out["parameters"] = msg.Command.Parameters
	}
	if msg.ExecutionError != "" {
		out["error"] = msg.ExecutionError
	}
	if err := a.printJSON(out); err != nil {
		return a.fail("%v", err)
	}
	if msg.ExecutionStatus == model.ExecFailed {
		return 1
	}
	return 0
}

// runRepl runs a line-based interactive session with history and
// persistence; the full-screen TUI is the richer surface, this one
// works over ssh and in scripts.
func (a *App) runRepl(ctx context.Context, _ Args) int {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)

	orch := chat.NewOrchestrator(a.provider(), a.translator(), a.executor())
	tr := model.NewTranscript()

	hist, histErr := a.history()
	if histErr != nil {
		fmt.Fprintf(a.err, "warning: session persistence disabled: %v\n", histErr)
	}

	fmt.Fprintln(a.out, "anyhub repl - type a request, /help for commands, /quit to exit")

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			break // EOF or interrupt
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if a.replCommand(input, tr) {
				break
			}
			continue
		}

		msg := orch.Handle(ctx, tr, input)
		fmt.Fprintln(a.out, msg.Content)

		if hist != nil {
			if err := hist.Save(tr); err != nil {
				fmt.Fprintf(a.err, "warning: could not save session: %v\n", err)
			}
		}
	}

	return 0
}

// replCommand handles slash commands; returns true to exit the loop.
func (a *App) replCommand(input string, tr *model.Transcript) bool {
	switch input {
	case "/quit", "/exit", "/q":
		return true
	case "/new":
		*tr = *model.NewTranscript()
		fmt.Fprintln(a.out, "Started a new session.")
	case "/id":
		fmt.Fprintln(a.out, tr.ID)
	case "/help":
		fmt.Fprintln(a.out, "/new   start a new session\n/id    show the session id\n/quit  exit")
	default:
		fmt.Fprintf(a.out, "Unknown command %s (try /help)\n", input)
	}
	return false
}
