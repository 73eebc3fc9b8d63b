// anyhub - a chat-driven client for your knowledge base.
//
// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/corvid-labs/anyhub/internal/anytype"
	"github.com/corvid-labs/anyhub/internal/chat"
	"github.com/corvid-labs/anyhub/internal/cli"
	"github.com/corvid-labs/anyhub/internal/config"
	"github.com/corvid-labs/anyhub/internal/execute"
	"github.com/corvid-labs/anyhub/internal/llm"
	"github.com/corvid-labs/anyhub/internal/storage"
	"github.com/corvid-labs/anyhub/internal/translate"
	"github.com/corvid-labs/anyhub/internal/ui/chatui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd, args := cli.ParseArgs(os.Args[1:])

	// The TUI needs a terminal; fall back to the REPL when piped.
	if cmd == cli.CmdTUI && !term.IsTerminal(int(os.Stdout.Fd())) {
		cmd = cli.CmdRepl
	}

	if cmd == cli.CmdTUI {
		os.Exit(runTUI(ctx, cfg, args))
	}

	app := cli.NewApp(cfg, os.Stdout, os.Stderr)
	os.Exit(app.Run(ctx, cmd, args))
}

// runTUI wires the pipeline and starts the full-screen chat interface.
func runTUI(ctx context.Context, cfg *config.Config, args cli.Args) int {
	if args.Model != "" {
		cfg.LLM.Model = args.Model
	}
	if args.Space != "" {
		cfg.Anytype.SpaceID = args.Space
	}

	provider, err := llm.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	client := anytype.NewClient(cfg.Anytype.Endpoint, cfg.Anytype.APIKey)
	orch := chat.NewOrchestrator(
		provider,
		translate.NewTranslator(provider),
		execute.NewExecutor(client, cfg.Anytype.SpaceID),
	)

	hist := openHistory(cfg)

	// Reload configuration on file changes so key or endpoint edits
	// apply to the next message without a restart.
	if path, err := config.Path(); err == nil {
		if w, err := config.Watch(path, func(next *config.Config) { *cfg = *next }); err == nil {
			defer func() { _ = w.Close() }()
		}
	}

	p := tea.NewProgram(
		chatui.New(orch, hist),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openHistory opens the session store, best-effort.
func openHistory(cfg *config.Config) *storage.History {
	dir := cfg.History.Dir
	if dir == "" {
		cfgDir, err := config.Dir()
		if err != nil {
			return nil
		}
		dir = filepath.Join(cfgDir, "history")
	}
	hist, err := storage.NewHistory(dir, cfg.History.MaxSessions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: session persistence disabled: %v\n", err)
		return nil
	}
	return hist
}
