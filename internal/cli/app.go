// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - command dispatch and shared wiring for the CLI handlers.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"

	"github.com/corvid-labs/anyhub/internal/anytype"
	"github.com/corvid-labs/anyhub/internal/config"
	"github.com/corvid-labs/anyhub/internal/execute"
	"github.com/corvid-labs/anyhub/internal/llm"
	"github.com/corvid-labs/anyhub/internal/storage"
	"github.com/corvid-labs/anyhub/internal/translate"
)

// App holds the wiring shared by the CLI command handlers.
type App struct {
	cfg *config.Config
	out io.Writer
	err io.Writer
}

// NewApp creates the CLI application around a loaded configuration.
func NewApp(cfg *config.Config, out, errOut io.Writer) *App {
	return &App{cfg: cfg, out: out, err: errOut}
}

// Run dispatches one parsed command and returns a process exit code.
func (a *App) Run(ctx context.Context, cmd Command, args Args) int {
	a.applyOverrides(args)

	switch cmd {
	case CmdAsk:
		return a.runAsk(ctx, args)
	case CmdRepl:
		return a.runRepl(ctx, args)
	case CmdSpaces:
		return a.runSpaces(ctx, args)
	case CmdObjects:
		return a.runObjects(ctx, args)
	case CmdHistory:
		return a.runHistory(args)
	case CmdTemplates:
		return a.runTemplates(ctx, args)
	case CmdConfig:
		return a.runConfig(args)
	case CmdDoctor:
		return a.runDoctor(ctx)
	case CmdMCP:
		return a.runMCP(ctx, args)
	case CmdVersion:
		fmt.Fprintf(a.out, "anyhub %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return 0
	case CmdHelp:
		fmt.Fprint(a.out, Usage())
		return 0
	default:
		fmt.Fprint(a.err, Usage())
		return 2
	}
}

// applyOverrides folds flag overrides into the working configuration.
func (a *App) applyOverrides(args Args) {
	if args.Model != "" {
		a.cfg.LLM.Model = args.Model
	}
	if args.Space != "" {
		a.cfg.Anytype.SpaceID = args.Space
	}
}

// =============================================================================
// WIRING
// =============================================================================

func (a *App) objectClient() *anytype.Client {
	return anytype.NewClient(a.cfg.Anytype.Endpoint, a.cfg.Anytype.APIKey)
}

func (a *App) provider() llm.Provider {
	p, err := llm.New(a.cfg)
	if err != nil {
		return nil
	}
	return p
}

func (a *App) translator() *translate.Translator {
	return translate.NewTranslator(a.provider())
}

func (a *App) executor() *execute.Executor {
	return execute.NewExecutor(a.objectClient(), a.cfg.Anytype.SpaceID)
}

func (a *App) history() (*storage.History, error) {
	dir := a.cfg.History.Dir
	if dir == "" {
		cfgDir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(cfgDir, "history")
	}
	return storage.NewHistory(dir, a.cfg.History.MaxSessions)
}

func (a *App) templates() (*storage.Templates, error) {
	cfgDir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return storage.NewTemplates(filepath.Join(cfgDir, "templates"))
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printJSON writes v as indented JSON, syntax-highlighted when stdout is
// a terminal.
func (a *App) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if f, ok := a.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if err := quick.Highlight(a.out, string(data)+"\n", "json", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func (a *App) fail(format string, args ...any) int {
	fmt.Fprintf(a.err, "Error: "+format+"\n", args...)
	return 1
}
