// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"reflect"
	"testing"

	"github.com/corvid-labs/anyhub/internal/storage"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCmd  Command
		wantArgs func(Args) bool
	}{
		{
			"no args starts the TUI",
			nil, CmdTUI,
			func(a Args) bool { return true },
		},
		{
			"ask joins the query",
			[]string{"ask", "create", "a", "page"}, CmdAsk,
			func(a Args) bool { return a.Query == "create a page" },
		},
		{
			"unknown command falls through to ask",
			[]string{"make", "me", "a", "note"}, CmdAsk,
			func(a Args) bool { return a.Query == "make me a note" },
		},
		{
			"global flags before the command",
			[]string{"--json", "--space", "sp-9", "spaces"}, CmdSpaces,
			func(a Args) bool { return a.JSON && a.Space == "sp-9" },
		},
		{
			"equals-form flags",
			[]string{"--model=gpt-4o", "ask", "hi"}, CmdAsk,
			func(a Args) bool { return a.Model == "gpt-4o" },
		},
		{
			"objects subcommand and raw args",
			[]string{"objects", "get", "obj-1"}, CmdObjects,
			func(a Args) bool {
				return a.Subcommand == "get" && reflect.DeepEqual(a.Raw, []string{"obj-1"})
			},
		},
		{
			"templates use with detail words",
			[]string{"templates", "use", "tpl_1", "standup", "notes"}, CmdTemplates,
			func(a Args) bool {
				return a.Subcommand == "use" && reflect.DeepEqual(a.Raw, []string{"tpl_1", "standup", "notes"})
			},
		},
		{
			"config set with spaced value",
			[]string{"config", "set", "llm.model", "llama3.2:3b"}, CmdConfig,
			func(a Args) bool {
				return a.Subcommand == "set" && a.ConfigKey == "llm.model" && a.ConfigVal == "llama3.2:3b"
			},
		},
		{
			"bare config defaults to show",
			[]string{"config"}, CmdConfig,
			func(a Args) bool { return a.Subcommand == "show" },
		},
		{
			"mcp transport and port",
			[]string{"mcp", "--transport", "http", "--port", "9000"}, CmdMCP,
			func(a Args) bool { return a.Transport == "http" && a.Port == "9000" },
		},
		{
			"mcp defaults to stdio",
			[]string{"mcp"}, CmdMCP,
			func(a Args) bool { return a.Transport == "stdio" && a.Port == "8081" },
		},
		{
			"chat aliases repl",
			[]string{"chat"}, CmdRepl,
			func(a Args) bool { return true },
		},
		{
			"version flag",
			[]string{"--version"}, CmdVersion,
			func(a Args) bool { return true },
		},
		{
			"help",
			[]string{"help"}, CmdHelp,
			func(a Args) bool { return true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.args)
			if cmd != tt.wantCmd {
				t.Errorf("command = %v, want %v", cmd, tt.wantCmd)
			}
			if !tt.wantArgs(args) {
				t.Errorf("args = %+v", args)
			}
		})
	}
}

func TestTemplateSessionCarriesLink(t *testing.T) {
	tpl := storage.Template{
		ID:     "tpl_1",
		Title:  "Daily note",
		Prompt: "Create a note titled with today's date summarizing: ",
	}

	tr := templateTranscript(tpl)
	if tr.LinkedTemplateID != "tpl_1" {
		t.Errorf("LinkedTemplateID = %q", tr.LinkedTemplateID)
	}
	if tr.Title != "Daily note" {
		t.Errorf("Title = %q", tr.Title)
	}

	got := templateOpening(tpl, "standup")
	want := "Create a note titled with today's date summarizing: standup"
	if got != want {
		t.Errorf("opening = %q, want %q", got, want)
	}

	// No detail text: the trailing space of the prompt is trimmed.
	if got := templateOpening(tpl, ""); got != "Create a note titled with today's date summarizing:" {
		t.Errorf("opening without detail = %q", got)
	}
}
