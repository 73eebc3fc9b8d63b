// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and usage text.
package cli

import (
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdRepl
	CmdSpaces
	CmdObjects
	CmdConfig
	CmdDoctor
	CmdMCP
	CmdHistory
	CmdTemplates
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	Model   string
	Space   string

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Transport  string
	Port       string

	// Raw args remaining after parsing
	Raw []string
}

const usageText = `anyhub - chat-driven client for your knowledge base

Anyhub connects a chat model (OpenAI, Anthropic, or local Ollama) to an
Anytype-style object API: describe what you want in plain language and
it is translated into a create/update/delete/search command and run.

Usage:
  anyhub                       Start the chat TUI (default)
  anyhub ask "request"         Translate and execute one request
  anyhub repl                  Line-based interactive session
  anyhub spaces                List spaces
  anyhub objects list          List objects in the selected space
  anyhub objects get <id>      Show one object
  anyhub objects search <q>    Search objects
  anyhub objects backlinks <id> Show objects referencing <id>
  anyhub history [search <q>]  List or search saved sessions
  anyhub templates             List prompt templates
  anyhub templates use <id>    Start a session from a template
  anyhub config [show|get|set] Configuration
  anyhub doctor                Connectivity and configuration checks
  anyhub mcp                   Serve the hub over MCP (stdio or http)
  anyhub version               Print version

Flags:
  -q, --quiet       Suppress non-essential output
  -v, --verbose     Verbose output
  --json            Output JSON where supported
  --model NAME      Override the configured model
  --space ID        Override the configured space
  --transport MODE  MCP transport: stdio or http (mcp command)
  --port PORT       MCP HTTP port (default 8081)

Examples:
  anyhub ask "create a page called Q3 Roadmap"
  anyhub ask "search for meeting notes"
  anyhub objects search roadmap --json
  anyhub config set llm.provider anthropic
  anyhub mcp --transport http --port 9000
`

// Usage returns the full help text.
func Usage() string {
	return usageText
}

// ParseArgs parses os.Args[1:] into a command and its arguments. It
// never prints or exits.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := remaining[0]
	rest := remaining[1:]

	switch cmd {
	case "ask":
		parsed.Query = strings.Join(rest, " ")
		return CmdAsk, parsed

	case "repl", "chat":
		return CmdRepl, parsed

	case "spaces":
		return CmdSpaces, parsed

	case "objects", "obj":
		if len(rest) > 0 {
			parsed.Subcommand = rest[0]
			parsed.Raw = rest[1:]
		}
		return CmdObjects, parsed

	case "history", "sessions":
		if len(rest) > 0 {
			parsed.Subcommand = rest[0]
			parsed.Raw = rest[1:]
		}
		return CmdHistory, parsed

	case "templates", "tpl":
		if len(rest) > 0 {
			parsed.Subcommand = rest[0]
			parsed.Raw = rest[1:]
		}
		return CmdTemplates, parsed

	case "config":
		parseConfigArgs(&parsed, rest)
		return CmdConfig, parsed

	case "doctor":
		return CmdDoctor, parsed

	case "mcp", "serve":
		return CmdMCP, parsed

	case "version", "-v", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		// Unknown command: treat the whole line as a natural-language
		// request, same as ask.
		parsed.Query = strings.Join(remaining, " ")
		return CmdAsk, parsed
	}
}

// parseGlobalFlags extracts global flags and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsed := Args{Transport: "stdio", Port: "8081"}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "--verbose":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		case "--model":
			if i+1 < len(args) {
				i++
				parsed.Model = args[i]
			}
		case "--space":
			if i+1 < len(args) {
				i++
				parsed.Space = args[i]
			}
		case "--transport":
			if i+1 < len(args) {
				i++
				parsed.Transport = args[i]
			}
		case "--port":
			if i+1 < len(args) {
				i++
				parsed.Port = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--model="):
				parsed.Model = strings.TrimPrefix(arg, "--model=")
			case strings.HasPrefix(arg, "--space="):
				parsed.Space = strings.TrimPrefix(arg, "--space=")
			case strings.HasPrefix(arg, "--transport="):
				parsed.Transport = strings.TrimPrefix(arg, "--transport=")
			case strings.HasPrefix(arg, "--port="):
				parsed.Port = strings.TrimPrefix(arg, "--port=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsed
}

// parseConfigArgs handles "config [show|get KEY|set KEY VALUE]".
func parseConfigArgs(parsed *Args, rest []string) {
	if len(rest) == 0 {
		parsed.Subcommand = "show"
		return
	}
	parsed.Subcommand = rest[0]
	if len(rest) > 1 {
		parsed.ConfigKey = rest[1]
	}
	if len(rest) > 2 {
		parsed.ConfigVal = strings.Join(rest[2:], " ")
	}
}
