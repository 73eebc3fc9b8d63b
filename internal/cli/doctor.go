// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - config, doctor, and MCP serve handlers.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corvid-labs/anyhub/internal/config"
	"github.com/corvid-labs/anyhub/internal/mcpserver"
)

// runConfig handles show/get/set against the config file.
func (a *App) runConfig(args Args) int {
	switch args.Subcommand {
	case "", "show":
		keys := a.cfg.Keys()
		sort.Strings(keys)
		for _, key := range keys {
			val, err := a.cfg.Get(key)
			if err != nil {
				continue
			}
			fmt.Fprintf(a.out, "%-28s %s\n", key, val)
		}
		return 0

	case "get":
		if args.ConfigKey == "" {
			return a.fail("usage: anyhub config get <key>")
		}
		val, err := a.cfg.Get(args.ConfigKey)
		if err != nil {
			return a.fail("%v", err)
		}
		fmt.Fprintln(a.out, val)
		return 0

	case "set":
		if args.ConfigKey == "" {
			return a.fail("usage: anyhub config set <key> <value>")
		}
		if err := a.cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			return a.fail("%v", err)
		}
		if err := a.cfg.Save(); err != nil {
			return a.fail("%v", err)
		}
		fmt.Fprintf(a.out, "Set %s.\n", args.ConfigKey)
		return 0

	case "path":
		path, err := config.Path()
		if err != nil {
			return a.fail("%v", err)
		}
		fmt.Fprintln(a.out, path)
		return 0

	default:
		return a.fail("unknown config subcommand %q (show, get, set, path)", args.Subcommand)
	}
}

// runDoctor checks configuration and connectivity end to end. Each check
// prints pass/fail and the command exits nonzero if any check failed.
func (a *App) runDoctor(ctx context.Context) int {
	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Fprintf(a.out, "[FAIL] %-24s %v\n", name, err)
			return
		}
		fmt.Fprintf(a.out, "[ ok ] %s\n", name)
	}

	path, err := config.Path()
	check("config file", err)
	if err == nil {
		fmt.Fprintf(a.out, "       %s\n", path)
	}

	fmt.Fprintf(a.out, "       provider: %s, model: %s, key: %s\n",
		a.cfg.LLM.Provider, a.cfg.LLM.Model, config.MaskKey(a.cfg.ProviderAPIKey()))

	p := a.provider()
	if p == nil {
		failed++
		fmt.Fprintf(a.out, "[FAIL] %-24s unknown provider %q\n", "chat provider", a.cfg.LLM.Provider)
	} else {
		vctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		check("chat provider key", p.ValidateKey(vctx))
		cancel()
	}

	fmt.Fprintf(a.out, "       endpoint: %s, key: %s, space: %s\n",
		a.cfg.Anytype.Endpoint, config.MaskKey(a.cfg.Anytype.APIKey), a.cfg.Anytype.SpaceID)
	check("object API reachable", a.objectClient().CheckReachable(ctx))

	if failed > 0 {
		fmt.Fprintf(a.out, "%d check(s) failed\n", failed)
		return 1
	}
	fmt.Fprintln(a.out, "All checks passed.")
	return 0
}

// runMCP serves the hub over the Model Context Protocol.
func (a *App) runMCP(ctx context.Context, args Args) int {
	newServer := func() *mcp.Server {
		return mcpserver.New(Version, a.objectClient(), a.translator(), a.cfg.Anytype.SpaceID)
	}

	switch args.Transport {
	case "stdio":
		if err := newServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
			return a.fail("mcp server: %v", err)
		}
		return 0

	case "http":
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return newServer()
		}, nil)
		addr := ":" + args.Port
		fmt.Fprintf(a.out, "Serving MCP over HTTP on %s\n", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			return a.fail("mcp server: %v", err)
		}
		return 0

	default:
		return a.fail("unknown transport %q (use stdio or http)", args.Transport)
	}
}
