// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// objects.go - handlers for spaces, objects, history, and templates.
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corvid-labs/anyhub/internal/chat"
	"github.com/corvid-labs/anyhub/internal/config"
	"github.com/corvid-labs/anyhub/internal/index"
	"github.com/corvid-labs/anyhub/internal/model"
	"github.com/corvid-labs/anyhub/internal/storage"
	"github.com/corvid-labs/anyhub/internal/util"
)

// runSpaces lists the spaces visible to the configured key.
func (a *App) runSpaces(ctx context.Context, args Args) int {
	spaces, err := a.objectClient().ListSpaces(ctx)
	if err != nil {
		return a.fail("%v", err)
	}

	if args.JSON {
		if err := a.printJSON(spaces); err != nil {
			return a.fail("%v", err)
		}
		return 0
	}

	if len(spaces) == 0 {
		fmt.Fprintln(a.out, "No spaces found.")
		return 0
	}
	for _, s := range spaces {
		marker := " "
		if s.ID == a.cfg.Anytype.SpaceID {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s\n", marker, s.ID, s.Name)
	}
	return 0
}

// runObjects dispatches the objects subcommands.
func (a *App) runObjects(ctx context.Context, args Args) int {
	spaceID := a.cfg.Anytype.SpaceID

	switch args.Subcommand {
	case "", "list":
		objects, err := a.objectClient().ListObjects(ctx, spaceID)
		if err != nil {
			return a.fail("%v", err)
		}
		if args.JSON {
			if err := a.printJSON(objects); err != nil {
				return a.fail("%v", err)
			}
			return 0
		}
		for _, o := range objects {
			name := o.Name
			if name == "" {
				name = "(untitled)"
			}
			fmt.Fprintf(a.out, "%s  %-10s %s\n", o.ID, o.TypeKey, util.Truncate(name, 60))
		}
		fmt.Fprintf(a.out, "%d object(s)\n", len(objects))
		return 0

	case "get", "show":
		if len(args.Raw) == 0 {
			return a.fail("usage: anyhub objects get <object-id>")
		}
		obj, err := a.objectClient().GetObject(ctx, spaceID, args.Raw[0])
		if err != nil {
			return a.fail("%v", err)
		}
		if err := a.printJSON(obj); err != nil {
			return a.fail("%v", err)
		}
		return 0

	case "search", "find":
		query := strings.Join(args.Raw, " ")
		if query == "" {
			return a.fail("usage: anyhub objects search <query>")
		}
		results, err := a.objectClient().SearchObjects(ctx, spaceID, query)
		if err != nil {
			return a.fail("%v", err)
		}
		if args.JSON {
			if err := a.printJSON(results); err != nil {
				return a.fail("%v", err)
			}
			return 0
		}
		for _, o := range results {
			fmt.Fprintf(a.out, "%s  %s\n", o.ID, util.Truncate(o.Name, 70))
		}
		fmt.Fprintf(a.out, "%d result(s) for %q\n", len(results), query)
		return 0

	case "backlinks", "refs":
		if len(args.Raw) == 0 {
			return a.fail("usage: anyhub objects backlinks <object-id>")
		}
		return a.runBacklinks(ctx, spaceID, args.Raw[0])

	default:
		return a.fail("unknown objects subcommand %q (list, get, search, backlinks)", args.Subcommand)
	}
}

// runBacklinks rebuilds the local reverse-reference index from the
// current space and answers "what points at this object".
func (a *App) runBacklinks(ctx context.Context, spaceID, objectID string) int {
	objects, err := a.objectClient().ListObjects(ctx, spaceID)
	if err != nil {
		return a.fail("%v", err)
	}

	cfgDir, err := config.Dir()
	if err != nil {
		return a.fail("%v", err)
	}
	ix, err := index.Open(filepath.Join(cfgDir, "index.db"))
	if err != nil {
		return a.fail("%v", err)
	}
	defer func() { _ = ix.Close() }()

	if err := ix.Refresh(ctx, objects); err != nil {
		return a.fail("%v", err)
	}
	links, err := ix.Backlinks(ctx, objectID)
	if err != nil {
		return a.fail("%v", err)
	}

	if len(links) == 0 {
		fmt.Fprintf(a.out, "Nothing references %s.\n", objectID)
		return 0
	}
	for _, bl := range links {
		fmt.Fprintf(a.out, "%s  (%s)\n", bl.SourceID, bl.Kind)
	}
	return 0
}

// runHistory lists, searches, or deletes saved sessions.
func (a *App) runHistory(args Args) int {
	hist, err := a.history()
	if err != nil {
		return a.fail("%v", err)
	}

	switch args.Subcommand {
	case "", "list":
		sessions, err := hist.List()
		if err != nil {
			return a.fail("%v", err)
		}
		for _, tr := range sessions {
			fmt.Fprintf(a.out, "%s  %s (%d messages)\n",
				tr.ID, util.Truncate(tr.DisplayTitle(), 50), tr.Len())
		}
		fmt.Fprintf(a.out, "%d session(s)\n", len(sessions))
		return 0

	case "search":
		query := strings.Join(args.Raw, " ")
		if query == "" {
			return a.fail("usage: anyhub history search <query>")
		}
		hits, err := hist.Search(query)
		if err != nil {
			return a.fail("%v", err)
		}
		for _, tr := range hits {
			fmt.Fprintf(a.out, "%s  %s\n", tr.ID, util.Truncate(tr.DisplayTitle(), 50))
		}
		return 0

	case "delete", "rm":
		if len(args.Raw) == 0 {
			return a.fail("usage: anyhub history delete <session-id>")
		}
		if err := hist.Delete(args.Raw[0]); err != nil {
			return a.fail("%v", err)
		}
		fmt.Fprintln(a.out, "Deleted.")
		return 0

	default:
		return a.fail("unknown history subcommand %q (list, search, delete)", args.Subcommand)
	}
}

// runTemplates lists, runs, or deletes prompt templates.
func (a *App) runTemplates(ctx context.Context, args Args) int {
	tpls, err := a.templates()
	if err != nil {
		return a.fail("%v", err)
	}

	switch args.Subcommand {
	case "", "list":
		all, err := tpls.List()
		if err != nil {
			return a.fail("%v", err)
		}
		for _, tpl := range all {
			fmt.Fprintf(a.out, "%s  %-24s %s\n", tpl.ID, tpl.Title, util.Truncate(tpl.Prompt, 50))
		}
		return 0

	case "use", "run":
		if len(args.Raw) == 0 {
			return a.fail("usage: anyhub templates use <template-id> [details...]")
		}
		tpl, err := tpls.Get(args.Raw[0])
		if err != nil {
			return a.fail("%v", err)
		}
		return a.runTemplateSession(ctx, tpl, strings.Join(args.Raw[1:], " "))

	case "delete", "rm":
		if len(args.Raw) == 0 {
			return a.fail("usage: anyhub templates delete <template-id>")
		}
		if err := tpls.Delete(args.Raw[0]); err != nil {
			return a.fail("%v", err)
		}
		fmt.Fprintln(a.out, "Deleted.")
		return 0

	default:
		return a.fail("unknown templates subcommand %q (list, use, delete)", args.Subcommand)
	}
}

// runTemplateSession starts a session linked to a template and runs its
// prompt, with any extra detail text appended, through the pipeline.
func (a *App) runTemplateSession(ctx context.Context, tpl storage.Template, detail string) int {
	orch := chat.NewOrchestrator(a.provider(), a.translator(), a.executor())
	tr := templateTranscript(tpl)

	msg := orch.Handle(ctx, tr, templateOpening(tpl, detail))
	fmt.Fprintln(a.out, msg.Content)

	if hist, err := a.history(); err == nil {
		if err := hist.Save(tr); err != nil {
			fmt.Fprintf(a.err, "warning: could not save session: %v\n", err)
		}
	}

	if msg.ExecutionStatus == model.ExecFailed {
		return 1
	}
	return 0
}

// templateTranscript creates a session carrying the template link.
func templateTranscript(tpl storage.Template) *model.Transcript {
	tr := model.NewTranscript()
	tr.LinkedTemplateID = tpl.ID
	tr.Title = tpl.Title
	return tr
}

// templateOpening composes the session's first message from the
// template prompt and the user's detail text.
func templateOpening(tpl storage.Template, detail string) string {
	return strings.TrimSpace(tpl.Prompt + detail)
}
