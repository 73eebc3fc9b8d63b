// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package execute

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corvid-labs/anyhub/internal/anytype"
	"github.com/corvid-labs/anyhub/internal/command"
)

// =============================================================================
// OUTCOME FORMATTING
// =============================================================================

// FormatOutcome renders an outcome as chat-ready text. It is a pure
// function of its inputs; formatting the same outcome twice yields the
// same text.
func FormatOutcome(cmd command.Command, out Outcome) string {
	if !out.Success {
		return fmt.Sprintf("I understood: %s\n\nBut it failed: %s", cmd.Summary(), out.Error)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "I understood: %s\n\n", cmd.Summary())

	switch cmd.Action {
	case command.ActionSearchObjects:
		formatObjectList(&sb, out, "results", "No matching objects.")
	case command.ActionListObjects:
		formatObjectList(&sb, out, "objects", "The space is empty.")
	case command.ActionGetObject:
		formatObjectDetail(&sb, out)
	default:
		sb.WriteString(out.Message)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatObjectList(sb *strings.Builder, out Outcome, key, emptyText string) {
	sb.WriteString(out.Message)
	objs, _ := out.Data[key].([]anytype.Object)
	if len(objs) == 0 {
		sb.WriteString("\n" + emptyText)
		return
	}
	for _, o := range objs {
		name := o.Name
		if name == "" {
			name = "(untitled)"
		}
		fmt.Fprintf(sb, "\n- %s (%s)", name, o.ID)
	}
}

func formatObjectDetail(sb *strings.Builder, out Outcome) {
	sb.WriteString(out.Message)
	obj, _ := out.Data["object"].(*anytype.Object)
	if obj == nil {
		return
	}
	if obj.TypeKey != "" {
		fmt.Fprintf(sb, "\nType: %s", obj.TypeKey)
	}
	keys := make([]string, 0, len(obj.Properties))
	for k := range obj.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, "\n%s: %v", k, obj.Properties[k])
	}
	if obj.Body != "" {
		fmt.Fprintf(sb, "\n\n%s", obj.Body)
	}
}
