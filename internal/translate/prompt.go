// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package translate

import (
	"fmt"
	"strings"

	"github.com/corvid-labs/anyhub/internal/command"
)

// =============================================================================
// SYSTEM PROMPT
// =============================================================================

const promptHeader = `You translate user requests about a personal knowledge base into structured commands.

Reply with exactly one JSON object of the form:

{"action": "<ACTION>", "parameters": {"<key>": "<value>"}, "description": "<one line>"}

Reply with the JSON object only. No explanations, no markdown fences.

Supported actions:`

const promptFooter = `
Rules:
- Choose exactly one action. If several could apply, pick the most specific.
- Include every required parameter. Omit parameters the user did not imply.
- Parameter values are always strings.
- Do not invent object IDs; only use IDs the user stated verbatim.`

// SystemPrompt renders the instruction prompt from the command rule
// table, so the prompt and the validator can never drift apart.
func SystemPrompt() string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n")

	for _, action := range command.Actions() {
		rule, ok := command.RuleFor(action)
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s\n", action))
		for _, p := range rule.Params {
			req := "optional"
			if p.Required {
				req = "required"
			}
			sb.WriteString(fmt.Sprintf("  - %s (%s): %s\n", p.Name, req, p.Description))
		}
		if rule.Example != "" {
			sb.WriteString(fmt.Sprintf("  Example: %s\n", rule.Example))
		}
	}

	sb.WriteString(promptFooter)
	return sb.String()
}
