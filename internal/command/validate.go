// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"fmt"
	"strings"
)

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError explains why a candidate was rejected.
type ValidationError struct {
	Action Action
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks a candidate against the schema and, on success,
// returns the trusted Command. The returned command gets a defaulted
// description when the candidate omitted one.
func Validate(c Candidate) (Command, error) {
	rule, ok := RuleFor(c.Action)
	if !ok {
		return Command{}, &ValidationError{
			Action: c.Action,
			Reason: fmt.Sprintf("Unknown action: %s", c.Action),
		}
	}

	for _, p := range rule.Params {
		val, present := c.Parameters[p.Name]

		if p.Required && !present {
			return Command{}, &ValidationError{
				Action: c.Action,
				Param:  p.Name,
				Reason: fmt.Sprintf("missing required parameter %s", p.Name),
			}
		}
		if !present {
			continue
		}

		if strings.TrimSpace(val) == "" {
			return Command{}, &ValidationError{
				Action: c.Action,
				Param:  p.Name,
				Reason: fmt.Sprintf("parameter %s cannot be empty", p.Name),
			}
		}

		if p.MaxLen > 0 && len([]rune(val)) > p.MaxLen {
			return Command{}, &ValidationError{
				Action: c.Action,
				Param:  p.Name,
				Reason: fmt.Sprintf("parameter %s exceeds maximum length of %d", p.Name, p.MaxLen),
			}
		}
	}

	params := make(map[string]string, len(c.Parameters))
	for k, v := range c.Parameters {
		params[k] = v
	}

	desc := strings.TrimSpace(c.Description)
	if desc == "" {
		desc = fmt.Sprintf("%s command", c.Action)
	}

	return Command{
		Action:      c.Action,
		Parameters:  params,
		Description: desc,
	}, nil
}
