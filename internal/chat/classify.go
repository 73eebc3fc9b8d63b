// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// COMMAND CLASSIFIER
// =============================================================================

// commandVerbs match as the first word of a message.
var commandVerbs = map[string]struct{}{
	"create":   {},
	"add":      {},
	"new":      {},
	"make":     {},
	"update":   {},
	"modify":   {},
	"change":   {},
	"delete":   {},
	"remove":   {},
	"search":   {},
	"find":     {},
	"show":     {},
	"list":     {},
	"get":      {},
	"link":     {},
	"organize": {},
}

// commandPhrases match anywhere in the message.
var commandPhrases = []string{
	"create a",
	"create an",
	"add a",
	"add an",
	"make a",
	"make an",
	"search for",
	"look for",
	"list all",
	"list my",
	"show me",
	"show all",
	"delete the",
	"remove the",
	"update the",
	"link to",
}

// ShouldProcessAsCommand reports whether text looks like a knowledge
// base command rather than conversation. Input is NFC-normalized first
// so composed and decomposed forms of the same word match alike.
func ShouldProcessAsCommand(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
	if lower == "" {
		return false
	}

	if fields := strings.Fields(lower); len(fields) > 0 {
		if _, ok := commandVerbs[strings.Trim(fields[0], ".,!?")]; ok {
			return true
		}
	}

	for _, phrase := range commandPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
