// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package anytype

import (
	"encoding/json"
	"regexp"
	"strings"
)

// =============================================================================
// OBJECT NORMALIZATION
// =============================================================================

// inlineRefPattern matches [[object-id]] references embedded in body text.
var inlineRefPattern = regexp.MustCompile(`\[\[([A-Za-z0-9._-]+)\]\]`)

// normalizeObject converts the wire shape into the canonical Object:
// the typed property array becomes a flat map, the body is reduced to
// text, and body references populate ChildIDs.
func normalizeObject(wo *wireObject) *Object {
	obj := &Object{
		ID:      wo.ID,
		Name:    wo.Name,
		TypeKey: wo.TypeKey,
		SpaceID: wo.SpaceID,
	}
	if obj.TypeKey == "" {
		obj.TypeKey = wo.Type.Key
	}

	obj.Properties, obj.LinkIDs = flattenProperties(wo.Properties)
	obj.Body, obj.ChildIDs = normalizeBody(wo.Body)

	return obj
}

// flattenProperties reduces the typed property array to key -> value.
// Each entry populates exactly one value field; entries with no value
// map to nil so the key's presence is preserved. Object-reference
// properties additionally feed the link ID set.
func flattenProperties(props []wireProperty) (map[string]any, []string) {
	if len(props) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(props))
	var links []string
	for _, p := range props {
		if p.Key == "" {
			continue
		}
		switch {
		case p.Text != nil:
			out[p.Key] = *p.Text
		case p.Number != nil:
			out[p.Key] = *p.Number
		case p.Checkbox != nil:
			out[p.Key] = *p.Checkbox
		case p.Select != nil:
			out[p.Key] = *p.Select
		case p.MultiSelect != nil:
			out[p.Key] = append([]string(nil), p.MultiSelect...)
		case p.Date != nil:
			out[p.Key] = *p.Date
		case p.Objects != nil:
			ids := append([]string(nil), p.Objects...)
			out[p.Key] = ids
			links = append(links, ids...)
		default:
			out[p.Key] = nil
		}
	}
	return out, dedupe(links)
}

// normalizeBody reduces the wire body to plain text and collects object
// references. The body arrives either as a plain string or as a JSON
// block list; both forms may embed [[id]] inline references, and block
// lists may carry explicit object-reference blocks.
func normalizeBody(raw json.RawMessage) (string, []string) {
	if len(raw) == 0 {
		return "", nil
	}

	var text string
	var refs []string

	if err := json.Unmarshal(raw, &text); err == nil {
		refs = inlineRefs(text)
		return text, refs
	}

	var blocks []bodyBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		// Unknown body shape; keep it verbatim so nothing is lost.
		return string(raw), nil
	}

	var sb strings.Builder
	for _, b := range blocks {
		switch {
		case b.TargetID != "":
			refs = append(refs, b.TargetID)
		case b.Text != "":
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(b.Text)
			refs = append(refs, inlineRefs(b.Text)...)
		}
	}
	return sb.String(), dedupe(refs)
}

// bodyBlock is one entry of a JSON block-list body. Reference blocks
// carry a target_id; text blocks carry their content under text.
type bodyBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	TargetID string `json:"target_id"`
}

func inlineRefs(text string) []string {
	matches := inlineRefPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return dedupe(refs)
}

func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
