// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package anytype

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeBodyBlockList(t *testing.T) {
	raw := json.RawMessage(`[
		{"type": "text", "text": "Intro line with [[obj-9]] inline."},
		{"type": "object_ref", "target_id": "obj-7"},
		{"type": "text", "text": "Closing line."}
	]`)

	text, refs := normalizeBody(raw)
	if text != "Intro line with [[obj-9]] inline.\nClosing line." {
		t.Errorf("text = %q", text)
	}
	if !reflect.DeepEqual(refs, []string{"obj-9", "obj-7"}) {
		t.Errorf("refs = %v", refs)
	}
}

func TestNormalizeBodyString(t *testing.T) {
	text, refs := normalizeBody(json.RawMessage(`"plain markdown, no refs"`))
	if text != "plain markdown, no refs" {
		t.Errorf("text = %q", text)
	}
	if len(refs) != 0 {
		t.Errorf("refs = %v", refs)
	}
}

func TestNormalizeBodyUnknownShapeKeptVerbatim(t *testing.T) {
	text, refs := normalizeBody(json.RawMessage(`{"weird": true}`))
	if text != `{"weird": true}` {
		t.Errorf("text = %q", text)
	}
	if refs != nil {
		t.Errorf("refs = %v", refs)
	}
}

func TestFlattenPropertiesValuelessKeyPreserved(t *testing.T) {
	props, links := flattenProperties([]wireProperty{
		{Key: "orphan"},
		{Key: ""},
	})
	if len(props) != 1 {
		t.Fatalf("props = %v", props)
	}
	if v, ok := props["orphan"]; !ok || v != nil {
		t.Errorf("valueless property must map to nil, got %v (present=%v)", v, ok)
	}
	if links != nil {
		t.Errorf("links = %v", links)
	}
}
