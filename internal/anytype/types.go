// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package anytype

import "encoding/json"

// =============================================================================
// CANONICAL TYPES
// =============================================================================

// Space is a top-level container of objects.
type Space struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Object is the canonical, normalized shape of a knowledge object.
//
// Properties values are scalars or string lists (string, float64, bool,
// []string, or nil). ChildIDs are structural embeddings discovered in
// the body; LinkIDs are cross-reference relations. Entries that do not
// resolve to a fetchable object are dangling and dropped by consumers
// when building trees.
type Object struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	TypeKey    string         `json:"type_key,omitempty"`
	SpaceID    string         `json:"space_id,omitempty"`
	Body       string         `json:"body,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	ChildIDs   []string       `json:"child_ids,omitempty"`
	LinkIDs    []string       `json:"link_ids,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateRequest is the payload for creating an object.
type CreateRequest struct {
	Name       string         `json:"name"`
	TypeKey    string         `json:"type_key"`
	Body       string         `json:"body,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// UpdateRequest is the payload for updating an object. Nil/empty fields
// are omitted and left unchanged server-side.
type UpdateRequest struct {
	Name       string         `json:"name,omitempty"`
	Body       string         `json:"body,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// SearchRequest is the payload for the search endpoint.
type SearchRequest struct {
	Query string     `json:"query"`
	Sort  SearchSort `json:"sort"`
}

// SearchSort orders search results.
type SearchSort struct {
	PropertyKey string `json:"property_key"`
	Direction   string `json:"direction"`
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// listEnvelope is the paginated list response. Older servers use
// "objects" or "items" instead of "data"; all three are tolerated.
type listEnvelope struct {
	Data    []json.RawMessage `json:"data"`
	Objects []json.RawMessage `json:"objects"`
	Items   []json.RawMessage `json:"items"`

	Pagination struct {
		Total   int  `json:"total"`
		Offset  int  `json:"offset"`
		Limit   int  `json:"limit"`
		HasMore bool `json:"has_more"`
	} `json:"pagination"`
}

// entries returns whichever envelope field the server populated.
func (e *listEnvelope) entries() []json.RawMessage {
	switch {
	case len(e.Data) > 0:
		return e.Data
	case len(e.Objects) > 0:
		return e.Objects
	default:
		return e.Items
	}
}

// singleEnvelope wraps single-object responses; some endpoints return
// the object bare, others under "object".
type singleEnvelope struct {
	Object json.RawMessage `json:"object"`
}

// wireObject is the raw object shape before normalization.
type wireObject struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TypeKey    string          `json:"type_key"`
	SpaceID    string          `json:"space_id"`
	Properties []wireProperty  `json:"properties"`
	Body       json.RawMessage `json:"body"`

	// Some servers nest the type under "type": {"key": ...}.
	Type struct {
		Key string `json:"key"`
	} `json:"type"`
}

// wireProperty carries exactly one typed value field per entry.
type wireProperty struct {
	Key         string   `json:"key"`
	Text        *string  `json:"text,omitempty"`
	Number      *float64 `json:"number,omitempty"`
	Checkbox    *bool    `json:"checkbox,omitempty"`
	Select      *string  `json:"select,omitempty"`
	MultiSelect []string `json:"multi_select,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Objects     []string `json:"objects,omitempty"`
}

// apiErrorResponse is the error body shape.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}
