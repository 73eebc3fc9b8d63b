// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package anytype

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckReachable(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok counts as reachable", http.StatusOK, false},
		{"unauthorized still proves a live server", http.StatusUnauthorized, false},
		{"server error is unreachable", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/spaces" {
					t.Errorf("probe path = %q", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewClient(srv.URL, "key").CheckReachable(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckReachable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckReachableNotConfigured(t *testing.T) {
	err := NewClient("", "").CheckReachable(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "secret-key").ListSpaces(context.Background())
	if err != nil {
		t.Fatalf("ListSpaces() error = %v", err)
	}
	if v := got.Get("Anytype-Version"); v != APIVersion {
		t.Errorf("Anytype-Version = %q, want %q", v, APIVersion)
	}
	if v := got.Get("Authorization"); v != "Bearer secret-key" {
		t.Errorf("Authorization = %q", v)
	}
}

func TestGetObjectNormalizes(t *testing.T) {
	const body = `{
		"object": {
			"id": "obj-1",
			"name": "Roadmap",
			"type": {"key": "page"},
			"properties": [
				{"key": "status", "select": "active"},
				{"key": "priority", "number": 3},
				{"key": "done", "checkbox": false},
				{"key": "tags", "multi_select": ["q3", "planning"]},
				{"key": "related", "objects": ["obj-2", "obj-3"]}
			],
			"body": "See [[obj-4]] for details, and [[obj-4]] again."
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/spaces/sp-1/objects/obj-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	obj, err := NewClient(srv.URL, "key").GetObject(context.Background(), "sp-1", "obj-1")
	if err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}

	if obj.TypeKey != "page" {
		t.Errorf("TypeKey = %q", obj.TypeKey)
	}
	if obj.SpaceID != "sp-1" {
		t.Errorf("SpaceID = %q", obj.SpaceID)
	}
	if got := obj.Properties["status"]; got != "active" {
		t.Errorf("status = %v", got)
	}
	if got := obj.Properties["priority"]; got != float64(3) {
		t.Errorf("priority = %v", got)
	}
	if got := obj.Properties["done"]; got != false {
		t.Errorf("done = %v", got)
	}
	tags, _ := obj.Properties["tags"].([]string)
	if len(tags) != 2 || tags[0] != "q3" {
		t.Errorf("tags = %v", tags)
	}
	if len(obj.LinkIDs) != 2 || obj.LinkIDs[0] != "obj-2" || obj.LinkIDs[1] != "obj-3" {
		t.Errorf("LinkIDs = %v", obj.LinkIDs)
	}
	if len(obj.ChildIDs) != 1 || obj.ChildIDs[0] != "obj-4" {
		t.Errorf("ChildIDs = %v (inline refs must be deduplicated)", obj.ChildIDs)
	}
}

func TestListObjectsEnvelopeFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"data field", `{"data":[{"id":"a"},{"id":"b"}]}`},
		{"objects field", `{"objects":[{"id":"a"},{"id":"b"}]}`},
		{"items field", `{"items":[{"id":"a"},{"id":"b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			objs, err := NewClient(srv.URL, "key").ListObjects(context.Background(), "sp")
			if err != nil {
				t.Fatalf("ListObjects() error = %v", err)
			}
			if len(objs) != 2 {
				t.Errorf("got %d objects, want 2", len(objs))
			}
		})
	}
}

func TestSearchObjectsRequestShape(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/spaces/sp/search" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		_, _ = w.Write([]byte(`{"data":[{"id":"hit"}]}`))
	}))
	defer srv.Close()

	objs, err := NewClient(srv.URL, "key").SearchObjects(context.Background(), "sp", "taxes")
	if err != nil {
		t.Fatalf("SearchObjects() error = %v", err)
	}
	if len(objs) != 1 || objs[0].ID != "hit" {
		t.Errorf("results = %v", objs)
	}
	for _, want := range []string{`"query":"taxes"`, `"property_key":"last_modified_date"`, `"direction":"desc"`} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("request body %q missing %q", gotBody, want)
		}
	}
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"401 maps to unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, ErrUnauthorized},
		{"404 maps to not found", http.StatusNotFound, `{}`, ErrNotFound},
		{"410 maps to not found", http.StatusGone, `{}`, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "key").GetObject(context.Background(), "sp", "x")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStatusErrorKeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"message":"short and stout"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "key").ListObjects(context.Background(), "sp")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTeapot || apiErr.Message != "short and stout" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestDeleteObject(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "key").DeleteObject(context.Background(), "sp", "obj"); err != nil {
		t.Fatalf("DeleteObject() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q", gotMethod)
	}
}
