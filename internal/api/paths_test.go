package api

import (
	"net/http"
	"testing"
)

var testPaths = []PathSpec{
	{Method: http.MethodGet, Operation: OpAll, IDs: nil, Template: "/widgets.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: []string{"owner_id"}, Template: "/owners/{owner_id}/widgets.json"},
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"id"}, Template: "/widgets/{id}.json"},
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"owner_id", "id"}, Template: "/owners/{owner_id}/widgets/{id}.json"},
}

func TestResolvePathSpecificity(t *testing.T) {
	// With both identifiers available the two-identifier template wins.
	spec, ok := ResolvePath(testPaths, OpFind, map[string]any{"owner_id": 7, "id": 42})
	if !ok {
		t.Fatal("expected a match")
	}
	if spec.Template != "/owners/{owner_id}/widgets/{id}.json" {
		t.Errorf("expected nested template, got %s", spec.Template)
	}

	// With only the resource id the standalone template is the fallback.
	spec, ok = ResolvePath(testPaths, OpFind, map[string]any{"id": 42})
	if !ok {
		t.Fatal("expected a match")
	}
	if spec.Template != "/widgets/{id}.json" {
		t.Errorf("expected standalone template, got %s", spec.Template)
	}

	// With neither identifier nothing matches.
	if _, ok := ResolvePath(testPaths, OpFind, nil); ok {
		t.Error("expected no match without identifiers")
	}
}

func TestResolvePathExtraIDsAreFine(t *testing.T) {
	spec, ok := ResolvePath(testPaths, OpAll, map[string]any{"owner_id": 1, "unrelated": "x"})
	if !ok {
		t.Fatal("expected a match")
	}
	if spec.Template != "/owners/{owner_id}/widgets.json" {
		t.Errorf("got %s", spec.Template)
	}
}

func TestResolvePathUnknownOperation(t *testing.T) {
	if _, ok := ResolvePath(testPaths, OpDelete, map[string]any{"id": 1}); ok {
		t.Error("expected no match for an operation absent from the table")
	}
}

func TestResolvePathTieBreaksFirstDeclared(t *testing.T) {
	table := []PathSpec{
		{Method: http.MethodGet, Operation: OpAll, IDs: []string{"a"}, Template: "/first/{a}.json"},
		{Method: http.MethodGet, Operation: OpAll, IDs: []string{"b"}, Template: "/second/{b}.json"},
	}
	spec, ok := ResolvePath(table, OpAll, map[string]any{"a": 1, "b": 2})
	if !ok {
		t.Fatal("expected a match")
	}
	if spec.Template != "/first/{a}.json" {
		t.Errorf("tie should go to the first-declared entry, got %s", spec.Template)
	}
}

func TestBuildPath(t *testing.T) {
	tests := []struct {
		name     string
		template string
		ids      map[string]any
		want     string
	}{
		{
			name:     "single placeholder",
			template: "/products/{id}.json",
			ids:      map[string]any{"id": int64(42)},
			want:     "/products/42.json",
		},
		{
			name:     "two placeholders",
			template: "/products/{product_id}/variants/{id}.json",
			ids:      map[string]any{"product_id": 7, "id": 9},
			want:     "/products/7/variants/9.json",
		},
		{
			name:     "string identifier",
			template: "/collections/{handle}.json",
			ids:      map[string]any{"handle": "summer"},
			want:     "/collections/summer.json",
		},
		{
			name:     "unmatched placeholder stays verbatim",
			template: "/products/{product_id}/variants/{id}.json",
			ids:      map[string]any{"id": 9},
			want:     "/products/{product_id}/variants/9.json",
		},
		{
			name:     "no placeholders",
			template: "/shop.json",
			ids:      map[string]any{"id": 1},
			want:     "/shop.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPath(tt.template, tt.ids); got != tt.want {
				t.Errorf("BuildPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRequestPathError(t *testing.T) {
	_, _, err := resolveRequest("widget", testPaths, OpCount, map[string]any{"id": 1})
	if err == nil {
		t.Fatal("expected a path error")
	}
	var pathErr *PathError
	if !asPathError(err, &pathErr) {
		t.Fatalf("expected *PathError, got %T", err)
	}
	if pathErr.Resource != "widget" || pathErr.Operation != OpCount {
		t.Errorf("path error should carry resource and operation: %+v", pathErr)
	}
}

func asPathError(err error, target **PathError) bool {
	pe, ok := err.(*PathError)
	if ok {
		*target = pe
	}
	return ok
}
