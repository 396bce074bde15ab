package api

import (
	"context"
	"testing"
)

func TestListMetafieldsOwnershipPaths(t *testing.T) {
	tests := []struct {
		name  string
		owner MetafieldOwner
		want  string
	}{
		{"shop level", MetafieldOwner{}, "/metafields.json"},
		{"product", MetafieldOwner{ProductID: 3}, "/products/3/metafields.json"},
		{"order", MetafieldOwner{OrderID: 8}, "/orders/8/metafields.json"},
		{"variant under product", MetafieldOwner{ProductID: 3, VariantID: 5}, "/products/3/variants/5/metafields.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecutor{response: cannedResponse(200, `{"metafields":[]}`, nil)}
			_, _, err := listMetafields(context.Background(), exec, tt.owner)
			if err != nil {
				t.Fatalf("listMetafields: %v", err)
			}
			if exec.lastRequest.Path != tt.want {
				t.Errorf("path = %s, want %s", exec.lastRequest.Path, tt.want)
			}
		})
	}
}

func TestListMetafieldsVariantAloneHasNoPath(t *testing.T) {
	// A variant id without its product id matches no template: the
	// nested path needs both, and the standalone paths need neither.
	// The resolver falls back to the shop-level listing.
	exec := &recordingExecutor{response: cannedResponse(200, `{"metafields":[]}`, nil)}
	_, _, err := listMetafields(context.Background(), exec, MetafieldOwner{VariantID: 5})
	if err != nil {
		t.Fatalf("listMetafields: %v", err)
	}
	if exec.lastRequest.Path != "/metafields.json" {
		t.Errorf("path = %s, want the shop-level fallback", exec.lastRequest.Path)
	}
}

func TestMetafieldPathTableInvariant(t *testing.T) {
	// Every entry's identifier count matches its placeholder count.
	for _, table := range [][]PathSpec{productPaths, orderPaths, variantPaths, metafieldPaths} {
		for _, spec := range table {
			for _, name := range spec.IDs {
				if BuildPath(spec.Template, map[string]any{name: "x"}) == spec.Template {
					t.Errorf("template %s has no placeholder for id %s", spec.Template, name)
				}
			}
			remaining := BuildPath(spec.Template, idsFixture(spec.IDs))
			if containsPlaceholder(remaining) {
				t.Errorf("template %s has placeholders beyond its declared ids %v", spec.Template, spec.IDs)
			}
		}
	}
}

func idsFixture(names []string) map[string]any {
	ids := make(map[string]any, len(names))
	for _, name := range names {
		ids[name] = "x"
	}
	return ids
}

func containsPlaceholder(path string) bool {
	for i := 0; i < len(path); i++ {
		if path[i] == '{' {
			return true
		}
	}
	return false
}

func TestMetafieldGetThroughOwner(t *testing.T) {
	ids := MetafieldOwner{ProductID: 3}.ids()
	ids["id"] = int64(10)
	method, path, err := resolveRequest("metafield", metafieldPaths, OpFind, ids)
	if err != nil {
		t.Fatalf("resolveRequest: %v", err)
	}
	if method != "GET" || path != "/products/3/metafields/10.json" {
		t.Errorf("resolved %s %s", method, path)
	}
}
