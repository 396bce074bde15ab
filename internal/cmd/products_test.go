package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

const productsPath = "/admin/api/2024-07/products.json"

func TestProductsList(t *testing.T) {
	handler := newRouteHandler().
		On("GET", productsPath, jsonResponse(200, `{
			"products": [
				{"id": 632910392, "title": "Classic Tee", "status": "active", "vendor": "Acme"},
				{"id": 632910393, "title": "Winter Jacket", "status": "draft", "vendor": "Acme"}
			]
		}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "list"}); err != nil {
			t.Errorf("products list failed: %v", err)
		}
	})

	if !strings.Contains(output, "Classic Tee") {
		t.Errorf("output missing product title: %s", output)
	}
	if !strings.Contains(output, "632910392") {
		t.Errorf("output missing product ID: %s", output)
	}
	if !strings.Contains(output, "draft") {
		t.Errorf("output missing status: %s", output)
	}
}

func TestProductsListJSON(t *testing.T) {
	handler := newRouteHandler().
		On("GET", productsPath, jsonResponse(200, `{
			"products": [{"id": 632910392, "title": "Classic Tee", "status": "active"}]
		}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "list", "-o", "json"}); err != nil {
			t.Errorf("products list JSON failed: %v", err)
		}
	})

	var payload struct {
		Products []map[string]any `json:"products"`
	}
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v, output: %s", err, output)
	}
	if len(payload.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(payload.Products))
	}
	if payload.Products[0]["title"] != "Classic Tee" {
		t.Errorf("unexpected title %v", payload.Products[0]["title"])
	}
}

func TestProductsListPassesFilters(t *testing.T) {
	var gotQuery string
	handler := newRouteHandler().
		On("GET", productsPath, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			jsonResponse(200, `{"products": []}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	_ = captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "list", "--status", "active", "--vendor", "Acme", "--limit", "10"}); err != nil {
			t.Errorf("products list failed: %v", err)
		}
	})

	for _, want := range []string{"status=active", "vendor=Acme", "limit=10"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestProductsGetByID(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/admin/api/2024-07/products/632910392.json", jsonResponse(200, `{
			"product": {"id": 632910392, "title": "Classic Tee", "status": "active", "handle": "classic-tee"}
		}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "get", "632910392"}); err != nil {
			t.Errorf("products get failed: %v", err)
		}
	})

	if !strings.Contains(output, "Product 632910392") {
		t.Errorf("output missing product header: %s", output)
	}
	if !strings.Contains(output, "Handle: classic-tee") {
		t.Errorf("output missing handle: %s", output)
	}
}

func TestProductsGetByTitle(t *testing.T) {
	handler := newRouteHandler().
		On("GET", productsPath, jsonResponse(200, `{
			"products": [
				{"id": 632910392, "title": "Classic Tee"},
				{"id": 632910393, "title": "Winter Jacket"}
			]
		}`)).
		On("GET", "/admin/api/2024-07/products/632910393.json", jsonResponse(200, `{
			"product": {"id": 632910393, "title": "Winter Jacket", "status": "draft"}
		}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "get", "winter"}); err != nil {
			t.Errorf("products get by title failed: %v", err)
		}
	})

	if !strings.Contains(output, "Winter Jacket") {
		t.Errorf("expected fuzzy-resolved product in output: %s", output)
	}
}

func TestProductsCount(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/admin/api/2024-07/products/count.json", jsonResponse(200, `{"count": 42}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "count"}); err != nil {
			t.Errorf("products count failed: %v", err)
		}
	})

	if strings.TrimSpace(output) != "42" {
		t.Errorf("count output = %q, want 42", output)
	}
}

func TestProductsCreate(t *testing.T) {
	var receivedBody map[string]any
	handler := newRouteHandler().
		On("POST", productsPath, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&receivedBody)
			jsonResponse(201, `{"product": {"id": 1001, "title": "Classic Tee", "status": "draft"}}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "create", "--title", "Classic Tee", "--status", "draft"}); err != nil {
			t.Errorf("products create failed: %v", err)
		}
	})

	product, ok := receivedBody["product"].(map[string]any)
	if !ok {
		t.Fatalf("request body missing product wrapper: %v", receivedBody)
	}
	if product["title"] != "Classic Tee" {
		t.Errorf("request title = %v, want Classic Tee", product["title"])
	}
	if product["status"] != "draft" {
		t.Errorf("request status = %v, want draft", product["status"])
	}
	if !strings.Contains(output, "Created product 1001") {
		t.Errorf("output missing created message: %s", output)
	}
}

func TestProductsCreateRequiresTitle(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_ = captureStderr(t, func() {
		if err := Execute(context.Background(), []string{"products", "create"}); err == nil {
			t.Error("expected error without --title")
		}
	})
}

func TestProductsUpdate(t *testing.T) {
	var receivedBody map[string]any
	handler := newRouteHandler().
		On("PUT", "/admin/api/2024-07/products/632910392.json", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&receivedBody)
			jsonResponse(200, `{"product": {"id": 632910392, "title": "Classic Tee", "status": "archived"}}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "update", "632910392", "--status", "archived"}); err != nil {
			t.Errorf("products update failed: %v", err)
		}
	})

	product, ok := receivedBody["product"].(map[string]any)
	if !ok {
		t.Fatalf("request body missing product wrapper: %v", receivedBody)
	}
	if product["status"] != "archived" {
		t.Errorf("request status = %v, want archived", product["status"])
	}
	if !strings.Contains(output, "Updated product 632910392") {
		t.Errorf("output missing updated message: %s", output)
	}
}

func TestProductsUpdateRequiresFields(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_ = captureStderr(t, func() {
		if err := Execute(context.Background(), []string{"products", "update", "632910392"}); err == nil {
			t.Error("expected error without fields")
		}
	})
}

func TestProductsDelete(t *testing.T) {
	handler := newRouteHandler().
		On("DELETE", "/admin/api/2024-07/products/632910392.json", jsonResponse(200, `{}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "delete", "632910392", "--yes"}); err != nil {
			t.Errorf("products delete failed: %v", err)
		}
	})

	if !strings.Contains(output, "Deleted product 632910392") {
		t.Errorf("output missing deleted message: %s", output)
	}
}

func TestProductsDeleteRefusedWithoutConfirmation(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_ = captureStderr(t, func() {
		if err := Execute(context.Background(), []string{"products", "delete", "632910392", "--no-input"}); err == nil {
			t.Error("expected confirmation error with --no-input")
		}
	})
}

func TestProductsDeleteBulk(t *testing.T) {
	handler := newRouteHandler().
		On("DELETE", "/admin/api/2024-07/products/1.json", jsonResponse(200, `{}`)).
		On("DELETE", "/admin/api/2024-07/products/2.json", jsonResponse(200, `{}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"products", "delete", "1", "2", "--yes", "--quiet"}); err != nil {
			t.Errorf("bulk delete failed: %v", err)
		}
	})

	if !strings.Contains(output, "2 deleted, 0 failed") {
		t.Errorf("output missing bulk summary: %s", output)
	}
}

func TestProductsDeleteBulkPartialFailure(t *testing.T) {
	handler := newRouteHandler().
		On("DELETE", "/admin/api/2024-07/products/1.json", jsonResponse(200, `{}`)).
		On("DELETE", "/admin/api/2024-07/products/2.json", jsonResponse(404, `{"errors": "Not Found"}`))

	setupTestEnvWithHandler(t, handler)

	var execErr error
	output := captureStdout(t, func() {
		_ = captureStderr(t, func() {
			execErr = Execute(context.Background(), []string{"products", "delete", "1", "2", "--yes", "--quiet"})
		})
	})

	if execErr == nil {
		t.Error("expected error for partial failure")
	}
	if !strings.Contains(output, "1 deleted, 1 failed") {
		t.Errorf("output missing bulk summary: %s", output)
	}
}
