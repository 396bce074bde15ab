package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestVariantsList(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/admin/api/2024-07/products/632910392/variants.json", jsonResponse(200, `{
			"variants": [
				{"id": 39072856, "title": "Small", "sku": "TEE-S", "price": "19.99", "inventory_quantity": 5},
				{"id": 39072857, "title": "Large", "sku": "TEE-L", "price": "19.99", "inventory_quantity": 0}
			]
		}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"variants", "list", "632910392"}); err != nil {
			t.Errorf("variants list failed: %v", err)
		}
	})

	if !strings.Contains(output, "TEE-S") {
		t.Errorf("output missing SKU: %s", output)
	}
	if !strings.Contains(output, "Large") {
		t.Errorf("output missing variant title: %s", output)
	}
}

func TestVariantsGet(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/admin/api/2024-07/variants/39072856.json", jsonResponse(200, `{
			"variant": {"id": 39072856, "product_id": 632910392, "title": "Small", "sku": "TEE-S", "price": "19.99", "inventory_quantity": 5}
		}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"variants", "get", "39072856"}); err != nil {
			t.Errorf("variants get failed: %v", err)
		}
	})

	if !strings.Contains(output, "Variant 39072856") {
		t.Errorf("output missing variant header: %s", output)
	}
	if !strings.Contains(output, "Product: 632910392") {
		t.Errorf("output missing product reference: %s", output)
	}
}

func TestVariantsCount(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/admin/api/2024-07/products/632910392/variants/count.json", jsonResponse(200, `{"count": 3}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"variants", "count", "632910392"}); err != nil {
			t.Errorf("variants count failed: %v", err)
		}
	})

	if strings.TrimSpace(output) != "3" {
		t.Errorf("count output = %q, want 3", output)
	}
}

func TestVariantsCreate(t *testing.T) {
	var receivedBody map[string]any
	handler := newRouteHandler().
		On("POST", "/admin/api/2024-07/products/632910392/variants.json", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&receivedBody)
			jsonResponse(201, `{"variant": {"id": 39072858, "title": "Medium", "price": "21.99"}}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		err := Execute(context.Background(), []string{
			"variants", "create", "632910392",
			"--title", "Medium", "--price", "21.99", "--sku", "TEE-M",
		})
		if err != nil {
			t.Errorf("variants create failed: %v", err)
		}
	})

	variant, ok := receivedBody["variant"].(map[string]any)
	if !ok {
		t.Fatalf("request body missing variant wrapper: %v", receivedBody)
	}
	if variant["option1"] != "Medium" {
		t.Errorf("request option1 = %v, want Medium", variant["option1"])
	}
	if variant["sku"] != "TEE-M" {
		t.Errorf("request sku = %v, want TEE-M", variant["sku"])
	}
	if !strings.Contains(output, "Created variant 39072858") {
		t.Errorf("output missing created message: %s", output)
	}
}

func TestVariantsCreateRequiresFields(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_ = captureStderr(t, func() {
		if err := Execute(context.Background(), []string{"variants", "create", "632910392"}); err == nil {
			t.Error("expected error without fields")
		}
	})
}

func TestVariantsDelete(t *testing.T) {
	handler := newRouteHandler().
		On("DELETE", "/admin/api/2024-07/products/632910392/variants/39072856.json", jsonResponse(200, `{}`))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"variants", "delete", "632910392", "39072856", "--yes"}); err != nil {
			t.Errorf("variants delete failed: %v", err)
		}
	})

	if !strings.Contains(output, "Deleted variant 39072856") {
		t.Errorf("output missing deleted message: %s", output)
	}
}
