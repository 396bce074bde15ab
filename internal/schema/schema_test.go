package schema

import (
	"sort"
	"testing"
)

func TestGetNotFound(t *testing.T) {
	if _, err := Get("widget"); err == nil {
		t.Error("expected error for unknown resource")
	}
}

func TestListIsSorted(t *testing.T) {
	names := List()
	if len(names) != len(resources) {
		t.Fatalf("List() returned %d names, want %d", len(names), len(resources))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
}

func TestEveryResourceIsWellFormed(t *testing.T) {
	for _, name := range List() {
		s, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if s.Type != "object" {
			t.Errorf("resource %q has type %q, want object", name, s.Type)
		}
		if s.Description == "" {
			t.Errorf("resource %q has no description", name)
		}
		if len(s.Properties) == 0 {
			t.Errorf("resource %q has no properties", name)
		}
		for _, req := range s.Required {
			if _, ok := s.Properties[req]; !ok {
				t.Errorf("resource %q requires %q but does not define it", name, req)
			}
		}
	}
}

func TestBuilders(t *testing.T) {
	if s := str("a"); s.Type != "string" || s.Description != "a" {
		t.Errorf("str: got %+v", s)
	}
	if s := integer("n"); s.Type != "integer" {
		t.Errorf("integer: got type %q", s.Type)
	}
	if s := timestamp("created"); s.Description != "created (ISO 8601)" {
		t.Errorf("timestamp: got description %q", s.Description)
	}
	if s := mapOf("props"); s.Type != "object" || s.Properties != nil {
		t.Errorf("mapOf: got %+v", s)
	}

	e := enum("state", "on", "off")
	if e.Type != "string" || len(e.Enum) != 2 {
		t.Errorf("enum: got %+v", e)
	}

	a := array(str("item"), "items")
	if a.Type != "array" || a.Items == nil || a.Items.Type != "string" {
		t.Errorf("array: got %+v", a)
	}

	o := obj("thing", map[string]*Schema{"id": integer("id")}, "id")
	if o.Type != "object" || len(o.Properties) != 1 || len(o.Required) != 1 {
		t.Errorf("obj: got %+v", o)
	}
}

func TestProductSchema(t *testing.T) {
	s, err := Get("product")
	if err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{"id", "title", "status", "created_at"} {
		found := false
		for _, req := range s.Required {
			if req == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q to be required", field)
		}
	}

	status := s.Properties["status"]
	if status == nil {
		t.Fatal("expected status property")
	}
	if len(status.Enum) != 3 {
		t.Errorf("status enum has %d values, want 3", len(status.Enum))
	}
}

func TestOrderSchema(t *testing.T) {
	s, err := Get("order")
	if err != nil {
		t.Fatal(err)
	}

	if financial := s.Properties["financial_status"]; financial == nil || len(financial.Enum) != 7 {
		t.Errorf("financial_status = %+v, want 7 enum values", financial)
	}
	if reason := s.Properties["cancel_reason"]; reason == nil || len(reason.Enum) != 5 {
		t.Errorf("cancel_reason = %+v, want 5 enum values", reason)
	}
}

func TestMetafieldSchema(t *testing.T) {
	s, err := Get("metafield")
	if err != nil {
		t.Fatal(err)
	}

	for _, prop := range []string{"id", "namespace", "key", "value", "type", "owner_resource"} {
		if _, ok := s.Properties[prop]; !ok {
			t.Errorf("missing property %q", prop)
		}
	}
}
