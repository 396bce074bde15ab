// Package schema describes the field structure of Admin API resources
// so tooling can discover them without probing the live API.
package schema

import (
	"fmt"
	"sort"
)

// Schema is a JSON Schema-like description of a resource or field.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Get returns the schema for a resource name.
func Get(name string) (*Schema, error) {
	s, ok := resources[name]
	if !ok {
		return nil, fmt.Errorf("schema %q not found", name)
	}
	return s, nil
}

// List returns the known resource names, sorted.
func List() []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builders for the resource definitions. Timestamps note their ISO 8601
// encoding in the description.

func obj(desc string, props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Description: desc, Properties: props, Required: required}
}

func str(desc string) *Schema {
	return &Schema{Type: "string", Description: desc}
}

func integer(desc string) *Schema {
	return &Schema{Type: "integer", Description: desc}
}

func enum(desc string, values ...string) *Schema {
	return &Schema{Type: "string", Description: desc, Enum: values}
}

func array(items *Schema, desc string) *Schema {
	return &Schema{Type: "array", Description: desc, Items: items}
}

func timestamp(desc string) *Schema {
	return &Schema{Type: "string", Description: desc + " (ISO 8601)"}
}

func mapOf(desc string) *Schema {
	return &Schema{Type: "object", Description: desc}
}
