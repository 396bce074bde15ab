package api

import (
	"context"
	"net/http"
)

// metafieldPaths is the largest table in the package: metafields hang
// off shops, products, variants, and orders, so most operations have
// several ownership paths. The resolver picks the most specific one
// for whatever identifiers the caller supplies.
var metafieldPaths = []PathSpec{
	{Method: http.MethodGet, Operation: OpAll, IDs: nil, Template: "/metafields.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: []string{"product_id"}, Template: "/products/{product_id}/metafields.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: []string{"order_id"}, Template: "/orders/{order_id}/metafields.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: []string{"product_id", "variant_id"}, Template: "/products/{product_id}/variants/{variant_id}/metafields.json"},
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"id"}, Template: "/metafields/{id}.json"},
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"product_id", "id"}, Template: "/products/{product_id}/metafields/{id}.json"},
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"order_id", "id"}, Template: "/orders/{order_id}/metafields/{id}.json"},
	{Method: http.MethodGet, Operation: OpCount, IDs: nil, Template: "/metafields/count.json"},
	{Method: http.MethodGet, Operation: OpCount, IDs: []string{"product_id"}, Template: "/products/{product_id}/metafields/count.json"},
	{Method: http.MethodPost, Operation: OpCreate, IDs: nil, Template: "/metafields.json"},
	{Method: http.MethodPost, Operation: OpCreate, IDs: []string{"product_id"}, Template: "/products/{product_id}/metafields.json"},
	{Method: http.MethodPut, Operation: OpUpdate, IDs: []string{"id"}, Template: "/metafields/{id}.json"},
	{Method: http.MethodDelete, Operation: OpDelete, IDs: []string{"id"}, Template: "/metafields/{id}.json"},
}

// MetafieldOwner scopes a metafield operation to its owning resource.
// The zero value targets shop-level metafields.
type MetafieldOwner struct {
	ProductID int64
	VariantID int64
	OrderID   int64
}

func (o MetafieldOwner) ids() map[string]any {
	ids := map[string]any{}
	if o.ProductID != 0 {
		ids["product_id"] = o.ProductID
	}
	if o.VariantID != 0 {
		ids["variant_id"] = o.VariantID
	}
	if o.OrderID != 0 {
		ids["order_id"] = o.OrderID
	}
	return ids
}

// List retrieves metafields scoped to the owner.
func (s MetafieldsService) List(ctx context.Context, owner MetafieldOwner) ([]Metafield, *Page, error) {
	return listMetafields(ctx, s.Client, owner)
}

func listMetafields(ctx context.Context, r Executor, owner MetafieldOwner) ([]Metafield, *Page, error) {
	method, path, err := resolveRequest("metafield", metafieldPaths, OpAll, owner.ids())
	if err != nil {
		return nil, nil, err
	}
	resp, err := r.Execute(ctx, &Request{Method: method, Path: path})
	if err != nil {
		return nil, nil, err
	}
	var result struct {
		Metafields []Metafield `json:"metafields"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, nil, err
	}
	return result.Metafields, pageOf(resp), nil
}

// Get retrieves a metafield, through its owner when one is given.
func (s MetafieldsService) Get(ctx context.Context, owner MetafieldOwner, id int64) (*Metafield, error) {
	ids := owner.ids()
	ids["id"] = id
	method, path, err := resolveRequest("metafield", metafieldPaths, OpFind, ids)
	if err != nil {
		return nil, err
	}
	resp, err := s.Execute(ctx, &Request{Method: method, Path: path})
	if err != nil {
		return nil, err
	}
	var result struct {
		Metafield Metafield `json:"metafield"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Metafield, nil
}

// Count returns the number of metafields scoped to the owner.
func (s MetafieldsService) Count(ctx context.Context, owner MetafieldOwner) (int, error) {
	return countResource(ctx, s.Client, "metafield", metafieldPaths, owner.ids())
}

// Create attaches a metafield to the owner.
func (s MetafieldsService) Create(ctx context.Context, owner MetafieldOwner, field Metafield) (*Metafield, error) {
	method, path, err := resolveRequest("metafield", metafieldPaths, OpCreate, owner.ids())
	if err != nil {
		return nil, err
	}
	resp, err := s.Execute(ctx, &Request{
		Method:   method,
		Path:     path,
		Body:     map[string]any{"metafield": field},
		BodyType: BodyJSON,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Metafield Metafield `json:"metafield"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Metafield, nil
}

// Update rewrites a metafield's value.
func (s MetafieldsService) Update(ctx context.Context, id int64, value any, valueType string) (*Metafield, error) {
	method, path, err := resolveRequest("metafield", metafieldPaths, OpUpdate, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	field := map[string]any{"id": id, "value": value}
	if valueType != "" {
		field["type"] = valueType
	}
	resp, err := s.Execute(ctx, &Request{
		Method:   method,
		Path:     path,
		Body:     map[string]any{"metafield": field},
		BodyType: BodyJSON,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Metafield Metafield `json:"metafield"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Metafield, nil
}

// Delete removes a metafield.
func (s MetafieldsService) Delete(ctx context.Context, id int64) error {
	method, path, err := resolveRequest("metafield", metafieldPaths, OpDelete, map[string]any{"id": id})
	if err != nil {
		return err
	}
	_, err = s.Execute(ctx, &Request{Method: method, Path: path})
	return err
}
