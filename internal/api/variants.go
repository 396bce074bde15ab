package api

import (
	"context"
	"net/http"
)

// variantPaths addresses variants both standalone and under their
// product. Deletion only exists nested, mirroring the platform.
var variantPaths = []PathSpec{
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"id"}, Template: "/variants/{id}.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: []string{"product_id"}, Template: "/products/{product_id}/variants.json"},
	{Method: http.MethodGet, Operation: OpCount, IDs: []string{"product_id"}, Template: "/products/{product_id}/variants/count.json"},
	{Method: http.MethodPost, Operation: OpCreate, IDs: []string{"product_id"}, Template: "/products/{product_id}/variants.json"},
	{Method: http.MethodPut, Operation: OpUpdate, IDs: []string{"id"}, Template: "/variants/{id}.json"},
	{Method: http.MethodDelete, Operation: OpDelete, IDs: []string{"product_id", "id"}, Template: "/products/{product_id}/variants/{id}.json"},
}

// List retrieves the variants of a product.
func (s VariantsService) List(ctx context.Context, productID int64) ([]Variant, *Page, error) {
	method, path, err := resolveRequest("variant", variantPaths, OpAll, map[string]any{"product_id": productID})
	if err != nil {
		return nil, nil, err
	}
	resp, err := s.Execute(ctx, &Request{Method: method, Path: path})
	if err != nil {
		return nil, nil, err
	}
	var result struct {
		Variants []Variant `json:"variants"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, nil, err
	}
	return result.Variants, pageOf(resp), nil
}

// Get retrieves a variant by ID.
func (s VariantsService) Get(ctx context.Context, id int64) (*Variant, error) {
	method, path, err := resolveRequest("variant", variantPaths, OpFind, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	resp, err := s.Execute(ctx, &Request{Method: method, Path: path})
	if err != nil {
		return nil, err
	}
	var result struct {
		Variant Variant `json:"variant"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Variant, nil
}

// Count returns the number of variants on a product.
func (s VariantsService) Count(ctx context.Context, productID int64) (int, error) {
	return countResource(ctx, s.Client, "variant", variantPaths, map[string]any{"product_id": productID})
}

// Create adds a variant to a product.
func (s VariantsService) Create(ctx context.Context, productID int64, fields map[string]any) (*Variant, error) {
	method, path, err := resolveRequest("variant", variantPaths, OpCreate, map[string]any{"product_id": productID})
	if err != nil {
		return nil, err
	}
	resp, err := s.Execute(ctx, &Request{
		Method:   method,
		Path:     path,
		Body:     map[string]any{"variant": fields},
		BodyType: BodyJSON,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Variant Variant `json:"variant"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Variant, nil
}

// Delete removes a variant from its product. Both identifiers are
// required; the standalone template does not exist for deletion.
func (s VariantsService) Delete(ctx context.Context, productID, id int64) error {
	method, path, err := resolveRequest("variant", variantPaths, OpDelete, map[string]any{"product_id": productID, "id": id})
	if err != nil {
		return err
	}
	_, err = s.Execute(ctx, &Request{Method: method, Path: path})
	return err
}
