package api

import (
	"context"
	"net/http"
	"strconv"
)

// productPaths lists every way a product operation can be addressed.
// Listing is reachable standalone and nested under a collection; the
// resolver prefers the collection path when a collection_id is in hand.
var productPaths = []PathSpec{
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"id"}, Template: "/products/{id}.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: nil, Template: "/products.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: []string{"collection_id"}, Template: "/collections/{collection_id}/products.json"},
	{Method: http.MethodGet, Operation: OpCount, IDs: nil, Template: "/products/count.json"},
	{Method: http.MethodGet, Operation: OpCount, IDs: []string{"collection_id"}, Template: "/collections/{collection_id}/products/count.json"},
	{Method: http.MethodPost, Operation: OpCreate, IDs: nil, Template: "/products.json"},
	{Method: http.MethodPut, Operation: OpUpdate, IDs: []string{"id"}, Template: "/products/{id}.json"},
	{Method: http.MethodDelete, Operation: OpDelete, IDs: []string{"id"}, Template: "/products/{id}.json"},
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	Limit        int
	PageInfo     string
	Status       string
	Vendor       string
	CollectionID int64
}

func (p ListProductsParams) query() map[string]string {
	query := map[string]string{}
	if p.Limit > 0 {
		query["limit"] = strconv.Itoa(p.Limit)
	}
	if p.PageInfo != "" {
		query["page_info"] = p.PageInfo
	}
	if p.Status != "" {
		query["status"] = p.Status
	}
	if p.Vendor != "" {
		query["vendor"] = p.Vendor
	}
	return query
}

func (p ListProductsParams) ids() map[string]any {
	ids := map[string]any{}
	if p.CollectionID != 0 {
		ids["collection_id"] = p.CollectionID
	}
	return ids
}

// List retrieves products, optionally scoped to a collection.
func (s ProductsService) List(ctx context.Context, params ListProductsParams) ([]Product, *Page, error) {
	return listProducts(ctx, s.Client, params)
}

func listProducts(ctx context.Context, r Executor, params ListProductsParams) ([]Product, *Page, error) {
	method, path, err := resolveRequest("product", productPaths, OpAll, params.ids())
	if err != nil {
		return nil, nil, err
	}
	resp, err := r.Execute(ctx, &Request{Method: method, Path: path, Query: params.query()})
	if err != nil {
		return nil, nil, err
	}
	var result struct {
		Products []Product `json:"products"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, nil, err
	}
	return result.Products, pageOf(resp), nil
}

// Get retrieves a product by ID.
func (s ProductsService) Get(ctx context.Context, id int64) (*Product, error) {
	return getProduct(ctx, s.Client, id)
}

func getProduct(ctx context.Context, r Executor, id int64) (*Product, error) {
	method, path, err := resolveRequest("product", productPaths, OpFind, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	resp, err := r.Execute(ctx, &Request{Method: method, Path: path})
	if err != nil {
		return nil, err
	}
	var result struct {
		Product Product `json:"product"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Product, nil
}

// Count returns the number of products, optionally within a collection.
func (s ProductsService) Count(ctx context.Context, collectionID int64) (int, error) {
	ids := map[string]any{}
	if collectionID != 0 {
		ids["collection_id"] = collectionID
	}
	return countResource(ctx, s.Client, "product", productPaths, ids)
}

// Create creates a product from a field map so callers can send any
// subset of product fields.
func (s ProductsService) Create(ctx context.Context, fields map[string]any) (*Product, error) {
	method, path, err := resolveRequest("product", productPaths, OpCreate, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Execute(ctx, &Request{
		Method:   method,
		Path:     path,
		Body:     map[string]any{"product": fields},
		BodyType: BodyJSON,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Product Product `json:"product"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Product, nil
}

// Update applies a partial update to a product.
func (s ProductsService) Update(ctx context.Context, id int64, fields map[string]any) (*Product, error) {
	method, path, err := resolveRequest("product", productPaths, OpUpdate, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	fields["id"] = id
	resp, err := s.Execute(ctx, &Request{
		Method:   method,
		Path:     path,
		Body:     map[string]any{"product": fields},
		BodyType: BodyJSON,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Product Product `json:"product"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Product, nil
}

// Delete removes a product.
func (s ProductsService) Delete(ctx context.Context, id int64) error {
	method, path, err := resolveRequest("product", productPaths, OpDelete, map[string]any{"id": id})
	if err != nil {
		return err
	}
	_, err = s.Execute(ctx, &Request{Method: method, Path: path})
	return err
}

// countResource runs a count operation against any resource table.
func countResource(ctx context.Context, r Executor, resource string, table []PathSpec, ids map[string]any) (int, error) {
	method, path, err := resolveRequest(resource, table, OpCount, ids)
	if err != nil {
		return 0, err
	}
	resp, err := r.Execute(ctx, &Request{Method: method, Path: path})
	if err != nil {
		return 0, err
	}
	var result struct {
		Count int `json:"count"`
	}
	if err := resp.Decode(&result); err != nil {
		return 0, err
	}
	return result.Count, nil
}
