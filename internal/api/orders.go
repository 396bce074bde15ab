package api

import (
	"context"
	"net/http"
	"strconv"
)

var orderPaths = []PathSpec{
	{Method: http.MethodGet, Operation: OpFind, IDs: []string{"id"}, Template: "/orders/{id}.json"},
	{Method: http.MethodGet, Operation: OpAll, IDs: nil, Template: "/orders.json"},
	{Method: http.MethodGet, Operation: OpCount, IDs: nil, Template: "/orders/count.json"},
	{Method: http.MethodPost, Operation: OpCreate, IDs: nil, Template: "/orders.json"},
	{Method: http.MethodPut, Operation: OpUpdate, IDs: []string{"id"}, Template: "/orders/{id}.json"},
	{Method: http.MethodDelete, Operation: OpDelete, IDs: []string{"id"}, Template: "/orders/{id}.json"},
	{Method: http.MethodPost, Operation: OpCancel, IDs: []string{"id"}, Template: "/orders/{id}/cancel.json"},
}

// ListOrdersParams defines filters for listing orders.
type ListOrdersParams struct {
	Limit           int
	PageInfo        string
	Status          string
	FinancialStatus string
}

func (p ListOrdersParams) query() map[string]string {
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
	if p.FinancialStatus != "" {
		query["financial_status"] = p.FinancialStatus
	}
	return query
}

// List retrieves orders with pagination.
func (s OrdersService) List(ctx context.Context, params ListOrdersParams) ([]Order, *Page, error) {
	return listOrders(ctx, s.Client, params)
}

func listOrders(ctx context.Context, r Executor, params ListOrdersParams) ([]Order, *Page, error) {
	method, path, err := resolveRequest("order", orderPaths, OpAll, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := r.Execute(ctx, &Request{Method: method, Path: path, Query: params.query()})
	if err != nil {
		return nil, nil, err
	}
	var result struct {
		Orders []Order `json:"orders"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, nil, err
	}
	return result.Orders, pageOf(resp), nil
}

// Get retrieves an order by ID.
func (s OrdersService) Get(ctx context.Context, id int64) (*Order, error) {
	method, path, err := resolveRequest("order", orderPaths, OpFind, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	resp, err := s.Execute(ctx, &Request{Method: method, Path: path})
	if err != nil {
		return nil, err
	}
	var result struct {
		Order Order `json:"order"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Order, nil
}

// Count returns the number of orders matching the status filter.
func (s OrdersService) Count(ctx context.Context, status string) (int, error) {
	method, path, err := resolveRequest("order", orderPaths, OpCount, nil)
	if err != nil {
		return 0, err
	}
	query := map[string]string{}
	if status != "" {
		query["status"] = status
	}
	resp, err := s.Execute(ctx, &Request{Method: method, Path: path, Query: query})
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

// Cancel cancels an order. A reason of "" lets the platform default
// apply; otherwise one of customer, inventory, fraud, declined, other.
func (s OrdersService) Cancel(ctx context.Context, id int64, reason string) (*Order, error) {
	method, path, err := resolveRequest("order", orderPaths, OpCancel, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	body := map[string]any{}
	if reason != "" {
		body["reason"] = reason
	}
	resp, err := s.Execute(ctx, &Request{
		Method:   method,
		Path:     path,
		Body:     body,
		BodyType: BodyJSON,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Order Order `json:"order"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Order, nil
}
