package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexInt handles JSON numbers that may come as strings or integers.
// GraphQL responses carry numeric ids as strings while REST sends them
// as numbers.
type FlexInt int64

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*fi = FlexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*fi = 0
			return nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*fi = FlexInt(i)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexInt", data)
}

// Page carries the pagination cursors of one listing reply.
type Page struct {
	Prev string
	Next string
}

func pageOf(resp *Response) *Page {
	if resp.PrevPageInfo == "" && resp.NextPageInfo == "" {
		return nil
	}
	return &Page{Prev: resp.PrevPageInfo, Next: resp.NextPageInfo}
}

// Product is an Admin API product.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	BodyHTML    string    `json:"body_html,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	ProductType string    `json:"product_type,omitempty"`
	Handle      string    `json:"handle,omitempty"`
	Status      string    `json:"status,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}

// Variant is one purchasable version of a product.
type Variant struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"product_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Price      string `json:"price,omitempty"`
	SKU        string `json:"sku,omitempty"`
	Position   int    `json:"position,omitempty"`
	Inventory  int    `json:"inventory_quantity,omitempty"`
}

// Order is an Admin API order.
type Order struct {
	ID                int64  `json:"id"`
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	TotalPrice        string `json:"total_price,omitempty"`
	Currency          string `json:"currency,omitempty"`
	FinancialStatus   string `json:"financial_status,omitempty"`
	FulfillmentStatus string `json:"fulfillment_status,omitempty"`
	CancelledAt       string `json:"cancelled_at,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

// Metafield is a namespaced key/value attached to an owning resource.
type Metafield struct {
	ID            int64  `json:"id"`
	Namespace     string `json:"namespace"`
	Key           string `json:"key"`
	Value         any    `json:"value"`
	Type          string `json:"type,omitempty"`
	OwnerID       int64  `json:"owner_id,omitempty"`
	OwnerResource string `json:"owner_resource,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}
