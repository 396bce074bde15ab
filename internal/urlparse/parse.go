// Package urlparse provides URL parsing utilities for Shopify admin URLs.
package urlparse

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ParsedURL represents a parsed admin URL with extracted resource information.
type ParsedURL struct {
	ShopDomain   string
	ResourceType string // singular form: product, order, variant, etc.
	ResourceID   int64  // optional, 0 if not present
}

// Supported resource types (plural form in URL, mapped to singular)
var resourceTypes = map[string]string{
	"products":    "product",
	"orders":      "order",
	"variants":    "variant",
	"collections": "collection",
	"customers":   "customer",
	"metafields":  "metafield",
}

// urlPattern matches admin URLs of the form:
// /admin/{resource_type}/{resource_id}?
var urlPattern = regexp.MustCompile(`^/admin/([a-z]+)(?:/(\d+))?(?:/.*)?$`)

// Parse extracts resource information from a Shopify admin URL.
// It accepts full URLs like https://example.myshopify.com/admin/products/123
// and returns the parsed components.
func Parse(rawURL string) (*ParsedURL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme == "" {
		return nil, fmt.Errorf("invalid URL: missing scheme (expected https://...)")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q: expected http or https", parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: missing host")
	}

	matches := urlPattern.FindStringSubmatch(parsed.Path)
	if matches == nil {
		return nil, fmt.Errorf("invalid admin URL format: expected /admin/{resource_type}[/{resource_id}]")
	}

	resourceTypePlural := matches[1]
	resourceTypeSingular, ok := resourceTypes[resourceTypePlural]
	if !ok {
		validTypes := make([]string, 0, len(resourceTypes))
		for k := range resourceTypes {
			validTypes = append(validTypes, k)
		}
		return nil, fmt.Errorf("unsupported resource type %q: expected one of %s", resourceTypePlural, strings.Join(validTypes, ", "))
	}

	var resourceID int64
	if matches[2] != "" {
		resourceID, err = strconv.ParseInt(matches[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid resource ID: %w", err)
		}
	}

	return &ParsedURL{
		ShopDomain:   parsed.Host,
		ResourceType: resourceTypeSingular,
		ResourceID:   resourceID,
	}, nil
}

// HasResourceID returns true if the parsed URL includes a resource ID.
func (p *ParsedURL) HasResourceID() bool {
	return p.ResourceID > 0
}
