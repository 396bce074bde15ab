package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Input length limits to prevent resource exhaustion
const (
	MaxTitleLength     = 255
	MaxHandleLength    = 255
	MaxNamespaceLength = 255     // metafield namespace
	MaxKeyLength       = 64      // metafield key
	MaxJSONPayload     = 1048576 // 1MB for JSON payloads
	MaxURLLength       = 2048    // Standard browser URL limit
)

// myshopifyDomain matches shop subdomains like "example-store.myshopify.com".
var myshopifyDomain = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// ValidateTitle validates a resource title length
func ValidateTitle(title string) error {
	if title == "" {
		return nil // Empty titles are allowed (field is optional in some contexts)
	}

	length := utf8.RuneCountInString(title)
	if length > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters (got %d)", MaxTitleLength, length)
	}

	return nil
}

// ValidateHandle validates a URL handle. Handles are lowercase with hyphens.
func ValidateHandle(handle string) error {
	if handle == "" {
		return nil
	}

	length := utf8.RuneCountInString(handle)
	if length > MaxHandleLength {
		return fmt.Errorf("handle exceeds maximum length of %d characters (got %d)", MaxHandleLength, length)
	}

	for _, r := range handle {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '-' {
			continue
		}
		return fmt.Errorf("invalid handle: contains invalid character '%c'", r)
	}
	return nil
}

// ValidateMetafieldNamespace validates a metafield namespace length.
func ValidateMetafieldNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("metafield namespace cannot be empty")
	}

	length := utf8.RuneCountInString(namespace)
	if length > MaxNamespaceLength {
		return fmt.Errorf("metafield namespace exceeds maximum length of %d characters (got %d)", MaxNamespaceLength, length)
	}

	return nil
}

// ValidateMetafieldKey validates a metafield key length.
func ValidateMetafieldKey(key string) error {
	if key == "" {
		return fmt.Errorf("metafield key cannot be empty")
	}

	length := utf8.RuneCountInString(key)
	if length > MaxKeyLength {
		return fmt.Errorf("metafield key exceeds maximum length of %d characters (got %d)", MaxKeyLength, length)
	}

	return nil
}

// ValidateJSONPayload validates JSON payload size
func ValidateJSONPayload(payload string) error {
	if payload == "" {
		return fmt.Errorf("JSON payload cannot be empty")
	}

	// Use byte length for JSON payloads as they're transmitted as UTF-8
	length := len(payload)
	if length > MaxJSONPayload {
		return fmt.Errorf("JSON payload exceeds maximum size of %d bytes (got %d)", MaxJSONPayload, length)
	}

	return nil
}

// ValidateShopDomain validates a *.myshopify.com shop domain.
// Accepts bare shop names ("example") and full domains.
func ValidateShopDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("shop domain cannot be empty")
	}

	lowercase := strings.ToLower(strings.TrimSpace(domain))
	if !strings.Contains(lowercase, ".") {
		lowercase += ".myshopify.com"
	}
	if !myshopifyDomain.MatchString(lowercase) {
		return fmt.Errorf("invalid shop domain %q: expected <shop>.myshopify.com", domain)
	}
	return nil
}

// ParsePositiveID parses a string as a positive integer resource ID.
// Returns error if the value is not a positive integer.
func ParsePositiveID(s string, fieldName string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	id64, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", fieldName, err)
	}
	if id64 <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", fieldName)
	}
	return id64, nil
}
