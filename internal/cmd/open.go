package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/api"
	"github.com/shopctl/shopctl/internal/urlparse"
)

var openResourceAliases = map[string]string{
	"product":    "product",
	"products":   "product",
	"p":          "product",
	"order":      "order",
	"orders":     "order",
	"o":          "order",
	"variant":    "variant",
	"variants":   "variant",
	"v":          "variant",
	"metafield":  "metafield",
	"metafields": "metafield",
	"mf":         "metafield",
}

func normalizeOpenResourceType(input string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", fmt.Errorf("resource type cannot be empty")
	}
	if resourceType, ok := openResourceAliases[normalized]; ok {
		return resourceType, nil
	}
	return "", fmt.Errorf("invalid resource type %q: must be one of product (p), order (o), variant (v), metafield (mf)", input)
}

// resolveOpenTarget maps the open command's argument forms onto a
// resource type and ID:
//  1. open <resource> <id>
//  2. open <id> --type <resource>
//  3. open <url>              (an admin URL like https://shop.myshopify.com/admin/products/123)
//  4. open <typed-id>         ("product:123" style shorthand)
//  5. open <id>               (bare ID, defaults to product)
func resolveOpenTarget(args []string, resourceTypeFlag string) (string, int64, *urlparse.ParsedURL, error) {
	if len(args) == 2 {
		if resourceTypeFlag != "" {
			return "", 0, nil, fmt.Errorf("--type cannot be used with <resource> <id> arguments")
		}
		rt, err := normalizeOpenResourceType(args[0])
		if err != nil {
			return "", 0, nil, err
		}
		id, err := parseID(args[1], rt+" ID")
		if err != nil {
			return "", 0, nil, err
		}
		return rt, id, nil, nil
	}

	raw := strings.TrimSpace(args[0])

	if strings.TrimSpace(resourceTypeFlag) != "" {
		rt, err := normalizeOpenResourceType(resourceTypeFlag)
		if err != nil {
			return "", 0, nil, err
		}
		id, err := parseID(raw, rt+" ID")
		if err != nil {
			return "", 0, nil, err
		}
		return rt, id, nil, nil
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		parsed, err := urlparse.Parse(raw)
		if err != nil {
			return "", 0, nil, fmt.Errorf("failed to parse URL: %w", err)
		}
		return "", 0, parsed, nil
	}

	// Typed shorthand like "order:450789469".
	if prefix, rest, ok := strings.Cut(raw, ":"); ok {
		rt, normErr := normalizeOpenResourceType(prefix)
		if normErr != nil {
			return "", 0, nil, normErr
		}
		id, err := parseID(rest, rt+" ID")
		if err != nil {
			return "", 0, nil, err
		}
		return rt, id, nil, nil
	}

	id, err := parseID(raw, "product ID")
	if err != nil {
		if strings.Contains(raw, "/") {
			return "", 0, nil, fmt.Errorf("failed to parse URL: missing scheme, expected https://<shop>/admin/...")
		}
		return "", 0, nil, err
	}
	return "product", id, nil, nil
}

func newOpenCmd() *cobra.Command {
	var resourceTypeFlag string

	cmd := &cobra.Command{
		Use:   "open <url> | open <resource> <id> | open <id> [--type <resource>]",
		Short: "Open an admin URL or resource ID and display details",
		Long: `Parse a shop admin URL (or resource + ID) and display the resource,
as if you had run the matching get command directly.

Supported URL formats:
  https://{shop}.myshopify.com/admin/products/{id}
  https://{shop}.myshopify.com/admin/orders/{id}
  https://{shop}.myshopify.com/admin/variants/{id}
  https://{shop}.myshopify.com/admin/metafields/{id}

A bare ID (or "product:123" style shorthand) defaults to a product.`,
		Example: strings.TrimSpace(`
  # Open an admin URL
  shopctl open https://example.myshopify.com/admin/products/632910392

  # Open by resource type + ID
  shopctl open order 450789469

  # Open by bare ID (defaults to product)
  shopctl open 632910392

  # Typed shorthand
  shopctl open order:450789469
`),
		Args: cobra.RangeArgs(1, 2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			resourceType, resourceID, parsed, err := resolveOpenTarget(args, resourceTypeFlag)
			if err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			if parsed != nil {
				if !strings.EqualFold(parsed.ShopDomain, client.ShopDomain) {
					return fmt.Errorf("URL shop %q does not match authenticated shop %q; run 'shopctl auth login' to switch shops",
						parsed.ShopDomain, client.ShopDomain)
				}
				if !parsed.HasResourceID() {
					return fmt.Errorf("URL must include a resource ID (e.g., /admin/products/123)")
				}
				resourceType = parsed.ResourceType
				resourceID = parsed.ResourceID
			}

			ctx := cmd.Context()
			switch resourceType {
			case "product":
				product, err := client.Products().Get(ctx, resourceID)
				if err != nil {
					return fmt.Errorf("failed to get product %d: %w", resourceID, err)
				}
				return printJSON(cmd, product)
			case "order":
				order, err := client.Orders().Get(ctx, resourceID)
				if err != nil {
					return fmt.Errorf("failed to get order %d: %w", resourceID, err)
				}
				return printJSON(cmd, order)
			case "variant":
				variant, err := client.Variants().Get(ctx, resourceID)
				if err != nil {
					return fmt.Errorf("failed to get variant %d: %w", resourceID, err)
				}
				return printJSON(cmd, variant)
			case "metafield":
				metafield, err := client.Metafields().Get(ctx, api.MetafieldOwner{}, resourceID)
				if err != nil {
					return fmt.Errorf("failed to get metafield %d: %w", resourceID, err)
				}
				return printJSON(cmd, metafield)
			default:
				return fmt.Errorf("opening %s resources is not supported", resourceType)
			}
		}),
	}

	cmd.Flags().StringVar(&resourceTypeFlag, "type", "", "Resource type when passing a bare ID")

	return cmd
}
