package schema

// resources holds the static schema for every introspectable resource.
var resources = map[string]*Schema{
	"product":    productSchema(),
	"variant":    variantSchema(),
	"order":      orderSchema(),
	"metafield":  metafieldSchema(),
	"customer":   customerSchema(),
	"collection": collectionSchema(),
}

func productSchema() *Schema {
	return obj(
		"A product in the shop catalog",
		map[string]*Schema{
			"id":     integer("Unique product identifier"),
			"title":  str("Product display title"),
			"handle": str("URL handle (lowercase, hyphenated)"),
			"status": enum("Product lifecycle status",
				"active", "archived", "draft"),
			"vendor":       str("Product vendor name"),
			"product_type": str("Merchant-defined product category"),
			"body_html":    str("Product description in HTML"),
			"tags":         str("Comma-separated product tags"),
			"variants":     array(mapOf("Variant fields"), "Product variants"),
			"options":      array(mapOf("Option fields"), "Product options (size, color, etc.)"),
			"published_at": timestamp("When the product was published"),
			"created_at":   timestamp("When the product was created"),
			"updated_at":   timestamp("When the product was last updated"),
		},
		"id", "title", "status", "created_at",
	)
}

func variantSchema() *Schema {
	return obj(
		"A purchasable variant of a product",
		map[string]*Schema{
			"id":                   integer("Unique variant identifier"),
			"product_id":           integer("ID of the parent product"),
			"title":                str("Variant display title"),
			"sku":                  str("Stock keeping unit"),
			"price":                str("Variant price as a decimal string"),
			"compare_at_price":     str("Original price before discount"),
			"position":             integer("Position within the product's variant list"),
			"inventory_quantity":   integer("Available inventory count"),
			"inventory_management": str("Inventory tracking service (shopify or null)"),
			"barcode":              str("Barcode (ISBN, UPC, GTIN)"),
			"grams":                integer("Weight in grams"),
			"created_at":           timestamp("When the variant was created"),
			"updated_at":           timestamp("When the variant was last updated"),
		},
		"id", "product_id", "title", "price",
	)
}

func orderSchema() *Schema {
	return obj(
		"A customer order",
		map[string]*Schema{
			"id":           integer("Unique order identifier"),
			"order_number": integer("Sequential order number shown to the customer"),
			"name":         str("Order name including prefix (#1001)"),
			"email":        str("Customer email address"),
			"financial_status": enum("Payment status",
				"pending", "authorized", "paid", "partially_paid",
				"refunded", "partially_refunded", "voided"),
			"fulfillment_status": enum("Fulfillment status",
				"fulfilled", "partial", "restocked"),
			"total_price":    str("Order total as a decimal string"),
			"subtotal_price": str("Subtotal before tax and shipping"),
			"currency":       str("ISO 4217 currency code"),
			"line_items":     array(mapOf("Line item fields"), "Ordered items"),
			"tags":           str("Comma-separated order tags"),
			"cancelled_at":   timestamp("When the order was cancelled (null if not)"),
			"cancel_reason": enum("Reason the order was cancelled",
				"customer", "fraud", "inventory", "declined", "other"),
			"created_at": timestamp("When the order was placed"),
			"updated_at": timestamp("When the order was last updated"),
		},
		"id", "name", "financial_status", "created_at",
	)
}

func metafieldSchema() *Schema {
	return obj(
		"A namespaced key-value attached to a shop resource",
		map[string]*Schema{
			"id":             integer("Unique metafield identifier"),
			"namespace":      str("Container grouping related metafields"),
			"key":            str("Metafield key, unique within the namespace"),
			"value":          str("Metafield value"),
			"type":           str("Value type (single_line_text_field, number_integer, json, etc.)"),
			"description":    str("Human-readable description"),
			"owner_id":       integer("ID of the owning resource"),
			"owner_resource": str("Type of the owning resource (product, order, variant, shop)"),
			"created_at":     timestamp("When the metafield was created"),
			"updated_at":     timestamp("When the metafield was last updated"),
		},
		"id", "namespace", "key", "value", "type",
	)
}

func customerSchema() *Schema {
	return obj(
		"A shop customer",
		map[string]*Schema{
			"id":         integer("Unique customer identifier"),
			"email":      str("Customer email address"),
			"first_name": str("Customer first name"),
			"last_name":  str("Customer last name"),
			"phone":      str("Customer phone number"),
			"state": enum("Account state",
				"disabled", "invited", "enabled", "declined"),
			"orders_count": integer("Number of orders this customer has placed"),
			"total_spent":  str("Lifetime spend as a decimal string"),
			"tags":         str("Comma-separated customer tags"),
			"created_at":   timestamp("When the customer was created"),
			"updated_at":   timestamp("When the customer was last updated"),
		},
		"id", "email", "created_at",
	)
}

func collectionSchema() *Schema {
	return obj(
		"A custom collection grouping products",
		map[string]*Schema{
			"id":        integer("Unique collection identifier"),
			"title":     str("Collection display title"),
			"handle":    str("URL handle (lowercase, hyphenated)"),
			"body_html": str("Collection description in HTML"),
			"sort_order": enum("Product sort order within the collection",
				"alpha-asc", "alpha-desc", "best-selling", "created",
				"created-desc", "manual", "price-asc", "price-desc"),
			"published_at": timestamp("When the collection was published"),
			"updated_at":   timestamp("When the collection was last updated"),
		},
		"id", "title",
	)
}
