package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/api"
	"github.com/shopctl/shopctl/internal/validation"
)

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Manage products",
	}

	cmd.AddCommand(newProductsListCmd())
	cmd.AddCommand(newProductsGetCmd())
	cmd.AddCommand(newProductsCountCmd())
	cmd.AddCommand(newProductsCreateCmd())
	cmd.AddCommand(newProductsUpdateCmd())
	cmd.AddCommand(newProductsDeleteCmd())

	return cmd
}

func newProductsListCmd() *cobra.Command {
	var (
		limit      int
		pageInfo   string
		status     string
		vendor     string
		collection int64
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products",
		Example: strings.TrimSpace(`
  # List active products
  shopctl products list --status active

  # List products in a collection
  shopctl products list --collection 841564295

  # Continue from a pagination cursor
  shopctl products list --page-info <cursor>
`),
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			products, page, err := client.Products().List(cmd.Context(), api.ListProductsParams{
				Limit:        limit,
				PageInfo:     pageInfo,
				Status:       status,
				Vendor:       vendor,
				CollectionID: collection,
			})
			if err != nil {
				return err
			}

			if isJSON() {
				payload := map[string]any{"products": products}
				if page != nil && page.Next != "" {
					payload["next_page_info"] = page.Next
				}
				return printJSON(cmd, payload)
			}

			return printProductTable(cmd, products, page)
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of products to return (max 250)")
	cmd.Flags().StringVar(&pageInfo, "page-info", "", "Pagination cursor from a previous response")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: active|archived|draft")
	cmd.Flags().StringVar(&vendor, "vendor", "", "Filter by vendor")
	cmd.Flags().Int64Var(&collection, "collection", 0, "List products in a collection")

	return cmd
}

func printProductTable(cmd *cobra.Command, products []api.Product, page *api.Page) error {
	out := cmd.OutOrStdout()
	if len(products) == 0 {
		_, _ = fmt.Fprintln(out, "No products found")
		return nil
	}

	w := newTabWriter(out)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tVENDOR")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, p.Vendor)
	}
	_ = w.Flush()

	if page != nil && page.Next != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\nMore results: --page-info %s\n", page.Next)
	}
	return nil
}

func newProductsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|title>",
		Short: "Show a product",
		Long:  "Show a product by numeric ID, or by fuzzy-matching its title.",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			id, err := productIDFromArgs(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			product, err := client.Products().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, product)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Product %d\n", product.ID)
			_, _ = fmt.Fprintf(out, "  Title: %s\n", product.Title)
			_, _ = fmt.Fprintf(out, "  Status: %s\n", product.Status)
			if product.Vendor != "" {
				_, _ = fmt.Fprintf(out, "  Vendor: %s\n", product.Vendor)
			}
			if product.Handle != "" {
				_, _ = fmt.Fprintf(out, "  Handle: %s\n", product.Handle)
			}
			if len(product.Variants) > 0 {
				_, _ = fmt.Fprintf(out, "  Variants: %d\n", len(product.Variants))
			}
			return nil
		}),
	}
}

func newProductsCountCmd() *cobra.Command {
	var collection int64

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count products",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			count, err := client.Products().Count(cmd.Context(), collection)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, map[string]any{"count": count})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		}),
	}

	cmd.Flags().Int64Var(&collection, "collection", 0, "Count products in a collection")
	return cmd
}

func newProductsCreateCmd() *cobra.Command {
	var (
		title     string
		vendor    string
		status    string
		bodyHTML  string
		tags      string
		rawFields []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Example: strings.TrimSpace(`
  # Create a draft product
  shopctl products create --title "Classic Tee" --vendor Acme --status draft

  # Set extra fields as JSON
  shopctl products create --title "Classic Tee" -F 'tags="summer, cotton"'
`),
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			if err := validation.ValidateTitle(title); err != nil {
				return err
			}

			fields := map[string]any{"title": title}
			if vendor != "" {
				fields["vendor"] = vendor
			}
			if status != "" {
				fields["status"] = status
			}
			if bodyHTML != "" {
				fields["body_html"] = bodyHTML
			}
			if tags != "" {
				fields["tags"] = tags
			}
			for _, field := range rawFields {
				key, value, err := parseRawField(field)
				if err != nil {
					return err
				}
				fields[key] = value
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			product, err := client.Products().Create(cmd.Context(), fields)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, product)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created product %d: %s\n", product.ID, product.Title)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "Product title (required)")
	cmd.Flags().StringVar(&vendor, "vendor", "", "Product vendor")
	cmd.Flags().StringVar(&status, "status", "", "Product status: active|archived|draft")
	cmd.Flags().StringVar(&bodyHTML, "body-html", "", "Product description in HTML")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringArrayVarP(&rawFields, "raw-field", "F", nil, "Extra product field as key=value (JSON parsed)")

	return cmd
}

func newProductsUpdateCmd() *cobra.Command {
	var (
		title     string
		vendor    string
		status    string
		tags      string
		rawFields []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product ID")
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if cmd.Flags().Changed("title") {
				if err := validation.ValidateTitle(title); err != nil {
					return err
				}
				fields["title"] = title
			}
			if cmd.Flags().Changed("vendor") {
				fields["vendor"] = vendor
			}
			if cmd.Flags().Changed("status") {
				fields["status"] = status
			}
			if cmd.Flags().Changed("tags") {
				fields["tags"] = tags
			}
			for _, field := range rawFields {
				key, value, err := parseRawField(field)
				if err != nil {
					return err
				}
				fields[key] = value
			}
			if len(fields) == 0 {
				return fmt.Errorf("at least one field to update is required")
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			product, err := client.Products().Update(cmd.Context(), id, fields)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, product)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated product %d\n", product.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "New product title")
	cmd.Flags().StringVar(&vendor, "vendor", "", "New vendor")
	cmd.Flags().StringVar(&status, "status", "", "New status: active|archived|draft")
	cmd.Flags().StringVar(&tags, "tags", "", "New comma-separated tags")
	cmd.Flags().StringArrayVarP(&rawFields, "raw-field", "F", nil, "Extra product field as key=value (JSON parsed)")

	return cmd
}

func newProductsDeleteCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete one or more products",
		Args:    cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg, "product ID")
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			if err := confirmAction(cmd, fmt.Sprintf("Delete %d product(s)?", len(ids))); err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			if len(ids) == 1 {
				if err := client.Products().Delete(cmd.Context(), ids[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %d\n", ids[0])
				return nil
			}

			results := runBulkOperation(cmd.Context(), ids, concurrency, !flags.Quiet, cmd.ErrOrStderr(),
				func(ctx context.Context, id int64) (struct{}, error) {
					return struct{}{}, client.Products().Delete(ctx, id)
				})

			return reportBulkResults(cmd, "deleted", results)
		}),
	}

	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Concurrent delete workers")
	return cmd
}
