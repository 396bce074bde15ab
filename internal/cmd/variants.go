package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVariantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "variants",
		Aliases: []string{"variant", "v"},
		Short:   "Manage product variants",
	}

	cmd.AddCommand(newVariantsListCmd())
	cmd.AddCommand(newVariantsGetCmd())
	cmd.AddCommand(newVariantsCountCmd())
	cmd.AddCommand(newVariantsCreateCmd())
	cmd.AddCommand(newVariantsDeleteCmd())

	return cmd
}

func newVariantsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list <product>",
		Aliases: []string{"ls"},
		Short:   "List variants of a product",
		Long:    "List variants of a product, referenced by numeric ID or fuzzy title.",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			productID, err := productIDFromArgs(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			variants, _, err := client.Variants().List(cmd.Context(), productID)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, map[string]any{"variants": variants})
			}

			out := cmd.OutOrStdout()
			if len(variants) == 0 {
				_, _ = fmt.Fprintln(out, "No variants found")
				return nil
			}

			w := newTabWriter(out)
			_, _ = fmt.Fprintln(w, "ID\tTITLE\tSKU\tPRICE\tINVENTORY")
			for _, v := range variants {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", v.ID, v.Title, v.SKU, v.Price, v.Inventory)
			}
			return w.Flush()
		}),
	}

	return cmd
}

func newVariantsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a variant",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "variant ID")
			if err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			variant, err := client.Variants().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, variant)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Variant %d\n", variant.ID)
			_, _ = fmt.Fprintf(out, "  Title: %s\n", variant.Title)
			if variant.SKU != "" {
				_, _ = fmt.Fprintf(out, "  SKU: %s\n", variant.SKU)
			}
			_, _ = fmt.Fprintf(out, "  Price: %s\n", variant.Price)
			_, _ = fmt.Fprintf(out, "  Inventory: %d\n", variant.Inventory)
			if variant.ProductID != 0 {
				_, _ = fmt.Fprintf(out, "  Product: %d\n", variant.ProductID)
			}
			return nil
		}),
	}
}

func newVariantsCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <product>",
		Short: "Count variants of a product",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			productID, err := productIDFromArgs(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			count, err := client.Variants().Count(cmd.Context(), productID)
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
}

func newVariantsCreateCmd() *cobra.Command {
	var (
		title     string
		price     string
		sku       string
		rawFields []string
	)

	cmd := &cobra.Command{
		Use:   "create <product>",
		Short: "Add a variant to a product",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			productID, err := productIDFromArgs(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			fields := map[string]any{}
			if title != "" {
				fields["option1"] = title
			}
			if price != "" {
				fields["price"] = price
			}
			if sku != "" {
				fields["sku"] = sku
			}
			for _, field := range rawFields {
				key, value, err := parseRawField(field)
				if err != nil {
					return err
				}
				fields[key] = value
			}
			if len(fields) == 0 {
				return fmt.Errorf("at least one of --title, --price, --sku is required")
			}

			variant, err := client.Variants().Create(cmd.Context(), productID, fields)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, variant)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created variant %d: %s\n", variant.ID, variant.Title)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "Variant option value, e.g. size or colour")
	cmd.Flags().StringVar(&price, "price", "", "Variant price")
	cmd.Flags().StringVar(&sku, "sku", "", "Stock keeping unit")
	cmd.Flags().StringArrayVarP(&rawFields, "raw-field", "F", nil, "Extra variant field as key=value (JSON parsed)")

	return cmd
}

func newVariantsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <product> <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a variant",
		Args:    cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			productID, err := productIDFromArgs(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1], "variant ID")
			if err != nil {
				return err
			}

			if err := confirmAction(cmd, fmt.Sprintf("Delete variant %d?", id)); err != nil {
				return err
			}

			if err := client.Variants().Delete(cmd.Context(), productID, id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted variant %d\n", id)
			return nil
		}),
	}

	return cmd
}
