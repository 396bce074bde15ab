package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/api"
	"github.com/shopctl/shopctl/internal/validation"
)

func newMetafieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "metafields",
		Aliases: []string{"metafield", "mf"},
		Short:   "Manage metafields",
		Long: "Manage metafields on the shop or on an owning resource.\n" +
			"Pass --product, --order, or --product with --variant to scope\n" +
			"an operation; with no owner flags it targets shop metafields.",
	}

	cmd.AddCommand(newMetafieldsListCmd())
	cmd.AddCommand(newMetafieldsGetCmd())
	cmd.AddCommand(newMetafieldsCountCmd())
	cmd.AddCommand(newMetafieldsCreateCmd())
	cmd.AddCommand(newMetafieldsUpdateCmd())
	cmd.AddCommand(newMetafieldsDeleteCmd())

	return cmd
}

// ownerFlags adds the shared owner-scoping flags and returns the bound owner.
func ownerFlags(cmd *cobra.Command) *api.MetafieldOwner {
	owner := &api.MetafieldOwner{}
	cmd.Flags().Int64Var(&owner.ProductID, "product", 0, "Scope to a product")
	cmd.Flags().Int64Var(&owner.VariantID, "variant", 0, "Scope to a variant (requires --product)")
	cmd.Flags().Int64Var(&owner.OrderID, "order", 0, "Scope to an order")
	return owner
}

func validateOwner(owner *api.MetafieldOwner) error {
	if owner.VariantID != 0 && owner.ProductID == 0 {
		return fmt.Errorf("--variant requires --product")
	}
	if owner.OrderID != 0 && owner.ProductID != 0 {
		return fmt.Errorf("--order and --product are mutually exclusive")
	}
	return nil
}

func newMetafieldsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List metafields",
		Example: "  shopctl metafields list --product 632910392",
	}
	owner := ownerFlags(cmd)

	cmd.RunE = RunE(func(cmd *cobra.Command, _ []string) error {
		if err := validateOwner(owner); err != nil {
			return err
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		metafields, _, err := client.Metafields().List(cmd.Context(), *owner)
		if err != nil {
			return err
		}

		if isJSON() {
			return printJSON(cmd, map[string]any{"metafields": metafields})
		}

		out := cmd.OutOrStdout()
		if len(metafields) == 0 {
			_, _ = fmt.Fprintln(out, "No metafields found")
			return nil
		}

		w := newTabWriter(out)
		_, _ = fmt.Fprintln(w, "ID\tNAMESPACE\tKEY\tTYPE\tVALUE")
		for _, m := range metafields {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n", m.ID, m.Namespace, m.Key, m.Type, m.Value)
		}
		return w.Flush()
	})

	return cmd
}

func newMetafieldsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a metafield",
		Args:  cobra.ExactArgs(1),
	}
	owner := ownerFlags(cmd)

	cmd.RunE = RunE(func(cmd *cobra.Command, args []string) error {
		if err := validateOwner(owner); err != nil {
			return err
		}
		id, err := parseID(args[0], "metafield ID")
		if err != nil {
			return err
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		metafield, err := client.Metafields().Get(cmd.Context(), *owner, id)
		if err != nil {
			return err
		}

		if isJSON() {
			return printJSON(cmd, metafield)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Metafield %d\n", metafield.ID)
		_, _ = fmt.Fprintf(out, "  Namespace: %s\n", metafield.Namespace)
		_, _ = fmt.Fprintf(out, "  Key: %s\n", metafield.Key)
		_, _ = fmt.Fprintf(out, "  Type: %s\n", metafield.Type)
		_, _ = fmt.Fprintf(out, "  Value: %v\n", metafield.Value)
		if metafield.OwnerResource != "" {
			_, _ = fmt.Fprintf(out, "  Owner: %s %d\n", metafield.OwnerResource, metafield.OwnerID)
		}
		return nil
	})

	return cmd
}

func newMetafieldsCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count metafields",
	}
	owner := ownerFlags(cmd)

	cmd.RunE = RunE(func(cmd *cobra.Command, _ []string) error {
		if err := validateOwner(owner); err != nil {
			return err
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		count, err := client.Metafields().Count(cmd.Context(), *owner)
		if err != nil {
			return err
		}

		if isJSON() {
			return printJSON(cmd, map[string]any{"count": count})
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), count)
		return nil
	})

	return cmd
}

func newMetafieldsCreateCmd() *cobra.Command {
	var (
		namespace string
		key       string
		value     string
		valueType string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a metafield",
		Example: "  shopctl metafields create --product 632910392 " +
			"--namespace inventory --key warehouse --value 25 --type number_integer",
	}
	owner := ownerFlags(cmd)

	cmd.RunE = RunE(func(cmd *cobra.Command, _ []string) error {
		if err := validateOwner(owner); err != nil {
			return err
		}
		if err := validation.ValidateMetafieldNamespace(namespace); err != nil {
			return err
		}
		if err := validation.ValidateMetafieldKey(key); err != nil {
			return err
		}
		if value == "" {
			return fmt.Errorf("--value is required")
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		metafield, err := client.Metafields().Create(cmd.Context(), *owner, api.Metafield{
			Namespace: namespace,
			Key:       key,
			Value:     value,
			Type:      valueType,
		})
		if err != nil {
			return err
		}

		if isJSON() {
			return printJSON(cmd, metafield)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created metafield %d: %s.%s\n",
			metafield.ID, metafield.Namespace, metafield.Key)
		return nil
	})

	cmd.Flags().StringVar(&namespace, "namespace", "", "Metafield namespace (required)")
	cmd.Flags().StringVar(&key, "key", "", "Metafield key (required)")
	cmd.Flags().StringVar(&value, "value", "", "Metafield value (required)")
	cmd.Flags().StringVar(&valueType, "type", "single_line_text_field", "Metafield value type")

	return cmd
}

func newMetafieldsUpdateCmd() *cobra.Command {
	var (
		value     string
		valueType string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a metafield's value",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "metafield ID")
			if err != nil {
				return err
			}
			if value == "" {
				return fmt.Errorf("--value is required")
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			metafield, err := client.Metafields().Update(cmd.Context(), id, value, valueType)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, metafield)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated metafield %d\n", metafield.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&value, "value", "", "New value (required)")
	cmd.Flags().StringVar(&valueType, "type", "", "New value type")

	return cmd
}

func newMetafieldsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a metafield",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "metafield ID")
			if err != nil {
				return err
			}

			if err := confirmAction(cmd, fmt.Sprintf("Delete metafield %d?", id)); err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			if err := client.Metafields().Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted metafield %d\n", id)
			return nil
		}),
	}
}
