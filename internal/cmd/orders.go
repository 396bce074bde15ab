package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/api"
)

var orderCancelReasons = []string{"customer", "fraud", "inventory", "declined", "other"}

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order", "o"},
		Short:   "Manage orders",
	}

	cmd.AddCommand(newOrdersListCmd())
	cmd.AddCommand(newOrdersGetCmd())
	cmd.AddCommand(newOrdersCountCmd())
	cmd.AddCommand(newOrdersCancelCmd())

	return cmd
}

func newOrdersListCmd() *cobra.Command {
	var (
		limit           int
		pageInfo        string
		status          string
		financialStatus string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List orders",
		Example: strings.TrimSpace(`
  # List open orders
  shopctl orders list --status open

  # List unpaid orders
  shopctl orders list --financial-status pending
`),
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			orders, page, err := client.Orders().List(cmd.Context(), api.ListOrdersParams{
				Limit:           limit,
				PageInfo:        pageInfo,
				Status:          status,
				FinancialStatus: financialStatus,
			})
			if err != nil {
				return err
			}

			if isJSON() {
				payload := map[string]any{"orders": orders}
				if page != nil && page.Next != "" {
					payload["next_page_info"] = page.Next
				}
				return printJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(orders) == 0 {
				_, _ = fmt.Fprintln(out, "No orders found")
				return nil
			}

			w := newTabWriter(out)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tFINANCIAL\tFULFILLMENT\tTOTAL")
			for _, o := range orders {
				fulfillment := o.FulfillmentStatus
				if fulfillment == "" {
					fulfillment = "unfulfilled"
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s %s\n",
					o.ID, o.Name, o.FinancialStatus, fulfillment, o.TotalPrice, o.Currency)
			}
			_ = w.Flush()

			if page != nil && page.Next != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\nMore results: --page-info %s\n", page.Next)
			}
			return nil
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of orders to return (max 250)")
	cmd.Flags().StringVar(&pageInfo, "page-info", "", "Pagination cursor from a previous response")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: open|closed|cancelled|any")
	cmd.Flags().StringVar(&financialStatus, "financial-status", "", "Filter by financial status")

	return cmd
}

func newOrdersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order ID")
			if err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			order, err := client.Orders().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, order)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Order %s (%d)\n", order.Name, order.ID)
			_, _ = fmt.Fprintf(out, "  Financial status: %s\n", order.FinancialStatus)
			if order.FulfillmentStatus != "" {
				_, _ = fmt.Fprintf(out, "  Fulfillment: %s\n", order.FulfillmentStatus)
			}
			_, _ = fmt.Fprintf(out, "  Total: %s %s\n", order.TotalPrice, order.Currency)
			if order.Email != "" {
				_, _ = fmt.Fprintf(out, "  Email: %s\n", order.Email)
			}
			if order.CancelledAt != "" {
				_, _ = fmt.Fprintf(out, "  Cancelled: %s\n", order.CancelledAt)
			}
			return nil
		}),
	}
}

func newOrdersCountCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count orders",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			count, err := client.Orders().Count(cmd.Context(), status)
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

	cmd.Flags().StringVar(&status, "status", "", "Count orders with status: open|closed|cancelled|any")
	return cmd
}

func newOrdersCancelCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order ID")
			if err != nil {
				return err
			}

			if reason != "" && !isValidCancelReason(reason) {
				return fmt.Errorf("invalid cancel reason %q, expected one of: %s",
					reason, strings.Join(orderCancelReasons, ", "))
			}

			if err := confirmAction(cmd, fmt.Sprintf("Cancel order %d?", id)); err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			order, err := client.Orders().Cancel(cmd.Context(), id, reason)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, order)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cancelled order %s (%d)\n", order.Name, order.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason: customer|fraud|inventory|declined|other")
	return cmd
}

func isValidCancelReason(reason string) bool {
	for _, r := range orderCancelReasons {
		if r == reason {
			return true
		}
	}
	return false
}
