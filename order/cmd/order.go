package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/order/pkg/gateway"
	"github.com/Alturino/restaurant/order/pkg/response"
)

func printOrders(w io.Writer, orders []response.Order, withCustomer bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if withCustomer {
		fmt.Fprintln(tw, "ID\tSTATUS\tTOTAL\tDATE\tCUSTOMER")
	} else {
		fmt.Fprintln(tw, "ID\tSTATUS\tTOTAL\tDATE")
	}
	for _, order := range orders {
		if withCustomer {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", order.ID, order.Status, order.Total.StringFixed(2), order.CreatedAt, order.Customer)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", order.ID, order.Status, order.Total.StringFixed(2), order.CreatedAt)
		}
		for _, item := range order.Items {
			fmt.Fprintf(tw, "\t%d x %s\t%s\t\n", item.Quantity, item.Title, item.Price.StringFixed(2))
		}
	}
	return tw.Flush()
}

func NewCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List the orders placed with the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_ORDER_SERVICE)
			if err != nil {
				return err
			}
			defer a.Close(c)

			orders, err := gateway.New(a.API).ListOrders(c)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no orders yet")
				return err
			}
			return printOrders(cmd.OutOrStdout(), orders, false)
		},
	}
}
