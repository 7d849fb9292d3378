package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/order/pkg/gateway"
)

func withKitchen(cmd *cobra.Command, opts *app.Options, run func(c context.Context, gw *gateway.HTTPGateway) error) error {
	c, a, err := app.New(cmd.Context(), *opts, constants.APP_ORDER_SERVICE)
	if err != nil {
		return err
	}
	defer a.Close(c)
	return run(c, gateway.New(a.API))
}

// NewKitchenCommand works the kitchen queue for a cook account.
func NewKitchenCommand(opts *app.Options) *cobra.Command {
	kitchenCmd := &cobra.Command{
		Use:   "kitchen",
		Short: "Work the kitchen order queue",
	}

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "List the orders waiting to be prepared",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKitchen(cmd, opts, func(c context.Context, gw *gateway.HTTPGateway) error {
				orders, err := gw.ListPending(c)
				if err != nil {
					return err
				}
				if len(orders) == 0 {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "no pending orders")
					return err
				}
				return printOrders(cmd.OutOrStdout(), orders, true)
			})
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete <order-id>",
		Short: "Mark an order as prepared",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKitchen(cmd, opts, func(c context.Context, gw *gateway.HTTPGateway) error {
				if err := gw.CompleteOrder(c, domain.ID(args[0])); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "order %s completed\n", args[0])
				return err
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <order-id>",
		Short: "Delete an order from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKitchen(cmd, opts, func(c context.Context, gw *gateway.HTTPGateway) error {
				if err := gw.DeleteOrder(c, domain.ID(args[0])); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "order %s deleted\n", args[0])
				return err
			})
		},
	}

	var todayOnly bool
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List the orders the kitchen has handled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKitchen(cmd, opts, func(c context.Context, gw *gateway.HTTPGateway) error {
				orders, err := gw.KitchenHistory(c, todayOnly)
				if err != nil {
					return err
				}
				if len(orders) == 0 {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "no orders in history")
					return err
				}
				return printOrders(cmd.OutOrStdout(), orders, true)
			})
		},
	}
	historyCmd.Flags().BoolVar(&todayOnly, "today", false, "only show today's orders")

	kitchenCmd.AddCommand(pendingCmd, completeCmd, deleteCmd, historyCmd)
	return kitchenCmd
}
