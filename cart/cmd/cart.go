package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Alturino/restaurant/cart/internal/metrics"
	"github.com/Alturino/restaurant/cart/internal/service"
	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/cart/pkg/response"
	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/order/pkg/gateway"
	"github.com/Alturino/restaurant/product/pkg/catalog"
)

// NewCartStore builds the cart over the app's store, submitting orders
// through the backend.
func NewCartStore(c context.Context, a *app.App, m *metrics.Metrics) (*service.CartStore, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "cart NewCartStore").
		Str(constants.KEY_PROCESS, "parsing tax rate").
		Logger()

	taxRate, err := decimal.NewFromString(a.Config.Cart.TaxRate)
	if err == nil && taxRate.IsNegative() {
		err = errors.New("tax rate is negative")
	}
	if err != nil {
		err = fmt.Errorf("failed parsing tax rate=%q with error=%w", a.Config.Cart.TaxRate, err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	return service.NewCartStore(
		a.Store,
		gateway.New(a.API),
		service.WithTaxRate(taxRate),
		service.WithLocale(domain.ParseLocale(a.Config.Cart.Locale)),
		service.WithMetrics(m),
	), nil
}

// withCart runs fn with a ready cart and releases everything afterwards.
func withCart(cmd *cobra.Command, opts *app.Options, fn func(c context.Context, a *app.App, store *service.CartStore) error) error {
	c, a, err := app.New(cmd.Context(), *opts, constants.APP_CART_SERVICE)
	if err != nil {
		return err
	}
	defer a.Close(c)

	store, err := NewCartStore(c, a, metrics.New())
	if err != nil {
		return err
	}
	return fn(c, a, store)
}

func printCart(w io.Writer, cart response.Cart) error {
	if len(cart.Items) == 0 {
		_, err := fmt.Fprintln(w, "cart is empty")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tAMOUNT")
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.Name, item.UnitPrice.StringFixed(2), item.Quantity, item.Amount.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\t%d\t\n", cart.Count)
	fmt.Fprintf(tw, "subtotal\t\t\t\t%s\n", cart.Subtotal.StringFixed(2))
	fmt.Fprintf(tw, "tax\t\t\t\t%s\n", cart.Tax.StringFixed(2))
	fmt.Fprintf(tw, "total\t\t\t\t%s\n", cart.GrandTotal.StringFixed(2))
	return tw.Flush()
}

func printLines(w io.Writer, store *service.CartStore, lines []domain.Line) error {
	return printCart(w, response.NewCart(store.Sorted(lines), store.ComputeTotals(lines)))
}

func NewCommand(opts *app.Options) *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart kept on this device",
	}
	cartCmd.AddCommand(
		newListCommand(opts),
		newAddCommand(opts),
		newQuantityCommand(opts),
		newRemoveCommand(opts),
		newClearCommand(opts),
		newTotalsCommand(opts),
		newCheckoutCommand(opts),
		newServeCommand(opts),
	)
	return cartCmd
}

func newListCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the cart sorted by dish name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(c context.Context, a *app.App, store *service.CartStore) error {
				cart, err := store.View(c)
				if err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), cart)
			})
		},
	}
}

func newAddCommand(opts *app.Options) *cobra.Command {
	var (
		quantity int
		name     string
		price    string
		image    string
	)
	addCmd := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Add a dish to the cart or raise its quantity",
		Long: "Add a dish to the cart. The dish is looked up in the menu unless " +
			"--name and --price are both given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(c context.Context, a *app.App, store *service.CartStore) error {
				item := domain.Item{ID: domain.ID(args[0]), Name: name, ImageRef: image}
				if name != "" && price != "" {
					unitPrice, err := decimal.NewFromString(price)
					if err != nil {
						return fmt.Errorf("failed parsing price=%q with error=%w", price, err)
					}
					item.UnitPrice = unitPrice
				} else {
					found, err := catalog.NewClient(a.API).Item(c, item.ID)
					if err != nil {
						return err
					}
					item = found.CartItem()
				}

				lines, err := store.AddOrIncrement(c, item, quantity)
				if err != nil {
					return err
				}
				return printLines(cmd.OutOrStdout(), store, lines)
			})
		},
	}
	addCmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "how many to add")
	addCmd.Flags().StringVar(&name, "name", "", "dish name, skips the menu lookup together with --price")
	addCmd.Flags().StringVar(&price, "price", "", "unit price, skips the menu lookup together with --name")
	addCmd.Flags().StringVar(&image, "image", "", "image reference")
	return addCmd
}

func newQuantityCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "qty <item-id> <delta>",
		Short: "Change a dish quantity by delta, it never drops below 1",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("failed parsing delta=%q with error=%w", args[1], err)
			}
			return withCart(cmd, opts, func(c context.Context, a *app.App, store *service.CartStore) error {
				lines, err := store.ChangeQuantity(c, domain.ID(args[0]), delta)
				if err != nil {
					return err
				}
				return printLines(cmd.OutOrStdout(), store, lines)
			})
		},
	}
}

func newRemoveCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <item-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a dish whatever its quantity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(c context.Context, a *app.App, store *service.CartStore) error {
				lines, err := store.RemoveLine(c, domain.ID(args[0]))
				if err != nil {
					return err
				}
				return printLines(cmd.OutOrStdout(), store, lines)
			})
		},
	}
}

func newClearCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(c context.Context, a *app.App, store *service.CartStore) error {
				if err := store.Clear(c); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
				return err
			})
		},
	}
}

func newTotalsCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show subtotal, tax and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(c context.Context, a *app.App, store *service.CartStore) error {
				lines, err := store.Load(c)
				if err != nil {
					return err
				}
				totals := store.ComputeTotals(lines).Rounded()
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "subtotal %s\ntax %s\ntotal %s\n",
					totals.Subtotal.StringFixed(2), totals.Tax.StringFixed(2), totals.GrandTotal.StringFixed(2))
				return err
			})
		},
	}
}

func newCheckoutCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Send the cart as an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(c context.Context, a *app.App, store *service.CartStore) error {
				lines, err := store.Load(c)
				if err != nil {
					return err
				}
				result, err := store.Checkout(c, lines)
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				if result.Order != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "order %s %s\n", result.Order.ID, result.Order.Status)
				}
				if result.Outcome == response.OutcomeDeclined && err == nil {
					return nil
				}
				return err
			})
		},
	}
}
