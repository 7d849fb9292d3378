package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Alturino/restaurant/cart/pkg/domain"
	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/product/pkg/catalog"
)

func NewCommand(opts *app.Options) *cobra.Command {
	var category string
	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "List the dishes on the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_PRODUCT_SERVICE)
			if err != nil {
				return err
			}
			defer a.Close(c)

			items, err := catalog.NewClient(a.API).Items(c, domain.ID(category))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDISH\tPRICE\tCATEGORY")
			for _, item := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, item.Title, item.Price.StringFixed(2), item.CategoryID)
			}
			return tw.Flush()
		},
	}
	menuCmd.Flags().StringVarP(&category, "category", "c", "", "only dishes of this category id")

	menuCmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List the menu categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_PRODUCT_SERVICE)
			if err != nil {
				return err
			}
			defer a.Close(c)

			categories, err := catalog.NewClient(a.API).Categories(c)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORY")
			for _, category := range categories {
				fmt.Fprintf(tw, "%s\t%s\n", category.ID, category.Title)
			}
			return tw.Flush()
		},
	})
	return menuCmd
}
