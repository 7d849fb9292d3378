package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/restaurant/cart/cmd"
	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/constants"
	orderCmd "github.com/Alturino/restaurant/order/cmd"
	productCmd "github.com/Alturino/restaurant/product/cmd"
	userCmd "github.com/Alturino/restaurant/user/cmd"
)

func NewRootCommand() *cobra.Command {
	opts := &app.Options{}
	rootCmd := &cobra.Command{
		Use:           constants.APP_MAIN_RESTAURANT,
		Short:         "Order from the restaurant: browse the menu, fill the cart, check out",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(
		&opts.ConfigName,
		"config",
		constants.APP_MAIN_RESTAURANT,
		"config file name without extension, looked up in ./env and $HOME/.restaurant",
	)

	rootCmd.AddCommand(
		cartCmd.NewCommand(opts),
		orderCmd.NewCommand(opts),
		orderCmd.NewKitchenCommand(opts),
		productCmd.NewCommand(opts),
	)
	rootCmd.AddCommand(userCmd.NewCommands(opts)...)
	return rootCmd
}

// Start runs the command line until it finishes or the process is
// interrupted, and exits non zero on failure.
func Start() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(c); err != nil {
		stop()
		os.Exit(1)
	}
}
