package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/spf13/cobra"
)

// orderCmd places a simulated order.
var orderCmd = &cobra.Command{
	Use:   "order <drink-id> <bar-id>",
	Short: "Place a simulated order at a bar.",
	Long: `Send a drink order to a bar's simulated point of sale and record it.

The bar must serve cocktails. The price follows --pricing, and the terminal
waits --order-delay before confirming. Ctrl+C cancels a pending order.

Examples:
  moodmixer order 2 copper-still
  moodmixer order 1 skyline --pricing ingredients --order-delay 0s`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		id, err := parseDrinkID(args[0])
		if err != nil {
			contract.LogFatal("Order failed", err)
		}
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteOrder(ctx, cfg, id, args[1]); err != nil {
			contract.LogFatal("Order failed", err)
		}
	},
}

// ordersCmd lists the order history.
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List simulated orders, newest first.",
	Long: `List every recorded order.

Examples:
  moodmixer orders
  moodmixer orders --output parquet --output-file orders.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOrders(rootCtx, cfg); err != nil {
			contract.LogFatal("Orders failed", err)
		}
	},
}
