package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show a product and its tracking history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		product, err := trackerClient.GetProduct(context.Background(), id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(product)
			return nil
		}

		printProduct(product)
		if len(product.TrackingHistory) > 0 {
			fmt.Println("\nTracking History:")
			printHistory(product.TrackingHistory)
		}
		return nil
	},
}
