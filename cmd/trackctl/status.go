package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agritrace/supplytrace/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <product-id> <status>",
	Short: "Update a product's status directly",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, _ := cmd.Flags().GetString("location")

		product, err := trackerClient.UpdateStatus(context.Background(), args[0], args[1], location)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(product)
		} else {
			fmt.Printf("%s status set to %s\n", product.ID, ui.RenderStatus(product.Status))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().String("location", "", "new current location")
}
