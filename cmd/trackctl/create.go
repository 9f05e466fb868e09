package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agritrace/supplytrace/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a new product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productType, _ := cmd.Flags().GetString("type")
		batch, _ := cmd.Flags().GetString("batch")
		harvest, _ := cmd.Flags().GetString("harvest")
		farm, _ := cmd.Flags().GetString("farm")
		destination, _ := cmd.Flags().GetString("destination")

		product, err := trackerClient.CreateProduct(context.Background(), &client.CreateProductRequest{
			Name:         args[0],
			Type:         productType,
			BatchID:      batch,
			HarvestDate:  harvest,
			OriginFarmID: farm,
			Destination:  destination,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(product)
		} else {
			fmt.Printf("created product %s\n", product.ID)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("type", "t", "", "product type (required)")
	createCmd.Flags().String("batch", "", "batch ID (required)")
	createCmd.Flags().String("harvest", "", "harvest date YYYY-MM-DD (required)")
	createCmd.Flags().String("farm", "", "origin farm ID (required)")
	createCmd.Flags().String("destination", "", "destination")
	createCmd.MarkFlagRequired("type")
	createCmd.MarkFlagRequired("batch")
	createCmd.MarkFlagRequired("harvest")
	createCmd.MarkFlagRequired("farm")
}
