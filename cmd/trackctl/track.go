package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agritrace/supplytrace/internal/client"
	"github.com/agritrace/supplytrace/internal/ui"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <product-id>",
	Short: "Append a tracking stage to a product",
	Long: `Append a tracking stage to a product's history.

The server authorizes the stage against your actor role (--role or the
active remote's role). Administrators may append any stage.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, _ := cmd.Flags().GetString("stage")
		location, _ := cmd.Flags().GetString("location")
		handler, _ := cmd.Flags().GetString("handler")
		timestamp, _ := cmd.Flags().GetString("timestamp")
		notes, _ := cmd.Flags().GetString("notes")

		product, err := trackerClient.AddStage(context.Background(), args[0], &client.AddStageRequest{
			Stage:     stage,
			Location:  location,
			Handler:   handler,
			Timestamp: timestamp,
			Notes:     notes,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(product)
		} else {
			fmt.Printf("%s is now at %s (%s)\n", product.ID, ui.RenderStatus(product.Status), product.CurrentLocation)
		}
		return nil
	},
}

func init() {
	trackCmd.Flags().String("stage", "", "stage name (required)")
	trackCmd.Flags().String("location", "", "location (required)")
	trackCmd.Flags().String("handler", "", "handler name (required)")
	trackCmd.Flags().String("timestamp", "", "RFC 3339 timestamp (default now)")
	trackCmd.Flags().String("notes", "", "optional notes")
	trackCmd.MarkFlagRequired("stage")
	trackCmd.MarkFlagRequired("location")
	trackCmd.MarkFlagRequired("handler")
}
