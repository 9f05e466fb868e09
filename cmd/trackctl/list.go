package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agritrace/supplytrace/internal/client"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		productType, _ := cmd.Flags().GetString("type")
		batch, _ := cmd.Flags().GetString("batch")
		farm, _ := cmd.Flags().GetString("farm")
		status, _ := cmd.Flags().GetString("status")
		sort, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := trackerClient.ListProducts(context.Background(), &client.ListProductsRequest{
			Name:         name,
			Type:         productType,
			BatchID:      batch,
			OriginFarmID: farm,
			Status:       status,
			Sort:         sort,
			Desc:         desc,
			Limit:        limit,
			Offset:       offset,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Products)
		} else {
			printProductTable(resp.Products, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("name", "", "filter by name substring")
	listCmd.Flags().StringP("type", "t", "", "filter by product type")
	listCmd.Flags().String("batch", "", "filter by batch ID")
	listCmd.Flags().String("farm", "", "filter by origin farm ID")
	listCmd.Flags().StringP("status", "s", "", "filter by status")
	listCmd.Flags().String("sort", "", "sort column")
	listCmd.Flags().Bool("desc", false, "sort descending")
	listCmd.Flags().Int("limit", 20, "maximum number of products to return")
	listCmd.Flags().Int("offset", 0, "offset for pagination")
}
