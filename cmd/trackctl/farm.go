package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agritrace/supplytrace/internal/client"
	"github.com/spf13/cobra"
)

var farmCmd = &cobra.Command{
	Use:   "farm",
	Short: "Manage farms",
}

var farmAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new farm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, _ := cmd.Flags().GetString("location")
		owner, _ := cmd.Flags().GetString("owner")
		contact, _ := cmd.Flags().GetString("contact")
		description, _ := cmd.Flags().GetString("description")

		farm, err := trackerClient.CreateFarm(context.Background(), &client.CreateFarmRequest{
			Name:        args[0],
			Location:    location,
			Owner:       owner,
			ContactInfo: contact,
			Description: description,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(farm)
		} else {
			fmt.Printf("created farm %s\n", farm.ID)
		}
		return nil
	},
}

var farmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List farms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		farms, err := trackerClient.ListFarms(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(farms)
		} else {
			printFarmTable(farms)
		}
		return nil
	},
}

func init() {
	farmAddCmd.Flags().String("location", "", "farm location (required)")
	farmAddCmd.Flags().String("owner", "", "farm owner (required)")
	farmAddCmd.Flags().String("contact", "", "contact info")
	farmAddCmd.Flags().String("description", "", "description")
	farmAddCmd.MarkFlagRequired("location")
	farmAddCmd.MarkFlagRequired("owner")
	farmCmd.AddCommand(farmAddCmd)
	farmCmd.AddCommand(farmListCmd)
}
