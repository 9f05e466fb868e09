// Command trackctl is the CLI client for the supplytrace service.
package main

import (
	"fmt"
	"os"

	"github.com/agritrace/supplytrace/internal/client"
	"github.com/agritrace/supplytrace/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	authToken  string
	actorRole  string
	jsonOutput bool

	trackerClient client.TrackerClient
)

func defaultServerURL() string {
	if s := os.Getenv("TRACK_SERVER_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("TRACK_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

func defaultRole() string {
	if s := os.Getenv("TRACK_ROLE"); s != "" {
		return s
	}
	return activeRemoteRole()
}

var rootCmd = &cobra.Command{
	Use:   "trackctl <command>",
	Short: "CLI client for the supplytrace service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() || jsonOutput {
			ui.ForceNoColor()
		}
		trackerClient = client.NewHTTPClient(serverURL, authToken, actorRole)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if trackerClient != nil {
			trackerClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", defaultServerURL(), "server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token")
	rootCmd.PersistentFlags().StringVar(&actorRole, "role", defaultRole(), "actor role for tracking mutations")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(farmCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
