package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/dawnpage/internal/version"
)

var (
	serverURL string
	offline   bool
)

// defaultServerURL is DAWN_SERVER_URL, or the server's default listen address.
func defaultServerURL() string {
	if v := os.Getenv("DAWN_SERVER_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "dawnctl",
	Short: "Manage a dawnpage configuration from the command line",
	Long: "dawnctl exports, imports, validates and resets the configuration document of a dawnpage " +
		"instance. Changes go through the running server; export and --offline read the same DAWN_* " +
		"environment as the server to find the storage backend.",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String("dawnctl"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "base URL of the running dawnpage server")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "write storage directly instead of going through the server (server must be stopped)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
