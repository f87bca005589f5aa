// Package cli implements the confguard command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/confguard/confguard/pkg/client"
)

var rootCmd = &cobra.Command{
	Use:   "confguard",
	Short: "Manage device configuration baselines and deviations",
	Long: `confguard talks to a ConfGuard server to inspect device baselines,
drive the propose/approve workflow, and review configuration deviations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "server base URL")
	rootCmd.PersistentFlags().String("actor", "", "acting identity sent with mutating requests")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")

	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("actor", rootCmd.PersistentFlags().Lookup("actor"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(proposalCmd)
	rootCmd.AddCommand(deviationCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(ignoreCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".confguard"))
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("CONFGUARD")
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env cover everything
	_ = viper.ReadInConfig()
}

func newClient() (*client.Client, error) {
	return client.New(client.Config{
		BaseURL: viper.GetString("server"),
		Actor:   viper.GetString("actor"),
		Timeout: 30 * time.Second,
	})
}
