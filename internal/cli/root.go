// filepath: internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"time"

	"inkhub/internal/config"

	"github.com/spf13/cobra"
)

var (
	// Version info
	Version   = "0.4.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Path of the TOML config file (--config, INKHUB_CONFIG)
	cfgFile string
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "inkhub",
	Short: "inkhub studio API & web server",
	Long:  `REST API, media storage and admin back-office for a tattoo studio website.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	// RunE executes the main server logic.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "Path to the TOML configuration file. (Env: INKHUB_CONFIG)")
	RootCmd.PersistentFlags().String("log-level", "", "Logging level (debug, info, warn, error). (Env: INKHUB_LOGGING_LEVEL)")

	registerServerFlags(RootCmd.Flags())
	registerServerFlags(serveCmd.Flags())
	RootCmd.AddCommand(serveCmd)
}
