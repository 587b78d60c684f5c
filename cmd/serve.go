package cmd

import (
	"github.com/ethpandaops/embedapi/pkg/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the embedapi API server",
	Long: `Starts the HTTP API together with the metrics, health check and
pprof servers. Articles are stored in Redis when a redis section is
configured and in memory otherwise.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	config, err := server.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	// The config level applies unless the flag was given explicitly
	if !cmd.Flags().Changed("log-level") {
		level, parseErr := logrus.ParseLevel(config.LoggingLevel)
		if parseErr != nil {
			return parseErr
		}

		logger.SetLevel(level)
	}

	logger.WithField("config", cfgFile).Info("Configuration loaded")

	srv, err := server.NewServer(cmd.Context(), logger, config)
	if err != nil {
		return err
	}

	// Blocks until SIGINT or SIGTERM
	return srv.Start(cmd.Context())
}
