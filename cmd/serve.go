package cmd

import (
	"context"
	"os"

	"github.com/clonobrowser/annotator/pkg/server"
	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	serveCfgFile string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the annotator HTTP API",
	Long:  `Serve exposes compile, parse, validate, describe and the operator catalog over HTTP, with metrics, health and optional pprof endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveCfgFile, "server-config", "server.yaml", "server config file")
}

func loadServerConfigFromFile(file string) (*server.Config, error) {
	if file == "" {
		file = "server.yaml"
	}

	config := &server.Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	yamlFile, err := os.ReadFile(file) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			// Serve with defaults: API on :8080, metrics on :9090, no cache
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	config, err := loadServerConfigFromFile(serveCfgFile)
	if err != nil {
		return err
	}

	// Setup logger
	level, err := logrus.ParseLevel(config.LoggingLevel)
	if err != nil {
		return err
	}
	log := logrus.New()
	log.SetLevel(level)

	log.Info("Configuration loaded")

	ctx := context.Background()

	srv, err := server.NewServer(ctx, log, config)
	if err != nil {
		return err
	}

	return srv.Start(ctx)
}
