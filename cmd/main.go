package main

import (
	"fmt"
	"os"

	"doctor-directory/cmd/bootstrap"
	"doctor-directory/config"
	"doctor-directory/internal/delivery/cli"
	"doctor-directory/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "doctor-directory",
		Short: "Doctor directory browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(cli.NewSearchCommand(newDirectory))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the doctor directory API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	return app.Run()
}

func newDirectory() (usecase.DoctorDirectoryUsecase, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := bootstrap.SetupLogger(cfg.Log)
	log.SetOutput(os.Stderr)

	return bootstrap.NewDirectoryUsecase(cfg.Directory, log), nil
}
