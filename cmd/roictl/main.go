package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"invoicing-roi-api/internal/client"
)

var (
	flagAPIURL  string
	flagTimeout time.Duration
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "roictl",
	Short:        "Invoicing ROI simulator client",
	Long:         "Run ROI calculations against the simulator API and browse saved results.",
	SilenceUsage: true,
}

func init() {
	defaultURL := os.Getenv("ROI_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}

	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", defaultURL, "API base URL (env ROI_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", client.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log API requests to stderr")
}

// newClient builds an API client from the global flags.
func newClient() *client.Client {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if flagVerbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return client.New(flagAPIURL, flagTimeout, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
