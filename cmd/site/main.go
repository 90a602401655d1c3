package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"folio.dev/internal/config"
	"folio.dev/internal/logging"
)

var (
	// Global flags
	verbose bool
	devLogs bool

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Personal portfolio and blog server",
	Long: `site serves the portfolio: home, projects, speaking and joke pages,
and a blog rendered from markdown files with YAML frontmatter.

Configuration comes from the environment, an optional .env file and
data/site.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose, devLogs)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&devLogs, "dev", false, "Human-readable console logs")

	rootCmd.AddCommand(serveCmd, projectsCmd, readCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
