// ABOUTME: Root command and global flags for the actionbrief CLI
// ABOUTME: Loads .env and configuration once per invocation
package commands

import (
	"fmt"

	"github.com/harper/actionbrief/internal/config"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	quiet      bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actionbrief",
		Short: "Summarize documents and turn their dates into calendar events",
		Long: `actionbrief summarizes pasted text or uploaded documents, pulls out the
sentences that mention dates, and can put the first upcoming date on your
Google Calendar or mail the summary.

Run "actionbrief auth" once to authorize Google access, then
"actionbrief serve" to start the web app.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyLogFlags()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewServeCmd(),
		NewAuthCmd(),
		NewLogsCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

func applyLogFlags() {
	switch {
	case verbose:
		logging.SetLevel(logging.LevelDebug)
	case quiet:
		logging.SetLevel(logging.LevelError)
	}
}

// loadConfig reads .env, the optional config file and the environment
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Default.Debugf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logging.SetLevel(cfg.LogLevel)
	applyLogFlags()
	return cfg, nil
}
