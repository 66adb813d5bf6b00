package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scrapedesk/internal/config"
)

var (
	configPath string
	flagConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:          "scrapedesk",
	Short:         "scrapedesk is an interactive client for a video scraping backend.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultFile, "Path to the json5 config file.")
	pf.StringVar(&flagConfig.BaseURL, "base-url", "", "Backend API base url.")
	pf.StringVar(&flagConfig.Username, "username", "", "Account username.")
	pf.StringVar(&flagConfig.Password, "password", "", "Account password.")
	pf.StringVar(&flagConfig.DataDir, "data-dir", "", "Export each job's input and raw result under this directory.")
	pf.StringVar(&flagConfig.LogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error).")
	pf.StringVar(&flagConfig.Timeout, "timeout", "", "Per-request timeout, e.g. 90s. Empty waits indefinitely.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err unless the session has already alerted the operator.
func printError(w io.Writer, err error) {
	if reported(err) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
