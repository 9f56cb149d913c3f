package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"vanityscan/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vanityscan",
	Short: "A bulk availability scanner for short vanity identifiers",
	Long: `vanityscan enumerates every candidate identifier of a given length over a
fixed alphabet and checks each one against the remote profile-lookup
endpoint, recording whether the name is FREE or TAKEN.

Features:
  - Deterministic lexicographic enumeration with an optional start offset
  - Bounded concurrency with deterministic, ordered log output
  - Global rate-limit cooldown shared by all workers
  - Escalating backoff on upstream throttling (30s / 3m / 5m / 10m)
  - Progress and ETA reporting on a fixed cadence`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Quiet silences the progress log lines too, not just pkg/ui
		if quiet {
			logLevel = "error"
		}
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .vanityscan.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`vanityscan {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
