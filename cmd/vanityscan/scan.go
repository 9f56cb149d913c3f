package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"vanityscan/pkg/checker"
	"vanityscan/pkg/config"
	"vanityscan/pkg/generator"
	"vanityscan/pkg/governor"
	"vanityscan/pkg/logger"
	"vanityscan/pkg/output"
	"vanityscan/pkg/scanner"
	"vanityscan/pkg/ui"
)

var (
	// Scan command flags
	scanLength  int
	startFrom   string
	concurrency int
	alphabet    string
	baseURL     string
	outputDir   string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the identifier space for free vanity names",
	Long: `Enumerate every identifier of the given length over the alphabet and check
each one against the lookup endpoint.

Individual check failures are logged in the result file and never abort the
scan. The run ends when the whole (possibly offset) space has been checked.`,
	Example: `  # Scan all 3-character identifiers
  vanityscan scan --length 3

  # Resume lexicographically from "AZ" with 10 workers
  vanityscan scan --length 2 --start-from AZ --concurrency 10

  # Restrict the alphabet and write logs elsewhere
  vanityscan scan --length 4 --alphabet ABCDEFGHIJKLMNOPQRSTUVWXYZ --output ./logs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVarP(&scanLength, "length", "l", 0, "identifier length (1-8)")
	scanCmd.Flags().StringVar(&startFrom, "start-from", "", "skip identifiers lexicographically before this value")
	scanCmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum simultaneous checks (1-10)")
	scanCmd.Flags().StringVar(&alphabet, "alphabet", "", "identifier alphabet (default uppercase letters, digits, _ and -)")
	scanCmd.Flags().StringVar(&baseURL, "base-url", "", "profile lookup base URL")
	scanCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the result log file")
}

func runScan() error {
	// Build flags map from command line
	flags := make(map[string]interface{})
	if scanLength > 0 {
		flags["length"] = scanLength
	}
	if startFrom != "" {
		flags["start-from"] = startFrom
	}
	if concurrency > 0 {
		flags["concurrency"] = concurrency
	}
	if alphabet != "" {
		flags["alphabet"] = alphabet
	}
	if baseURL != "" {
		flags["base-url"] = baseURL
	}
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("vanityscan starting")

	gen, err := generator.New(cfg.Scan.Length, cfg.Scan.Alphabet, cfg.Scan.StartFrom)
	if err != nil {
		ui.PrintError("Invalid scan parameters", err.Error())
		os.Exit(1)
	}

	ui.PrintInfo("Identifier length", fmt.Sprintf("%d", cfg.Scan.Length))
	ui.PrintInfo("Search space", fmt.Sprintf("%d identifiers", gen.Remaining()))
	if cfg.Scan.StartFrom != "" {
		ui.PrintInfo("Starting from", cfg.Scan.StartFrom)
	}

	// The result log is the one run-fatal dependency
	writer, err := output.NewWriter(cfg.Output.Directory, output.Params{
		Length:      cfg.Scan.Length,
		Alphabet:    gen.Alphabet(),
		StartFrom:   cfg.Scan.StartFrom,
		Concurrency: cfg.Scan.Concurrency,
		Total:       gen.Remaining(),
	})
	if err != nil {
		log.WithError(err).Error("Cannot open result log")
		ui.PrintError("Cannot open result log", err.Error())
		os.Exit(1)
	}
	defer writer.Close()
	ui.PrintInfo("Result log", writer.Path())

	gov := governor.New(&cfg.RateLimit, log)
	client := checker.NewClient(&cfg.Transport, log)
	chk := checker.New(client, gov, &cfg.Transport, log)

	s := scanner.New(gen, chk, writer, cfg.Scan.Concurrency, cfg.Report.Interval, log)

	// Interrupt stops issuing new checks; the in-flight batch finishes
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	final, runErr := s.Run(ctx)

	if err := writer.WriteSummary(final.Completed, final.Free, final.Errors, final.Elapsed); err != nil {
		log.WithError(err).Error("Failed to write summary")
	}

	if runErr != nil {
		log.WithError(runErr).Warn("Scan ended early")
		ui.PrintWarning(fmt.Sprintf("Scan interrupted after %d of %d identifiers", final.Completed, final.Total))
		return nil
	}

	ui.PrintSuccess(fmt.Sprintf("Scan complete: %d checked, %d free, %d errors in %s",
		final.Completed, final.Free, final.Errors, final.Elapsed.Round(time.Second)))
	return nil
}
