package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"linkscan/internal/config"
	"linkscan/pkg/fetcher"
	"linkscan/pkg/reporter"
	"linkscan/pkg/scanner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "linkscan",
	Short: "LinkScan - single-page internal link scanner",
	Long: `LinkScan fetches one page, finds the anchors that stay on the same
host, times a GET request to each of them and writes the results to a
timestamped CSV file.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var scanCmd = &cobra.Command{
	Use:   "scan [URL]",
	Short: "Scan a page for internal links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seedURL := args[0]

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Scanner.Timeout, _ = cmd.Flags().GetDuration("timeout")
		}
		if cmd.Flags().Changed("output-dir") {
			cfg.Output.Dir, _ = cmd.Flags().GetString("output-dir")
		}
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			cfg.Output.Color = false
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(cfg.Logging.Level, verbose)

		f := fetcher.New(cfg.Scanner.Timeout,
			fetcher.WithUserAgent(cfg.Scanner.UserAgent),
			fetcher.WithMaxBodySize(cfg.Scanner.MaxBodySize),
			fetcher.WithBasicAuth(cfg.Scanner.AuthUser, cfg.Scanner.AuthPass),
		)
		rep := reporter.New(os.Stdout, cfg.Output.Color)
		s := scanner.New(f, rep)

		result, err := s.Scan(cmd.Context(), seedURL)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		rep.PrintSummary(result)

		path, err := rep.WriteCSV(cfg.Output.Dir, result)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Info().
			Str("path", path).
			Int("links", len(result.Visits)).
			Msg("Scan report written")
		return nil
	},
}

// setupLogging configures the global zerolog logger
func setupLogging(levelName string, verbose bool) {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func init() {
	scanCmd.Flags().Duration("timeout", 0, "Per-request timeout (overrides config)")
	scanCmd.Flags().String("output-dir", "", "Directory for the CSV report (overrides config)")
	scanCmd.Flags().Bool("no-color", false, "Disable colored console output")

	rootCmd.AddCommand(scanCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
}

func main() {
	// Optional .env for credentials and overrides; missing files are fine
	godotenv.Load(".env.local", ".env")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
