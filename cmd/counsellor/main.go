// Package main provides the entry point for the career counsellor CLI.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/api"
	"github.com/jonathan/career-counsellor/internal/config"
	"github.com/jonathan/career-counsellor/internal/observability"
	"github.com/jonathan/career-counsellor/internal/store"
)

var (
	configPath string
	apiURL     string
	strict     bool
	verbose    bool
	timeout    time.Duration

	// settings is the effective configuration, resolved before every command runs.
	settings config.Config
)

var rootCmd = &cobra.Command{
	Use:               "counsellor",
	Short:             "AI Career Counsellor",
	Long:              "Career counsellor collects a student or professional profile and asks the career-advice service for advice, job matches, skill-gap analysis, resume reviews and mock interviews.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	flags.StringVar(&apiURL, "api-url", "", "Career-advice service base URL (overrides config)")
	flags.BoolVar(&strict, "strict", false, "Validate responses against the embedded JSON schemas")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print diagnostic logs to stderr")
	flags.DurationVar(&timeout, "timeout", 0, "Per-request timeout, e.g. 90s (0 keeps the config value)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings merges config file, environment and flags. Flags win.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	merged := cfg.MergeWithDefaults(config.Defaults())

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		merged.APIBaseURL = apiURL
	}
	if flags.Changed("strict") {
		merged.Strict = strict
	}
	if flags.Changed("verbose") {
		merged.Verbose = verbose
	}
	if flags.Changed("timeout") {
		merged.Timeout = timeout
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	settings = merged

	if settings.Verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}
	return nil
}

func newClient() (*api.Client, error) {
	return api.New(&api.Options{
		BaseURL:   settings.APIBaseURL,
		Timeout:   settings.Timeout,
		UserAgent: api.DefaultUserAgent,
		Strict:    settings.Strict,
	})
}

// session bundles what an interactive command needs: a client, a fresh store,
// the command's input and a printer on its output.
type session struct {
	client  *api.Client
	store   *store.Store
	printer *observability.Printer
	in      *bufio.Scanner
	out     io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	s := &session{
		client:  client,
		store:   store.New(),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
	}
	s.store.Subscribe(logSnapshot)
	return s, nil
}

func logSnapshot(snap store.Snapshot) {
	log.Printf("[store] v%d user_type=%q advice=%d chars matches=%d",
		snap.Version, snap.UserType, len(snap.AIAdvice), len(snap.JobMatches))
}
