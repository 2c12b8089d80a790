package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/stubserver"
)

var (
	stubPort           int
	stubAdviceFailure  string
	stubAdviceFailures int
	stubOrigins        []string
)

var stubCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Run an offline stand-in for the career-advice service",
	Long:  `Serve every route of the career-advice service with deterministic, canned answers. Useful for demos and for trying the CLI without the AI backend.`,
	RunE:  runStub,
}

func init() {
	stubCmd.Flags().IntVar(&stubPort, "port", 8000, "Port to listen on")
	stubCmd.Flags().StringVar(&stubAdviceFailure, "advice-failure", "", "Make advice requests fail with this error")
	stubCmd.Flags().IntVar(&stubAdviceFailures, "advice-failures", 0, "Fail only the first n advice requests (0 fails all)")
	stubCmd.Flags().StringSliceVar(&stubOrigins, "origin", nil, "Allowed CORS origin (repeatable; defaults to local dev servers)")
	rootCmd.AddCommand(stubCmd)
}

func runStub(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := stubserver.New(stubserver.Options{
		AdviceFailure:  stubAdviceFailure,
		AdviceFailures: stubAdviceFailures,
		Origins:        stubOrigins,
	})
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stub service listening on http://localhost:%d\n", stubPort)
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", stubPort))
}
