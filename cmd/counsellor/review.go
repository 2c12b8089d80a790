package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/resume"
)

var reviewFile string

var reviewCmd = &cobra.Command{
	Use:   "review-cv",
	Short: "Get a review of a PDF resume",
	Long:  `Upload a PDF resume for review. Without --file the service reviews its own sample resume.`,
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewFile, "file", "", "Path to a PDF resume (at most 10 MiB)")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	if reviewFile == "" {
		review, err := s.client.ReviewCV(cmd.Context(), "", nil)
		if err != nil {
			return err
		}
		s.printer.PrintCVReview(review)
		return nil
	}

	info, err := resume.Check(reviewFile)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "Uploading %s (%d pages, %d bytes)\n", reviewFile, info.Pages, info.Size)

	f, err := os.Open(reviewFile)
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer func() { _ = f.Close() }()

	review, err := s.client.ReviewCV(cmd.Context(), reviewFile, f)
	if err != nil {
		return err
	}
	s.printer.PrintCVReview(review)
	return nil
}
