package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/dashboard"
)

var (
	jobsText    string
	jobsTopN    int
	jobsDetails string

	dashboardProfile string
	dashboardDetails int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Recommend jobs for free-text skills and interests",
	RunE:  runJobs,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show job matches and job details for a saved profile",
	RunE:  runDashboard,
}

func init() {
	jobsCmd.Flags().StringVar(&jobsText, "text", "", "Skills, interests or goals to match on (required)")
	jobsCmd.Flags().IntVar(&jobsTopN, "top-n", 0, "Number of recommendations (default from config)")
	jobsCmd.Flags().StringVar(&jobsDetails, "details", "", "Describe this job title instead of recommending")
	rootCmd.AddCommand(jobsCmd)

	dashboardCmd.Flags().StringVar(&dashboardProfile, "profile", "", "Path to a profile document (required)")
	dashboardCmd.Flags().IntVar(&dashboardDetails, "details", 3, "Fetch details for the first N matches (0 for none)")
	_ = dashboardCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(dashboardCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	if jobsDetails != "" {
		details, err := s.client.JobDetails(cmd.Context(), jobsDetails)
		if err != nil {
			return err
		}
		s.printer.PrintJobDetails(jobsDetails, details)
		return nil
	}

	if jobsText == "" {
		return fmt.Errorf("--text is required")
	}
	topN := jobsTopN
	if topN == 0 {
		topN = settings.TopN
	}
	matches, err := s.client.RecommendJobs(cmd.Context(), jobsText, topN)
	if err != nil {
		return err
	}
	s.printer.PrintJobMatches(matches)
	return nil
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	profile, err := readProfile(dashboardProfile)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.store.UpdateProfile(profile)
	s.printer.PrintProfile(profile)

	board := dashboard.New(s.client, s.store, dashboard.WithTopN(settings.TopN))
	matches, err := board.Load(cmd.Context())
	if err != nil {
		return err
	}
	s.printer.PrintJobMatches(matches)

	if dashboardDetails <= 0 || len(matches) == 0 {
		return nil
	}
	rows, err := board.Details(cmd.Context(), dashboardDetails)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Err != nil {
			_, _ = fmt.Fprintf(s.out, "✗ %s: %v\n", row.Match.JobTitle, row.Err)
			continue
		}
		s.printer.PrintJobDetails(row.Match.JobTitle, row.Details)
	}
	return nil
}
