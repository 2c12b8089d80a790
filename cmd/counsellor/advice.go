package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/advice"
	"github.com/jonathan/career-counsellor/internal/prompts"
	"github.com/jonathan/career-counsellor/internal/store"
	"github.com/jonathan/career-counsellor/internal/types"
)

var (
	adviceProfile string
	sampleSave    string
)

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Request career advice for a saved profile",
	Long:  `Request career advice for a profile document written by "wizard --save" or "sample --save".`,
	RunE:  runAdvice,
}

var sampleCmd = &cobra.Command{
	Use:       "sample {student|professional}",
	Short:     "Fetch the service's sample profile",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(types.UserTypeStudent), string(types.UserTypeProfessional)},
	RunE:      runSample,
}

func init() {
	adviceCmd.Flags().StringVar(&adviceProfile, "profile", "", "Path to a profile document (required)")
	_ = adviceCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(adviceCmd)

	sampleCmd.Flags().StringVar(&sampleSave, "save", "", "Write the sample to this path as a profile document")
	rootCmd.AddCommand(sampleCmd)
}

func runAdvice(cmd *cobra.Command, _ []string) error {
	profile, err := readProfile(adviceProfile)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.printer.PrintProfile(profile)
	return s.requestAdvice(cmd, profile)
}

// requestAdvice runs the advice flow and prints the result. The advice is
// rendered from the store, so it appears only once the store has accepted it.
// On failure the user may retry the identical request from the prompt.
func (s *session) requestAdvice(cmd *cobra.Command, profile types.Profile) error {
	shown := ""
	unsubscribe := s.store.Subscribe(func(snap store.Snapshot) {
		if snap.AIAdvice != "" && snap.AIAdvice != shown {
			shown = snap.AIAdvice
			s.printer.PrintAdvice(snap.AIAdvice)
		}
	})
	defer unsubscribe()

	_, _ = fmt.Fprintln(s.out, prompts.MustGet("chat.json", "advice.loading"))
	flow := advice.New(s.client, s.store)
	err := flow.Start(cmd.Context(), profile)
	for err != nil {
		status := flow.Status()
		if status.State != advice.StateFailed {
			return err
		}
		_, _ = fmt.Fprintf(s.out, "✗ %s\n", status.Error)
		if !s.confirm(prompts.MustGet("chat.json", "advice.retry")) {
			return errors.New(status.Error)
		}
		_, _ = fmt.Fprintln(s.out, prompts.MustGet("chat.json", "advice.loading"))
		err = flow.Retry(cmd.Context())
	}
	return nil
}

// confirm asks a yes/no question on the session input. End of input means no.
func (s *session) confirm(question string) bool {
	_, _ = fmt.Fprint(s.out, question)
	if !s.in.Scan() {
		_, _ = fmt.Fprintln(s.out)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

func runSample(cmd *cobra.Command, args []string) error {
	kind, err := types.ParseUserType(args[0])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	profile, err := s.client.Sample(cmd.Context(), kind)
	if err != nil {
		return err
	}

	s.printer.PrintProfile(profile)
	if sampleSave != "" {
		if err := writeProfile(sampleSave, profile); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(s.out, "Saved %s sample to %s\n", kind, sampleSave)
	}
	return nil
}

func readProfile(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return types.Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if profile.IsZero() {
		return types.Profile{}, fmt.Errorf("profile %s is empty", path)
	}
	return profile, nil
}

func writeProfile(path string, profile types.Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
