package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/chat"
	"github.com/jonathan/career-counsellor/internal/types"
)

var (
	interviewRole       string
	interviewDifficulty string
	interviewQuestions  int
	interviewAnswers    []string
	interviewKeep       bool
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Practise a mock interview (the session is deleted on exit unless --keep)",
	Long: `Start a mock interview and answer the interviewer's questions. Without
--answer the interview is interactive: "/history" shows the service's record
of the session and "/quit" ends it. The session is deleted on exit unless
--keep is given.`,
	RunE: runInterview,
}

var interviewHistoryCmd = &cobra.Command{
	Use:   "history SESSION_ID",
	Short: "Show the record of an interview session",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterviewHistory,
}

var interviewDeleteCmd = &cobra.Command{
	Use:   "delete SESSION_ID",
	Short: "Delete an interview session",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterviewDelete,
}

func init() {
	flags := interviewCmd.Flags()
	flags.StringVar(&interviewRole, "role", "", "Role to interview for (default from config)")
	flags.StringVar(&interviewDifficulty, "difficulty", "", "easy, medium or hard (default from config)")
	flags.IntVar(&interviewQuestions, "questions", 0, "Number of questions (default from config)")
	flags.StringArrayVarP(&interviewAnswers, "answer", "a", nil, "Answer to the next question (repeatable)")
	flags.BoolVar(&interviewKeep, "keep", false, "Keep the session on the service after exiting")

	interviewCmd.AddCommand(interviewHistoryCmd, interviewDeleteCmd)
	rootCmd.AddCommand(interviewCmd)
}

func runInterview(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	req := types.InterviewStartRequest{
		Role:         firstNonEmpty(interviewRole, settings.InterviewRole),
		Difficulty:   firstNonEmpty(interviewDifficulty, settings.InterviewDifficulty),
		NumQuestions: interviewQuestions,
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = settings.InterviewQuestions
	}

	iv := chat.NewInterview(s.client)
	if _, err := iv.Start(cmd.Context(), req); err != nil {
		return err
	}
	s.printer.PrintTranscript(fmt.Sprintf("%s interview (%s)", iv.Role(), req.Difficulty), iv.Messages())

	conv := &conversation{
		printer: s.printer,
		out:     s.out,
		send:    iv.Send,
		commands: map[string]func(ctx context.Context) error{
			"/history": func(ctx context.Context) error {
				history, err := iv.History(ctx)
				if err != nil {
					return err
				}
				s.printer.PrintInterviewHistory(history)
				return nil
			},
		},
	}

	if len(interviewAnswers) > 0 {
		err = conv.replay(cmd.Context(), interviewAnswers)
	} else {
		err = conv.interact(cmd.Context(), s.in)
	}

	id := iv.SessionID()
	if interviewKeep {
		iv.End()
		_, _ = fmt.Fprintf(s.out, "Session kept: %s\n", id)
		return err
	}
	// Use a fresh context so the session is removed even after cancellation.
	if termErr := iv.Terminate(context.WithoutCancel(cmd.Context())); termErr != nil {
		log.Printf("[interview] session %s was not deleted: %v", id, termErr)
	}
	return err
}

func runInterviewHistory(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	history, err := s.client.InterviewHistory(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	s.printer.PrintInterviewHistory(history)
	return nil
}

func runInterviewDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteInterviewSession(cmd.Context(), args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Session %s deleted\n", args[0])
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
