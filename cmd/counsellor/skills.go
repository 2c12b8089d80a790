package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/chat"
)

var (
	skillsCurrent  string
	skillsTarget   string
	skillsChat     bool
	skillsMessages []string
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Analyse the gap between current and target skills",
	Long: `Analyse the gap between current and target skills. With --chat, follow-up
questions about the analysis can be asked interactively or with --message.`,
	RunE: runSkills,
}

func init() {
	skillsCmd.Flags().StringVar(&skillsCurrent, "current", "", "Skills you have, comma-separated (required)")
	skillsCmd.Flags().StringVar(&skillsTarget, "target", "", "Skills you want, comma-separated (required)")
	skillsCmd.Flags().BoolVar(&skillsChat, "chat", false, "Ask follow-up questions about the analysis")
	skillsCmd.Flags().StringArrayVarP(&skillsMessages, "message", "m", nil, "Follow-up question (repeatable); implies --chat")
	_ = skillsCmd.MarkFlagRequired("current")
	_ = skillsCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	analysis, err := s.client.AnalyzeSkills(cmd.Context(), skillsCurrent, skillsTarget)
	if err != nil {
		return err
	}
	s.printer.PrintSkillAnalysis(analysis)

	if !skillsChat && len(skillsMessages) == 0 {
		return nil
	}

	session := chat.NewSkillChat(s.client, analysis)
	s.printer.PrintTranscript("Skill chat", session.Messages())
	conv := &conversation{
		printer:  s.printer,
		out:      s.out,
		send:     session.Send,
		commands: map[string]func(ctx context.Context) error{},
	}
	if len(skillsMessages) > 0 {
		return conv.replay(cmd.Context(), skillsMessages)
	}
	return conv.interact(cmd.Context(), s.in)
}
