package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-counsellor/internal/chat"
)

var chatMessages []string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the career guidance assistant",
	Long: `Chat with the career guidance assistant. Without --message the chat is
interactive: "/clear" forgets the conversation, "/history" reprints it and
"/quit" exits.`,
	RunE: runChat,
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Ask the service to forget the chat history",
	RunE:  runChatClear,
}

func init() {
	chatCmd.Flags().StringArrayVarP(&chatMessages, "message", "m", nil, "Send this message (repeatable) instead of chatting interactively")
	chatCmd.AddCommand(chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	career := chat.NewCareerChat(s.client)
	s.printer.PrintTranscript("Career chat", career.Messages())

	conv := &conversation{
		printer: s.printer,
		out:     s.out,
		send:    career.Send,
		commands: map[string]func(ctx context.Context) error{
			"/clear": func(ctx context.Context) error {
				if err := career.Clear(ctx); err != nil {
					return err
				}
				s.printer.PrintTranscript("Career chat", career.Messages())
				return nil
			},
			"/history": func(context.Context) error {
				s.printer.PrintTranscript("Career chat", career.Messages())
				return nil
			},
		},
	}

	if len(chatMessages) > 0 {
		return conv.replay(cmd.Context(), chatMessages)
	}
	return conv.interact(cmd.Context(), s.in)
}

func runChatClear(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.ClearChatHistory(cmd.Context()); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared")
	return nil
}
