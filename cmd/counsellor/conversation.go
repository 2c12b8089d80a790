package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/career-counsellor/internal/chat"
	"github.com/jonathan/career-counsellor/internal/observability"
)

// conversation runs a line-oriented chat. Lines starting with "/" are looked
// up in commands; "/quit" and end of input stop the loop.
type conversation struct {
	printer  *observability.Printer
	out      io.Writer
	send     func(ctx context.Context, text string) (string, error)
	commands map[string]func(ctx context.Context) error
}

// replay sends each scripted message in turn.
func (c *conversation) replay(ctx context.Context, messages []string) error {
	for _, message := range messages {
		if stop, err := c.handle(ctx, message); stop || err != nil {
			return err
		}
	}
	return nil
}

// interact reads messages from scanner until "/quit" or end of input.
func (c *conversation) interact(ctx context.Context, scanner *bufio.Scanner) error {
	for {
		_, _ = fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(c.out)
			return scanner.Err()
		}
		if stop, err := c.handle(ctx, scanner.Text()); stop || err != nil {
			return err
		}
	}
}

func (c *conversation) handle(ctx context.Context, line string) (stop bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if line == "/quit" {
		return true, nil
	}
	if fn, ok := c.commands[line]; ok {
		if err := fn(ctx); err != nil {
			_, _ = fmt.Fprintf(c.out, "✗ %v\n", err)
		}
		return false, nil
	}

	reply, err := c.send(ctx, line)
	if err != nil && reply == "" {
		return false, err
	}
	c.printer.PrintMessage(chat.Message{Role: chat.RoleAssistant, Text: reply, At: time.Now()})
	return false, nil
}
