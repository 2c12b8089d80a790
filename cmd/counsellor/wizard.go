package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonathan/career-counsellor/internal/types"
	"github.com/jonathan/career-counsellor/internal/wizard"
)

var (
	wizardAnswers  string
	wizardSave     string
	wizardNoAdvice bool
)

var errWizardCancelled = errors.New("wizard cancelled")

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Build a profile step by step and request career advice",
	Long: `Walk through the profile questionnaire interactively, or replay answers from a
JSON or YAML file with --answers. At any prompt, ":back" returns to the previous
step and ":quit" cancels.`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVar(&wizardAnswers, "answers", "", "JSON or YAML file with answers keyed by field name")
	wizardCmd.Flags().StringVar(&wizardSave, "save", "", "Write the submitted profile to this path")
	wizardCmd.Flags().BoolVar(&wizardNoAdvice, "no-advice", false, "Stop after the profile is submitted")
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	var submitted wizard.Submission
	w := wizard.New(
		wizard.WithValidation(settings.StepValidation),
		wizard.OnSubmit(func(sub wizard.Submission) {
			submitted = sub
			s.printer.PrintProfile(sub.Profile)
		}),
	)

	if wizardAnswers != "" {
		err = replayAnswers(w, wizardAnswers)
	} else {
		err = (&prompter{in: s.in, out: s.out}).run(w)
	}
	if err != nil {
		return err
	}

	if wizardSave != "" {
		if err := writeProfile(wizardSave, submitted.Profile); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(s.out, "Saved profile to %s\n", wizardSave)
	}
	if wizardNoAdvice {
		return nil
	}
	return s.requestAdvice(cmd, submitted.Profile)
}

// replayAnswers drives the wizard from a file, one step at a time, so step
// validation applies exactly as it does interactively.
func replayAnswers(w *wizard.Wizard, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read answers %s: %w", path, err)
	}

	userType, err := types.ParseUserType(v.GetString("user_type"))
	if err != nil {
		return fmt.Errorf("answers %s: %w", path, err)
	}
	if err := w.SelectUserType(userType); err != nil {
		return err
	}

	for {
		step := w.CurrentStep()
		if step.ID != wizard.StepUserType {
			for _, field := range step.Fields {
				if !v.IsSet(field.Name) {
					continue
				}
				if err := applyAnswer(w, field, v); err != nil {
					return err
				}
			}
		}

		if _, err := w.Next(); err != nil {
			return err
		}
		if w.Submitted() {
			return nil
		}
	}
}

func applyAnswer(w *wizard.Wizard, field wizard.Field, v *viper.Viper) error {
	switch field.Kind {
	case wizard.KindMultiChoice:
		for _, value := range v.GetStringSlice(field.Name) {
			if err := w.Toggle(field.Name, value); err != nil {
				return err
			}
		}
	case wizard.KindRating:
		// Keys come back lower-cased; restore the canonical skill name when known.
		for skill, level := range v.GetStringMapString(field.Name) {
			if err := w.RateSkill(canonicalOption(field.Options, skill), level); err != nil {
				return err
			}
		}
	default:
		return w.SetField(field.Name, v.GetString(field.Name))
	}
	return nil
}

func canonicalOption(options []string, value string) string {
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return option
		}
	}
	return value
}

// prompter asks the wizard's questions on a terminal.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// run asks every step until the wizard submits.
func (p *prompter) run(w *wizard.Wizard) error {
	for {
		step := w.CurrentStep()
		p.printf("\n[%d/%d] %s\n%s\n", w.StepIndex()+1, w.TotalSteps(), step.Heading, step.Subtitle)

		back, err := p.askStep(w, step)
		if err != nil {
			return err
		}
		if back {
			_ = w.Back()
			continue
		}

		_, err = w.Next()
		var stepErr *wizard.StepError
		switch {
		case errors.As(err, &stepErr):
			p.printf("Please answer: %s\n", strings.Join(stepErr.Missing, ", "))
		case err != nil:
			return err
		case w.Submitted():
			return nil
		}
	}
}

// askStep asks every field of step. It reports true when the user asked to go back.
func (p *prompter) askStep(w *wizard.Wizard, step wizard.Step) (bool, error) {
	if step.ID == wizard.StepUserType {
		for {
			answer, err := p.ask("I am a (1) student or (2) professional")
			if err != nil {
				return false, err
			}
			switch answer {
			case ":back":
				return true, nil
			case "1":
				answer = string(types.UserTypeStudent)
			case "2":
				answer = string(types.UserTypeProfessional)
			}
			userType, err := types.ParseUserType(answer)
			if err != nil {
				p.printf("%v\n", err)
				continue
			}
			return false, w.SelectUserType(userType)
		}
	}

	for _, field := range step.Fields {
		back, err := p.askField(w, field)
		if back || err != nil {
			return back, err
		}
	}
	return false, nil
}

func (p *prompter) askField(w *wizard.Wizard, field wizard.Field) (bool, error) {
	question := field.Question
	if field.Required {
		question += " *"
	}

	if field.Kind == wizard.KindRating {
		p.printf("%s (%s; blank to skip)\n", question, joinProficiencies())
		for _, skill := range field.Options {
			answer, err := p.ask("  " + skill)
			if err != nil || answer == ":back" {
				return answer == ":back", err
			}
			if answer == "" {
				continue
			}
			if err := w.RateSkill(skill, expandLevel(answer)); err != nil {
				p.printf("%v\n", err)
			}
		}
		return false, nil
	}

	if len(field.Options) > 0 && field.Kind != wizard.KindYesNo {
		for i, option := range field.Options {
			p.printf("  %d) %s\n", i+1, option)
		}
	}
	if field.Kind == wizard.KindMultiChoice {
		question += " (comma-separated; repeat a value to remove it)"
	}

	for {
		answer, err := p.ask(question)
		if err != nil || answer == ":back" {
			return answer == ":back", err
		}
		if answer == "" {
			return false, nil
		}

		if field.Kind == wizard.KindMultiChoice {
			for _, value := range strings.Split(answer, ",") {
				if err = w.Toggle(field.Name, pickOption(field.Options, value)); err != nil {
					break
				}
			}
		} else {
			err = w.SetField(field.Name, pickOption(field.Options, answer))
		}
		if err == nil {
			return false, nil
		}
		p.printf("%v\n", err)
	}
}

func (p *prompter) ask(question string) (string, error) {
	p.printf("%s: ", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errWizardCancelled
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == ":quit" {
		return "", errWizardCancelled
	}
	return answer, nil
}

//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// pickOption resolves a 1-based option number to its option.
func pickOption(options []string, answer string) string {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return answer
}

// expandLevel accepts a proficiency's first letter.
func expandLevel(answer string) string {
	for _, level := range types.Proficiencies {
		if len(answer) == 1 && strings.EqualFold(answer, string(level)[:1]) {
			return string(level)
		}
	}
	return answer
}

func joinProficiencies() string {
	names := make([]string, len(types.Proficiencies))
	for i, level := range types.Proficiencies {
		names[i] = string(level)
	}
	return strings.Join(names, "/")
}
