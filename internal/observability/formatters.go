// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/career-counsellor/internal/chat"
	"github.com/jonathan/career-counsellor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printText writes free text verbatim below a box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printText(text string) {
	fmt.Fprintln(p.out, strings.TrimRight(text, "\n"))
	fmt.Fprintln(p.out)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintProfile outputs a summary of a submitted profile.
func (p *Printer) PrintProfile(profile types.Profile) {
	var sb strings.Builder

	if s, ok := profile.Student(); ok {
		sb.WriteString(fmt.Sprintf("Class:        %s\n", s.ClassLevel))
		sb.WriteString(fmt.Sprintf("Performance:  %s%%\n", s.AcademicPerformance))
		sb.WriteString(fmt.Sprintf("Stream:       %s\n", s.Stream))
		if s.Budget != "" {
			sb.WriteString(fmt.Sprintf("Budget:       %s\n", s.Budget))
		}
		if s.CareerTypePreference != "" {
			sb.WriteString(fmt.Sprintf("Career type:  %s\n", s.CareerTypePreference))
		}
		sb.WriteString("\n")
		writeList(&sb, "Interests", s.Interests, maxItemsToShow)
		writeList(&sb, "Technical skills", s.TechnicalSkills, maxItemsToShow)
		writeList(&sb, "Soft skills", s.SoftSkills, maxItemsToShow)
		p.printBox("STUDENT PROFILE", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	if pr, ok := profile.Professional(); ok {
		sb.WriteString(fmt.Sprintf("Status:       %s\n", pr.CurrentStatus))
		sb.WriteString(fmt.Sprintf("Experience:   %s\n", pr.ExperienceLevel))
		sb.WriteString(fmt.Sprintf("Goals:        %s\n", pr.CareerGoals))
		if pr.TargetApplications != "" {
			sb.WriteString(fmt.Sprintf("Targets:      %s\n", pr.TargetApplications))
		}
		sb.WriteString("\n")

		if len(pr.SkillAssessment) > 0 {
			skills := make([]string, 0, len(pr.SkillAssessment))
			for skill, level := range pr.SkillAssessment {
				skills = append(skills, fmt.Sprintf("%s (%s)", skill, level))
			}
			sort.Strings(skills)
			writeList(&sb, "Skills", skills, len(skills))
		}
		writeList(&sb, "Challenges", pr.CurrentChallenges, maxItemsToShow)
		p.printBox("PROFESSIONAL PROFILE", strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintAdvice outputs the AI advice verbatim under a header.
func (p *Printer) PrintAdvice(advice string) {
	if strings.TrimSpace(advice) == "" {
		return
	}
	p.printBox("AI CAREER ADVICE", fmt.Sprintf("%d characters", len(advice)))
	p.printText(advice)
}

// PrintJobMatches outputs ranked job matches in delivered order.
func (p *Printer) PrintJobMatches(matches []types.JobMatch) {
	if len(matches) == 0 {
		p.printBox("JOB MATCHES", "No matches yet.")
		return
	}

	var sb strings.Builder
	for i, match := range matches {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, match.JobTitle))
		sb.WriteString(fmt.Sprintf("    Match: %.0f%%", match.MatchScore*100))
		location := match.Location()
		if location == "" {
			location = "Remote"
		}
		sb.WriteString(fmt.Sprintf("  Location: %s\n", location))
		if match.Salary != "" {
			sb.WriteString(fmt.Sprintf("    Salary: %s\n", match.Salary))
		}
		if i < len(matches)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobDetails outputs the description of one job title.
func (p *Printer) PrintJobDetails(title string, details *types.JobDetails) {
	if details == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "A day in the life", details.DayInLife, len(details.DayInLife))
	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
	p.printText(details.JobDescription)
}

// PrintSkillAnalysis outputs a skill-gap report.
func (p *Printer) PrintSkillAnalysis(analysis *types.SkillAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", analysis.ConfidenceScore*100))
	if analysis.Timeline != "" {
		sb.WriteString(fmt.Sprintf("Timeline:   %s\n", analysis.Timeline))
	}
	sb.WriteString("\n")
	writeList(&sb, "Existing skills", analysis.ExistingSkills, maxItemsToShow)
	writeList(&sb, "Missing skills", analysis.MissingSkills, maxItemsToShow)
	writeList(&sb, "Learning path", analysis.LearningPath, len(analysis.LearningPath))

	p.printBox("SKILL GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
	p.printText(analysis.Summary)
}

// PrintCVReview outputs a resume review.
func (p *Printer) PrintCVReview(review *types.CVReview) {
	if review == nil {
		return
	}

	filename := review.Filename
	if filename == "" {
		filename = "(sample resume)"
	}
	p.printBox("CV REVIEW", fmt.Sprintf("File:       %s\nCharacters: %d", filename, review.TextLength))
	p.printText(review.Review)
}

// PrintTranscript outputs chat messages in order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTranscript(title string, messages []chat.Message) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintf(p.out, "── %s ──\n", title)
	for _, msg := range messages {
		p.PrintMessage(msg)
	}
}

// PrintMessage outputs a single chat message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessage(msg chat.Message) {
	speaker := "AI"
	if msg.Role == chat.RoleUser {
		speaker = "You"
	}
	fmt.Fprintf(p.out, "[%s] %s: %s\n", msg.At.Format("15:04"), speaker, msg.Text)
}

// PrintInterviewHistory outputs the backend's record of an interview.
func (p *Printer) PrintInterviewHistory(history *types.InterviewHistory) {
	if history == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session: %s\n", history.SessionID))
	if history.Role != "" {
		sb.WriteString(fmt.Sprintf("Role:    %s\n", history.Role))
	}
	sb.WriteString(fmt.Sprintf("Messages: %d", len(history.History)))
	p.printBox("INTERVIEW HISTORY", sb.String())

	for _, msg := range history.History {
		speaker := "Interviewer"
		if msg.Role == "user" || msg.Role == "candidate" {
			speaker = "Candidate"
		}
		p.printText(fmt.Sprintf("%s: %s", speaker, msg.Content))
	}
}
