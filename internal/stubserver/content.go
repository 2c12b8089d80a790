package stubserver

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/career-counsellor/internal/types"
)

var sampleStudent = types.StudentProfile{
	ClassLevel:              "12th Grade",
	AcademicPerformance:     85,
	Stream:                  "science",
	Interests:               []string{"coding", "mathematics", "problem solving"},
	Budget:                  "2-5 lakhs",
	LocationPreference:      "Mumbai or Bangalore",
	CompetitiveExamInterest: true,
	CareerTypePreference:    "private",
	TechnicalSkills:         []string{"Python", "HTML/CSS"},
	SoftSkills:              []string{"Leadership", "Team Work"},
	AdditionalInfo:          "Interested in AI and Machine Learning",
}

var sampleProfessional = types.ProfessionalProfile{
	CurrentStatus: "employed",
	CareerGoals:   "I want to transition into a senior management role in the tech industry within the next 2-3 years and eventually become a CTO.",
	SkillAssessment: map[string]types.Proficiency{
		"Technical Skills":   types.ProficiencyAdvanced,
		"Communication":      types.ProficiencyIntermediate,
		"Leadership":         types.ProficiencyIntermediate,
		"Problem Solving":    types.ProficiencyAdvanced,
		"Project Management": types.ProficiencyIntermediate,
		"Team Collaboration": types.ProficiencyAdvanced,
		"Time Management":    types.ProficiencyIntermediate,
		"Creativity":         types.ProficiencyAdvanced,
	},
	ExperienceLevel:     "5-10 years",
	WorkPreferences:     "I prefer a collaborative work environment with opportunities for innovation and growth.",
	LearningDevelopment: "I want to develop my leadership and management skills and learn about business strategy.",
	CurrentChallenges:   []string{"Career Growth", "Leadership Opportunities", "Skill Gap"},
	TargetApplications:  "Tech companies, startups in AI/ML space, and fintech companies",
}

func adviceForStudent(p types.StudentProfile) string {
	var sb strings.Builder
	sb.WriteString("# Career Guidance Report\n\n")
	fmt.Fprintf(&sb, "## Profile Summary\n%s student in the %s stream with %s%% academic performance.\n\n",
		orDefault(p.ClassLevel, "A"), orDefault(p.Stream, "general"), p.AcademicPerformance)

	sb.WriteString("## Recommended Career Paths\n")
	for i, match := range recommend(strings.Join(append(append(append([]string{}, p.Interests...), p.TechnicalSkills...), p.SoftSkills...), ", "), 3) {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, match.JobTitle)
	}

	sb.WriteString("\n## Next Steps\n")
	if p.CompetitiveExamInterest {
		sb.WriteString("- Prepare for the relevant entrance examinations.\n")
	}
	if p.Budget != "" {
		fmt.Fprintf(&sb, "- Shortlist programmes that fit a budget of %s.\n", p.Budget)
	}
	if p.LocationPreference != "" {
		fmt.Fprintf(&sb, "- Explore institutions in %s.\n", p.LocationPreference)
	}
	sb.WriteString("- Build a small portfolio of projects around your interests.\n")
	return sb.String()
}

func adviceForProfessional(p types.ProfessionalProfile) string {
	var sb strings.Builder
	sb.WriteString("# Professional Career Roadmap\n\n")
	fmt.Fprintf(&sb, "## Where You Are\nStatus: %s, experience: %s.\n\n",
		orDefault(p.CurrentStatus, "unspecified"), orDefault(p.ExperienceLevel, "unspecified"))

	if p.CareerGoals != "" {
		fmt.Fprintf(&sb, "## Goal\n%s\n\n", p.CareerGoals)
	}

	var growth []string
	for skill, level := range p.SkillAssessment {
		if level == types.ProficiencyBeginner || level == types.ProficiencyIntermediate {
			growth = append(growth, skill)
		}
	}
	sort.Strings(growth)
	if len(growth) > 0 {
		sb.WriteString("## Skills to Strengthen\n")
		for _, skill := range growth {
			fmt.Fprintf(&sb, "- %s\n", skill)
		}
		sb.WriteString("\n")
	}

	if len(p.CurrentChallenges) > 0 {
		sb.WriteString("## Addressing Your Challenges\n")
		for _, challenge := range p.CurrentChallenges {
			fmt.Fprintf(&sb, "- %s: set a 90-day plan with measurable milestones.\n", challenge)
		}
	}
	return sb.String()
}

type catalogJob struct {
	title    string
	city     string
	state    string
	salary   string
	keywords []string
}

var catalog = []catalogJob{
	{"Software Engineer", "Bangalore", "KA", "12-25 LPA", []string{"coding", "python", "java", "javascript", "problem solving", "technology", "web development"}},
	{"Data Analyst", "Pune", "MH", "6-12 LPA", []string{"sql", "python", "data analysis", "mathematics", "research", "statistics"}},
	{"Machine Learning Engineer", "Hyderabad", "TS", "15-30 LPA", []string{"machine learning", "python", "mathematics", "ai", "research"}},
	{"Product Manager", "Mumbai", "MH", "18-35 LPA", []string{"leadership", "communication", "business", "career growth", "strategy"}},
	{"UX Designer", "Bangalore", "KA", "8-18 LPA", []string{"design", "art", "creativity", "html/css", "research"}},
	{"Frontend Developer", "Chennai", "TN", "7-16 LPA", []string{"react", "javascript", "html/css", "web development", "design"}},
	{"Engineering Manager", "Bangalore", "KA", "35-60 LPA", []string{"leadership", "project management", "team collaboration", "cto", "management"}},
	{"Technical Writer", "", "", "5-10 LPA", []string{"writing", "communication", "technology"}},
	{"Mobile Developer", "Noida", "UP", "8-20 LPA", []string{"mobile development", "java", "react", "coding"}},
	{"Business Analyst", "Gurgaon", "HR", "8-15 LPA", []string{"business", "sql", "communication", "data analysis", "fintech"}},
}

// recommend scores catalog jobs by keyword overlap with text. Ties keep catalog order.
func recommend(text string, topN int) []types.JobMatch {
	query := strings.ToLower(text)

	type scored struct {
		job   catalogJob
		score float64
	}
	ranked := make([]scored, 0, len(catalog))
	for _, job := range catalog {
		hits := 0
		for _, kw := range job.keywords {
			if strings.Contains(query, kw) {
				hits++
			}
		}
		score := 0.05 + 0.95*float64(hits)/float64(len(job.keywords))
		ranked = append(ranked, scored{job: job, score: math.Round(score*100) / 100})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if topN > len(ranked) {
		topN = len(ranked)
	}
	matches := make([]types.JobMatch, 0, topN)
	for _, r := range ranked[:topN] {
		matches = append(matches, types.JobMatch{
			JobTitle:   r.job.title,
			City:       r.job.city,
			State:      r.job.state,
			Salary:     r.job.salary,
			MatchScore: r.score,
		})
	}
	return matches
}

func describeJob(title string) types.JobDetails {
	return types.JobDetails{
		JobDescription: fmt.Sprintf("A %s turns business needs into working outcomes, collaborating across teams and owning results end to end.", title),
		DayInLife: []string{
			"Morning stand-up with the team",
			fmt.Sprintf("Focused work on core %s tasks", strings.ToLower(title)),
			"Reviewing work with peers",
			"Meeting stakeholders to align on priorities",
			"Learning time and planning for tomorrow",
		},
	}
}

func analyzeGap(current, target string) types.SkillAnalysis {
	have := splitSkills(current)
	want := splitSkills(target)

	haveSet := make(map[string]bool, len(have))
	for _, skill := range have {
		haveSet[strings.ToLower(skill)] = true
	}

	existing := []string{}
	missing := []string{}
	for _, skill := range want {
		if haveSet[strings.ToLower(skill)] {
			existing = append(existing, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	path := make([]string, 0, len(missing))
	for _, skill := range missing {
		path = append(path, "Learn "+skill+" through a guided course and one hands-on project")
	}

	confidence := 1.0
	if len(want) > 0 {
		confidence = math.Round(float64(len(existing))/float64(len(want))*100) / 100
	}

	timeline := "You are ready to apply now"
	if n := len(missing); n > 0 {
		timeline = fmt.Sprintf("%d-%d months", n*2, n*3)
	}

	return types.SkillAnalysis{
		Summary:         fmt.Sprintf("You already cover %d of %d target skills.", len(existing), len(want)),
		ConfidenceScore: confidence,
		ExistingSkills:  existing,
		MissingSkills:   missing,
		LearningPath:    path,
		Timeline:        timeline,
	}
}

func splitSkills(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' || r == ';' })
	skills := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			skills = append(skills, f)
		}
	}
	return skills
}

func chatReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "resume") || strings.Contains(lower, "cv"):
		return "Keep your resume to one page, lead with impact and quantify your results."
	case strings.Contains(lower, "interview"):
		return "Practise the STAR method and prepare two stories for each key skill in the job description."
	case strings.Contains(lower, "salary"):
		return "Research market ranges for your role and city, then anchor slightly above your target."
	default:
		return fmt.Sprintf("Great question about %q. Start by listing your strengths and the roles that use them.", message)
	}
}

const (
	samplePages      = 1
	sampleResumeText = "Jane Doe. Software engineer with four years of experience building web services in Python and Go."
)

func reviewText(pages int, text string) string {
	words := len(strings.Fields(text))
	var sb strings.Builder
	sb.WriteString("## CV Review\n\n")
	fmt.Fprintf(&sb, "- Pages: %d\n- Words: %d\n", pages, words)
	switch {
	case words == 0:
		sb.WriteString("- No selectable text found; export the resume as a text-based PDF.\n")
	case words < 150:
		sb.WriteString("- The resume is brief; add measurable achievements for each role.\n")
	default:
		sb.WriteString("- Good length; make sure every bullet starts with a strong verb.\n")
	}
	return sb.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
