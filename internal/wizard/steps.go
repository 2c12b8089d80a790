package wizard

import (
	"github.com/jonathan/career-counsellor/internal/prompts"
	"github.com/jonathan/career-counsellor/internal/types"
)

// StepID names a wizard step.
type StepID string

// Step identifiers. "preferences" exists in both branches with different fields.
const (
	StepUserType      StepID = "user-type"
	StepAcademic      StepID = "academic"
	StepInterests     StepID = "interests"
	StepPreferences   StepID = "preferences"
	StepAdditional    StepID = "additional"
	StepCurrentStatus StepID = "current-status"
	StepGoals         StepID = "goals"
	StepSkills        StepID = "skills"
	StepChallenges    StepID = "challenges"
)

// Field names, equal to the backend's JSON keys.
const (
	FieldClassLevel              = "class_level"
	FieldAcademicPerformance     = "academic_performance"
	FieldStream                  = "stream"
	FieldBudget                  = "budget"
	FieldInterests               = "interests"
	FieldTechnicalSkills         = "technical_skills"
	FieldSoftSkills              = "soft_skills"
	FieldLocationPreference      = "location_preference"
	FieldCareerTypePreference    = "career_type_preference"
	FieldCompetitiveExamInterest = "competitive_exam_interest"
	FieldAdditionalInfo          = "additional_info"
	FieldCurrentStatus           = "current_status"
	FieldExperienceLevel         = "experience_gaps"
	FieldCareerGoals             = "career_goals"
	FieldSkillAssessment         = "skill_assessment"
	FieldWorkPreferences         = "work_preferences"
	FieldLearningDevelopment     = "learning_development"
	FieldCurrentChallenges       = "current_challenges"
	FieldTargetApplications      = "target_applications"
)

// Kind tells a front end how to ask for a field.
type Kind int

// Field kinds.
const (
	KindText Kind = iota
	KindChoice
	KindMultiChoice
	KindYesNo
	KindPercentage
	KindRating
)

// Field describes one input on a step.
type Field struct {
	Name     string
	Question string
	Kind     Kind
	Options  []string
	Required bool
}

// Step is the display metadata of one wizard step.
type Step struct {
	ID       StepID
	Title    string
	Heading  string
	Subtitle string
	Fields   []Field
}

const wizardFile = "wizard.json"

type fieldSpec struct {
	name     string
	kind     Kind
	required bool
}

var (
	studentSteps      = []StepID{StepUserType, StepAcademic, StepInterests, StepPreferences, StepAdditional}
	professionalSteps = []StepID{StepUserType, StepCurrentStatus, StepGoals, StepSkills, StepPreferences, StepChallenges}
)

var studentFields = map[StepID][]fieldSpec{
	StepAcademic: {
		{FieldClassLevel, KindChoice, true},
		{FieldAcademicPerformance, KindPercentage, true},
		{FieldStream, KindChoice, true},
		{FieldBudget, KindChoice, false},
	},
	StepInterests: {
		{FieldInterests, KindMultiChoice, true},
		{FieldTechnicalSkills, KindMultiChoice, false},
		{FieldSoftSkills, KindMultiChoice, false},
	},
	StepPreferences: {
		{FieldLocationPreference, KindText, false},
		{FieldCareerTypePreference, KindChoice, true},
		{FieldCompetitiveExamInterest, KindYesNo, false},
	},
	StepAdditional: {
		{FieldAdditionalInfo, KindText, false},
	},
}

var professionalFields = map[StepID][]fieldSpec{
	StepCurrentStatus: {
		{FieldCurrentStatus, KindChoice, true},
		{FieldExperienceLevel, KindChoice, true},
	},
	StepGoals: {
		{FieldCareerGoals, KindText, true},
	},
	StepSkills: {
		{FieldSkillAssessment, KindRating, true},
	},
	StepPreferences: {
		{FieldWorkPreferences, KindText, true},
		{FieldLearningDevelopment, KindText, false},
	},
	StepChallenges: {
		{FieldCurrentChallenges, KindMultiChoice, false},
		{FieldTargetApplications, KindText, false},
	},
}

var choiceOptions = map[string][]string{
	FieldClassLevel:           types.ClassLevels,
	FieldStream:               types.Streams,
	FieldBudget:               types.Budgets,
	FieldCareerTypePreference: types.CareerTypes,
	FieldCurrentStatus:        types.CurrentStatuses,
	FieldExperienceLevel:      types.ExperienceLevels,
}

// StepIDs returns the ordered step list for a branch. An unset user type
// yields only the user-type step.
func StepIDs(t types.UserType) []StepID {
	switch t {
	case types.UserTypeStudent:
		return append([]StepID(nil), studentSteps...)
	case types.UserTypeProfessional:
		return append([]StepID(nil), professionalSteps...)
	default:
		return []StepID{StepUserType}
	}
}

// Describe returns the display metadata of step id within branch t.
func Describe(t types.UserType, id StepID) Step {
	step := Step{
		ID:       id,
		Title:    stepText(t, id, "title"),
		Heading:  stepText(t, id, "heading"),
		Subtitle: stepText(t, id, "subtitle"),
	}

	if id == StepUserType {
		step.Fields = []Field{{
			Name:     "user_type",
			Question: step.Subtitle,
			Kind:     KindChoice,
			Options:  []string{string(types.UserTypeStudent), string(types.UserTypeProfessional)},
			Required: true,
		}}
		return step
	}

	for _, fs := range fieldSpecs(t)[id] {
		step.Fields = append(step.Fields, describeField(fs))
	}
	return step
}

func describeField(fs fieldSpec) Field {
	field := Field{
		Name:     fs.name,
		Question: prompts.MustGet(wizardFile, "question."+fs.name),
		Kind:     fs.kind,
		Required: fs.required,
	}
	switch fs.kind {
	case KindChoice:
		field.Options = choiceOptions[fs.name]
	case KindMultiChoice, KindRating:
		field.Options = prompts.MustOptions(wizardFile, "options."+fs.name)
	case KindYesNo:
		field.Options = []string{"yes", "no"}
	}
	return field
}

// stepText prefers a branch-specific text ("step.student.preferences.title").
func stepText(t types.UserType, id StepID, part string) string {
	if t != "" {
		if text, err := prompts.Get(wizardFile, "step."+string(t)+"."+string(id)+"."+part); err == nil {
			return text
		}
	}
	text, err := prompts.Get(wizardFile, "step."+string(id)+"."+part)
	if err != nil {
		return string(id)
	}
	return text
}

func fieldSpecs(t types.UserType) map[StepID][]fieldSpec {
	if t == types.UserTypeProfessional {
		return professionalFields
	}
	return studentFields
}

// branchOf reports which branch owns a field name.
func branchOf(name string) (types.UserType, bool) {
	for _, specs := range studentFields {
		for _, fs := range specs {
			if fs.name == name {
				return types.UserTypeStudent, true
			}
		}
	}
	for _, specs := range professionalFields {
		for _, fs := range specs {
			if fs.name == name {
				return types.UserTypeProfessional, true
			}
		}
	}
	return "", false
}

func kindOf(name string) Kind {
	for _, specs := range []map[StepID][]fieldSpec{studentFields, professionalFields} {
		for _, fields := range specs {
			for _, fs := range fields {
				if fs.name == name {
					return fs.kind
				}
			}
		}
	}
	return KindText
}
