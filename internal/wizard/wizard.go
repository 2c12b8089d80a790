// Package wizard implements the multi-step profile questionnaire as a state machine.
//
// The first step chooses a branch (student or professional); the branch fixes the
// remaining step list. Advancing past the last step submits the profile exactly once.
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jonathan/career-counsellor/internal/prompts"
	"github.com/jonathan/career-counsellor/internal/types"
)

// Sentinel errors returned by wizard transitions.
var (
	ErrUserTypeRequired = errors.New("select a user type before continuing")
	ErrBranchLocked     = errors.New("user type can only be changed on the first step; reset the wizard to switch")
	ErrAlreadySubmitted = errors.New("wizard has already been submitted")
	ErrUnknownField     = errors.New("unknown field")
)

// StepError reports an incomplete step when step validation is enabled.
type StepError struct {
	Step    StepID
	Missing []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s is incomplete: missing %s", e.Step, strings.Join(e.Missing, ", "))
}

// FieldError reports a rejected field value.
type FieldError struct {
	Field string
	Value string
	Cause error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Field, e.Cause)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

// Submission is produced once, when Next is called on the last step.
type Submission struct {
	Profile types.Profile
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithValidation turns per-step completeness checks on or off (default off).
func WithValidation(enabled bool) Option {
	return func(w *Wizard) {
		w.validate = enabled
	}
}

// OnSubmit registers a callback invoked with the submission, after the state change.
func OnSubmit(fn func(Submission)) Option {
	return func(w *Wizard) {
		w.onSubmit = fn
	}
}

// Wizard is safe for concurrent use.
type Wizard struct {
	mu           sync.Mutex
	userType     types.UserType
	step         int
	student      types.StudentProfile
	professional types.ProfessionalProfile
	filled       map[string]bool
	submitted    bool

	validate bool
	onSubmit func(Submission)
}

// New returns a wizard on the user-type step with no branch selected.
func New(opts ...Option) *Wizard {
	w := &Wizard{filled: make(map[string]bool)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Reset returns the wizard to its initial state, keeping its options.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.userType = ""
	w.step = 0
	w.student = types.StudentProfile{}
	w.professional = types.ProfessionalProfile{}
	w.filled = make(map[string]bool)
	w.submitted = false
}

// UserType returns the selected branch, or "" when none is selected.
func (w *Wizard) UserType() types.UserType {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.userType
}

// StepIndex returns the zero-based current step.
func (w *Wizard) StepIndex() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// TotalSteps returns the length of the active step list.
func (w *Wizard) TotalSteps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(StepIDs(w.userType))
}

// Steps returns the metadata of every step in the active branch.
func (w *Wizard) Steps() []Step {
	w.mu.Lock()
	t := w.userType
	w.mu.Unlock()

	ids := StepIDs(t)
	steps := make([]Step, 0, len(ids))
	for _, id := range ids {
		steps = append(steps, Describe(t, id))
	}
	return steps
}

// CurrentStep returns the metadata of the current step.
func (w *Wizard) CurrentStep() Step {
	w.mu.Lock()
	t, id := w.userType, w.currentID()
	w.mu.Unlock()
	return Describe(t, id)
}

// Submitted reports whether the wizard has produced its submission.
func (w *Wizard) Submitted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitted
}

// Draft returns the profile as entered so far. It is zero before a branch is chosen.
func (w *Wizard) Draft() types.Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft()
}

// SelectUserType chooses the branch. It is only allowed on the first step;
// choosing a different branch discards the other branch's draft.
func (w *Wizard) SelectUserType(t types.UserType) error {
	if !t.Valid() {
		return fmt.Errorf("unknown user type %q", t)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.step != 0 {
		return ErrBranchLocked
	}
	if t == w.userType {
		return nil
	}

	w.userType = t
	w.student = types.StudentProfile{}
	w.professional = types.ProfessionalProfile{}
	w.filled = make(map[string]bool)
	return nil
}

// Next advances one step. On the last step it submits and returns the Submission;
// otherwise it returns nil.
func (w *Wizard) Next() (*Submission, error) {
	w.mu.Lock()

	if w.submitted {
		w.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	if w.userType == "" {
		w.mu.Unlock()
		return nil, ErrUserTypeRequired
	}
	if w.validate {
		if missing := w.missingFields(); len(missing) > 0 {
			err := &StepError{Step: w.currentID(), Missing: missing}
			w.mu.Unlock()
			return nil, err
		}
	}

	if w.step < len(StepIDs(w.userType))-1 {
		w.step++
		w.mu.Unlock()
		return nil, nil
	}

	w.submitted = true
	submission := Submission{Profile: w.draft()}
	onSubmit := w.onSubmit
	w.mu.Unlock()

	if onSubmit != nil {
		onSubmit(submission)
	}
	return &submission, nil
}

// Back moves one step back, stopping at the first step.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.step > 0 {
		w.step--
	}
	return nil
}

// SetField sets a scalar field of the active branch. An empty value clears it.
// Choice fields accept their options case-insensitively; academic performance
// must lie in 0-100.
func (w *Wizard) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkField(name); err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch kindOf(name) {
	case KindMultiChoice, KindRating:
		return fmt.Errorf("%s is a multi-value field: %w", name, ErrUnknownField)
	case KindChoice:
		if value != "" {
			canonical, ok := matchOption(choiceOptions[name], value)
			if !ok {
				return &FieldError{Field: name, Value: value, Cause: fmt.Errorf("expected one of %s", strings.Join(choiceOptions[name], ", "))}
			}
			value = canonical
		}
	}

	if w.userType == types.UserTypeStudent {
		if err := w.setStudent(name, value); err != nil {
			return err
		}
	} else {
		w.setProfessional(name, value)
	}
	w.filled[name] = value != ""
	return nil
}

func (w *Wizard) setStudent(name, value string) error {
	s := &w.student
	switch name {
	case FieldClassLevel:
		s.ClassLevel = value
	case FieldAcademicPerformance:
		if value == "" {
			s.AcademicPerformance = 0
			return nil
		}
		p, err := types.ParsePercentage(value)
		if err != nil {
			return &FieldError{Field: name, Value: value, Cause: err}
		}
		s.AcademicPerformance = p
	case FieldStream:
		s.Stream = value
	case FieldBudget:
		s.Budget = value
	case FieldLocationPreference:
		s.LocationPreference = value
	case FieldCareerTypePreference:
		s.CareerTypePreference = value
	case FieldCompetitiveExamInterest:
		yes, err := parseYesNo(value)
		if err != nil {
			return &FieldError{Field: name, Value: value, Cause: err}
		}
		s.CompetitiveExamInterest = yes
	case FieldAdditionalInfo:
		s.AdditionalInfo = value
	}
	return nil
}

func (w *Wizard) setProfessional(name, value string) {
	p := &w.professional
	switch name {
	case FieldCurrentStatus:
		p.CurrentStatus = value
	case FieldExperienceLevel:
		p.ExperienceLevel = value
	case FieldCareerGoals:
		p.CareerGoals = value
	case FieldWorkPreferences:
		p.WorkPreferences = value
	case FieldLearningDevelopment:
		p.LearningDevelopment = value
	case FieldTargetApplications:
		p.TargetApplications = value
	}
}

// Toggle adds value to a multi-select field, or removes it when present.
// Toggling the same value twice restores the original set. Values matching an
// option in any case take the option's spelling; interests are stored lower-cased.
func (w *Wizard) Toggle(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkField(name); err != nil {
		return err
	}
	if kindOf(name) != KindMultiChoice {
		return fmt.Errorf("%s is not a multi-select field: %w", name, ErrUnknownField)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return &FieldError{Field: name, Value: value, Cause: errors.New("value is empty")}
	}

	if option, ok := matchOption(prompts.MustOptions(wizardFile, "options."+name), value); ok {
		value = option
	}
	if name == FieldInterests {
		value = strings.ToLower(value)
	}

	var current *[]string
	switch name {
	case FieldInterests:
		current = &w.student.Interests
	case FieldTechnicalSkills:
		current = &w.student.TechnicalSkills
	case FieldSoftSkills:
		current = &w.student.SoftSkills
	case FieldCurrentChallenges:
		current = &w.professional.CurrentChallenges
	}
	*current = types.ToggleValue(*current, value)
	w.filled[name] = len(*current) > 0
	return nil
}

// RateSkill records a proficiency for skill. An empty level removes the rating.
func (w *Wizard) RateSkill(skill, level string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkField(FieldSkillAssessment); err != nil {
		return err
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return &FieldError{Field: FieldSkillAssessment, Value: skill, Cause: errors.New("skill name is empty")}
	}

	ratings := w.professional.SkillAssessment
	if strings.TrimSpace(level) == "" {
		delete(ratings, skill)
		w.filled[FieldSkillAssessment] = len(ratings) > 0
		return nil
	}

	names := make([]string, len(types.Proficiencies))
	for i, p := range types.Proficiencies {
		names[i] = string(p)
	}
	canonical, ok := matchOption(names, level)
	if !ok {
		return &FieldError{Field: FieldSkillAssessment, Value: level, Cause: fmt.Errorf("expected one of %s", strings.Join(names, ", "))}
	}
	if ratings == nil {
		ratings = make(map[string]types.Proficiency)
		w.professional.SkillAssessment = ratings
	}
	ratings[skill] = types.Proficiency(canonical)
	w.filled[FieldSkillAssessment] = true
	return nil
}

// checkField requires a branch, an open wizard and a field of the active branch.
func (w *Wizard) checkField(name string) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.userType == "" {
		return ErrUserTypeRequired
	}
	branch, ok := branchOf(name)
	if !ok || branch != w.userType {
		return fmt.Errorf("%w %q for %s", ErrUnknownField, name, w.userType)
	}
	return nil
}

func (w *Wizard) currentID() StepID {
	return StepIDs(w.userType)[w.step]
}

func (w *Wizard) missingFields() []string {
	var missing []string
	for _, fs := range fieldSpecs(w.userType)[w.currentID()] {
		if fs.required && !w.filled[fs.name] {
			missing = append(missing, fs.name)
		}
	}
	return missing
}

func (w *Wizard) draft() types.Profile {
	switch w.userType {
	case types.UserTypeStudent:
		return types.NewStudentProfile(w.student)
	case types.UserTypeProfessional:
		return types.NewProfessionalProfile(w.professional)
	default:
		return types.Profile{}
	}
}

func matchOption(options []string, value string) (string, bool) {
	i := slices.IndexFunc(options, func(option string) bool {
		return strings.EqualFold(option, value)
	})
	if i < 0 {
		return "", false
	}
	return options[i], true
}

func parseYesNo(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "", "no", "n", "false", "0":
		return false, nil
	case "yes", "y", "true", "1":
		return true, nil
	default:
		return false, errors.New("expected yes or no")
	}
}
