// Package types provides type definitions for the profile, advice, job-match and chat data
// exchanged between the counsellor client and the career-advice backend.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// UserType discriminates the two profile variants.
type UserType string

// Supported user types.
const (
	UserTypeStudent      UserType = "student"
	UserTypeProfessional UserType = "professional"
)

// ParseUserType converts user input into a UserType.
func ParseUserType(s string) (UserType, error) {
	switch UserType(strings.ToLower(strings.TrimSpace(s))) {
	case UserTypeStudent:
		return UserTypeStudent, nil
	case UserTypeProfessional:
		return UserTypeProfessional, nil
	default:
		return "", fmt.Errorf("unknown user type %q (expected student or professional)", s)
	}
}

// Valid reports whether t is one of the supported user types.
func (t UserType) Valid() bool {
	return t == UserTypeStudent || t == UserTypeProfessional
}

// Proficiency is a self-assessed skill level.
type Proficiency string

// Proficiency levels, lowest first.
const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

// Percentage is an academic score in the range 0-100.
// The backend expects it as a string, so it is encoded that way on the wire.
type Percentage float64

// ParsePercentage accepts "85", "85%" or "72.5 %".
func ParsePercentage(s string) (Percentage, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, fmt.Errorf("academic performance is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("academic performance %q is not a number", s)
	}
	p := Percentage(f)
	if !p.InRange() {
		return 0, fmt.Errorf("academic performance %v must be between 0 and 100", f)
	}
	return p, nil
}

// InRange reports whether p lies in [0, 100].
func (p Percentage) InRange() bool {
	return p >= 0 && p <= 100
}

func (p Percentage) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// MarshalJSON encodes the percentage as a JSON string.
func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either a number or a string such as "85%".
func (p *Percentage) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*p = Percentage(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("academic_performance must be a number or string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*p = 0
		return nil
	}
	parsed, err := ParsePercentage(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// StudentProfile is the student variant of a user profile.
type StudentProfile struct {
	ClassLevel              string     `json:"class_level" validate:"omitempty,class_level"`
	AcademicPerformance     Percentage `json:"academic_performance" validate:"gte=0,lte=100"`
	Stream                  string     `json:"stream" validate:"omitempty,oneof=science commerce arts other"`
	Interests               []string   `json:"interests" validate:"unique"`
	Budget                  string     `json:"budget" validate:"omitempty,budget"`
	LocationPreference      string     `json:"location_preference"`
	CompetitiveExamInterest bool       `json:"competitive_exam_interest"`
	CareerTypePreference    string     `json:"career_type_preference" validate:"omitempty,oneof=private government startup freelance"`
	TechnicalSkills         []string   `json:"technical_skills" validate:"unique"`
	SoftSkills              []string   `json:"soft_skills" validate:"unique"`
	AdditionalInfo          string     `json:"additional_info"`
}

// ProfessionalProfile is the working-professional variant of a user profile.
type ProfessionalProfile struct {
	CurrentStatus       string                 `json:"current_status" validate:"omitempty,oneof=employed unemployed freelancing entrepreneur career-break"`
	CareerGoals         string                 `json:"career_goals"`
	SkillAssessment     map[string]Proficiency `json:"skill_assessment" validate:"dive,keys,required,endkeys,proficiency"`
	ExperienceLevel     string                 `json:"experience_gaps" validate:"omitempty,experience_level"`
	WorkPreferences     string                 `json:"work_preferences"`
	LearningDevelopment string                 `json:"learning_development"`
	CurrentChallenges   []string               `json:"current_challenges" validate:"unique"`
	TargetApplications  string                 `json:"target_applications"`
}

// ErrProfileVariant is returned when a profile does not hold exactly one variant.
var ErrProfileVariant = errors.New("profile must hold exactly one of student or professional")

// Profile is a user profile holding exactly one active variant.
// The zero value is empty and reports Kind() == "".
type Profile struct {
	kind         UserType
	student      *StudentProfile
	professional *ProfessionalProfile
}

// NewStudentProfile wraps a student variant.
func NewStudentProfile(s StudentProfile) Profile {
	return Profile{kind: UserTypeStudent, student: s.clone()}
}

// NewProfessionalProfile wraps a professional variant.
func NewProfessionalProfile(p ProfessionalProfile) Profile {
	return Profile{kind: UserTypeProfessional, professional: p.clone()}
}

// Kind returns the active variant's user type.
func (p Profile) Kind() UserType { return p.kind }

// IsZero reports whether the profile is empty.
func (p Profile) IsZero() bool { return p.kind == "" }

// Student returns a copy of the student variant.
func (p Profile) Student() (StudentProfile, bool) {
	if p.student == nil {
		return StudentProfile{}, false
	}
	return *p.student.clone(), true
}

// Professional returns a copy of the professional variant.
func (p Profile) Professional() (ProfessionalProfile, bool) {
	if p.professional == nil {
		return ProfessionalProfile{}, false
	}
	return *p.professional.clone(), true
}

// Body returns the active variant in the flat shape the backend accepts.
func (p Profile) Body() (any, error) {
	switch p.kind {
	case UserTypeStudent:
		return p.student.normalized(), nil
	case UserTypeProfessional:
		return p.professional.normalized(), nil
	default:
		return nil, ErrProfileVariant
	}
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	return Profile{kind: p.kind, student: p.student.clone(), professional: p.professional.clone()}
}

// Validate checks the variant invariant and field formats.
// Presence of fields is not required; the wizard enforces that per step.
func (p Profile) Validate() error {
	switch {
	case p.kind == UserTypeStudent && p.student != nil && p.professional == nil:
		return validate.Struct(p.student)
	case p.kind == UserTypeProfessional && p.professional != nil && p.student == nil:
		return validate.Struct(p.professional)
	default:
		return ErrProfileVariant
	}
}

// profileDocument is the file and storage encoding of a Profile.
type profileDocument struct {
	UserType UserType        `json:"user_type"`
	Profile  json.RawMessage `json:"profile"`
}

// MarshalJSON encodes the profile as {"user_type": ..., "profile": {...}}.
func (p Profile) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(profileDocument{UserType: p.kind, Profile: raw})
}

// UnmarshalJSON decodes the document form written by MarshalJSON.
func (p *Profile) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Profile{}
		return nil
	}
	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse profile document: %w", err)
	}
	decoded, err := DecodeProfile(doc.UserType, doc.Profile)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// DecodeProfile decodes a flat backend-shaped body into the variant named by kind.
func DecodeProfile(kind UserType, body []byte) (Profile, error) {
	switch kind {
	case UserTypeStudent:
		var s StudentProfile
		if err := json.Unmarshal(body, &s); err != nil {
			return Profile{}, fmt.Errorf("failed to parse student profile: %w", err)
		}
		return NewStudentProfile(s), nil
	case UserTypeProfessional:
		var pr ProfessionalProfile
		if err := json.Unmarshal(body, &pr); err != nil {
			return Profile{}, fmt.Errorf("failed to parse professional profile: %w", err)
		}
		return NewProfessionalProfile(pr), nil
	default:
		return Profile{}, fmt.Errorf("unknown user type %q", kind)
	}
}

// ToggleValue returns values with v removed when present, or appended when absent.
// Presence is case-insensitive.
// The input slice is not modified.
func ToggleValue(values []string, v string) []string {
	if i := slices.IndexFunc(values, func(x string) bool { return strings.EqualFold(x, v) }); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), v)
}

func (s *StudentProfile) clone() *StudentProfile {
	if s == nil {
		return nil
	}
	c := *s
	c.Interests = slices.Clone(s.Interests)
	c.TechnicalSkills = slices.Clone(s.TechnicalSkills)
	c.SoftSkills = slices.Clone(s.SoftSkills)
	return &c
}

// normalized replaces nil sets with empty ones so the backend sees [] rather than null.
func (s *StudentProfile) normalized() *StudentProfile {
	c := s.clone()
	if c.Interests == nil {
		c.Interests = []string{}
	}
	if c.TechnicalSkills == nil {
		c.TechnicalSkills = []string{}
	}
	if c.SoftSkills == nil {
		c.SoftSkills = []string{}
	}
	return c
}

func (p *ProfessionalProfile) clone() *ProfessionalProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.SkillAssessment = maps.Clone(p.SkillAssessment)
	c.CurrentChallenges = slices.Clone(p.CurrentChallenges)
	return &c
}

func (p *ProfessionalProfile) normalized() *ProfessionalProfile {
	c := p.clone()
	if c.SkillAssessment == nil {
		c.SkillAssessment = map[string]Proficiency{}
	}
	if c.CurrentChallenges == nil {
		c.CurrentChallenges = []string{}
	}
	return c
}
