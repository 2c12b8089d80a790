package types

// SkillAnalysisRequest compares two free-text skill descriptions.
type SkillAnalysisRequest struct {
	CurrentSkills string `json:"current_skills" validate:"required"`
	TargetSkills  string `json:"target_skills" validate:"required"`
}

// Validate validates the SkillAnalysisRequest using the validator.
func (r *SkillAnalysisRequest) Validate() error {
	return validate.Struct(r)
}

// SkillAnalysis is the structured skill-gap report.
type SkillAnalysis struct {
	Summary         string   `json:"summary"`
	ConfidenceScore float64  `json:"confidence_score"`
	ExistingSkills  []string `json:"existing_skills"`
	MissingSkills   []string `json:"missing_skills"`
	LearningPath    []string `json:"learning_path"`
	Timeline        string   `json:"timeline"`
}

// SkillChatRequest asks a follow-up question about an analysis.
type SkillChatRequest struct {
	Message string         `json:"message"`
	Context *SkillAnalysis `json:"context,omitempty"`
}

// SkillChatResponse is the reply to a SkillChatRequest.
type SkillChatResponse struct {
	Response string `json:"response"`
}
