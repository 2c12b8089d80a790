package types

// Limits accepted by the job recommendation endpoint.
const (
	DefaultTopN = 5
	MaxTopN     = 20
)

// JobMatch is one ranked job recommendation.
// Rows are kept in the order the backend delivered them; duplicate titles are allowed.
type JobMatch struct {
	JobTitle   string  `json:"job_title"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	Salary     string  `json:"salary,omitempty"`
	MatchScore float64 `json:"match_score"`
}

// Location joins city and state for display.
func (m JobMatch) Location() string {
	switch {
	case m.City != "" && m.State != "":
		return m.City + ", " + m.State
	case m.City != "":
		return m.City
	default:
		return m.State
	}
}

// JobRecommendationRequest asks for the top N jobs matching free text.
type JobRecommendationRequest struct {
	Text string `json:"text" validate:"required"`
	TopN int    `json:"top_n" validate:"min=1,max=20"`
}

// Validate validates the JobRecommendationRequest using the validator.
func (r *JobRecommendationRequest) Validate() error {
	return validate.Struct(r)
}

// JobRecommendationResponse carries ranked matches.
type JobRecommendationResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Matches []JobMatch `json:"matches"`
	Error   string     `json:"error,omitempty"`
}

// JobDetailsRequest asks for a description of one job title.
type JobDetailsRequest struct {
	JobTitle string `json:"job_title" validate:"required"`
}

// JobDetails describes a job title.
type JobDetails struct {
	JobDescription string   `json:"job_description"`
	DayInLife      []string `json:"day_in_life"`
}
