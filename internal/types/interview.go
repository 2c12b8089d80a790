package types

// Interview request limits.
const (
	MinInterviewQuestions = 1
	MaxInterviewQuestions = 20
)

// InterviewStartRequest opens a mock interview session.
type InterviewStartRequest struct {
	Role         string `json:"role" validate:"required,min=2"`
	NumQuestions int    `json:"num_questions" validate:"min=1,max=20"`
	Difficulty   string `json:"difficulty" validate:"oneof=easy medium hard"`
}

// Validate validates the InterviewStartRequest using the validator.
func (r *InterviewStartRequest) Validate() error {
	return validate.Struct(r)
}

// InterviewStartResponse carries the session identifier and the opening prompt.
type InterviewStartResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// InterviewChatRequest is one candidate answer within a session.
type InterviewChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// InterviewChatResponse is the interviewer's reply.
type InterviewChatResponse struct {
	Response string `json:"response"`
}

// InterviewMessage is one stored message of an interview session.
type InterviewMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// InterviewHistory is the backend's record of a session.
type InterviewHistory struct {
	SessionID string             `json:"session_id"`
	Role      string             `json:"role,omitempty"`
	History   []InterviewMessage `json:"history"`
}
