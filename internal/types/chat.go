package types

// ChatRequest is one general career-chat message.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatHistoryEntry is one exchange as remembered by the backend.
type ChatHistoryEntry struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// ChatResponse is the reply to a ChatRequest.
type ChatResponse struct {
	Response string             `json:"response"`
	History  []ChatHistoryEntry `json:"history,omitempty"`
}

// MessageResponse is the generic {"message": ...} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
