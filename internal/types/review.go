package types

// CVReview is the backend's resume review.
type CVReview struct {
	Filename   string `json:"filename"`
	TextLength int    `json:"text_length"`
	Review     string `json:"review"`
}
