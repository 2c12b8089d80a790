// Package schemas embeds the JSON Schemas describing the backend's response contracts.
package schemas

import "embed"

// Files holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names, one per response contract.
const (
	AdviceResponse            = "advice_response.schema.json"
	JobRecommendationResponse = "job_recommendation_response.schema.json"
	JobDetails                = "job_details.schema.json"
	CVReview                  = "cv_review.schema.json"
	InterviewStart            = "interview_start.schema.json"
	InterviewHistory          = "interview_history.schema.json"
	Reply                     = "reply.schema.json"
	SkillAnalysis             = "skill_analysis.schema.json"
)

// All lists every schema name.
var All = []string{
	AdviceResponse,
	JobRecommendationResponse,
	JobDetails,
	CVReview,
	InterviewStart,
	InterviewHistory,
	Reply,
	SkillAnalysis,
}
