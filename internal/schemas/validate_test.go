package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/jonathan/career-counsellor/schemas"
)

func TestValidate_EveryEmbeddedSchemaCompiles(t *testing.T) {
	ClearCache()
	for _, name := range contracts.All {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			require.NoError(t, err)
		})
	}
}

func TestValidate_AdviceResponse(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{"success with advice", `{"success": true, "message": "ok", "advice": "## Plan"}`, false},
		{"failure with error", `{"success": false, "error": "model unavailable"}`, false},
		{"success without advice", `{"success": true}`, true},
		{"missing success", `{"advice": "x"}`, true},
		{"wrong type", `{"success": "yes", "advice": "x"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(contracts.AdviceResponse, []byte(tt.document))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %T: %v", err, err)
			assert.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, contracts.AdviceResponse, validationErr.Schema)
		})
	}
}

func TestValidate_JobMatchScoreRange(t *testing.T) {
	ok := `{"success": true, "matches": [{"job_title": "Data Analyst", "city": null, "match_score": 0.82}]}`
	assert.NoError(t, Validate(contracts.JobRecommendationResponse, []byte(ok)))

	bad := `{"success": true, "matches": [{"job_title": "Data Analyst", "match_score": 1.5}]}`
	err := Validate(contracts.JobRecommendationResponse, []byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match_score")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "schema not embedded")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(contracts.Reply, []byte(`{ invalid json }`))
	assert.Error(t, err)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Error(), "validation failed")
}
