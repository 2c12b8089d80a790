package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearBaseURLEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "")
	t.Setenv("COUNSELLOR_API_BASE_URL", "")
	t.Setenv("VITE_API_BASE_URL", "")
}

func TestLoad_ValidJSON(t *testing.T) {
	clearBaseURLEnv(t)
	content := `{
		"api_base_url": "https://careers.example.com",
		"timeout": "45s",
		"strict": true,
		"top_n": 8,
		"interview_role": "Data Analyst"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://careers.example.com", cfg.APIBaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 8, cfg.TopN)
	assert.Equal(t, "Data Analyst", cfg.InterviewRole)
	// Unset keys keep their defaults.
	assert.Equal(t, 5, cfg.InterviewQuestions)
}

func TestLoad_YAML(t *testing.T) {
	clearBaseURLEnv(t)
	content := "api_base_url: http://127.0.0.1:9000\nverbose: true\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.APIBaseURL)
	assert.True(t, cfg.Verbose)
}

func TestLoad_RelativePath(t *testing.T) {
	clearBaseURLEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "counsellor.yaml"), []byte("top_n: 7\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load("counsellor.yaml")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.TopN)
}

func TestLoad_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearBaseURLEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.TopN)
	assert.True(t, cfg.StepValidation)
	assert.Equal(t, "medium", cfg.InterviewDifficulty)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"api_base_url": "http://file.example.com", "top_n": 3}`), 0644))

	t.Setenv("COUNSELLOR_API_BASE_URL", "")
	t.Setenv("VITE_API_BASE_URL", "")
	t.Setenv("API_BASE_URL", "http://env.example.com")

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com", cfg.APIBaseURL)
	assert.Equal(t, 3, cfg.TopN)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"interview_difficulty": "brutal"}`), 0644))

	_, err := Load(tmpFile)
	assert.ErrorContains(t, err, "interview_difficulty")
}

func TestValidate_BaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"empty uses default", "", false},
		{"http", "http://localhost:8000", false},
		{"https", "https://api.example.com/base", false},
		{"relative", "/api", true},
		{"ftp", "ftp://example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{APIBaseURL: tt.url}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{Timeout: -time.Second}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")

	cfg = &Config{TopN: 21}
	assert.ErrorContains(t, cfg.Validate(), "top_n")

	cfg = &Config{InterviewQuestions: -2}
	assert.ErrorContains(t, cfg.Validate(), "interview_questions")
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()
	defaults.Timeout = 10 * time.Second

	partial := Config{
		APIBaseURL: "http://custom:8000",
		TopN:       12,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "http://custom:8000", merged.APIBaseURL)
	assert.Equal(t, 12, merged.TopN)

	// Default values should fill in empty fields
	assert.Equal(t, 10*time.Second, merged.Timeout)
	assert.Equal(t, "Software Engineer", merged.InterviewRole)
	assert.Equal(t, "medium", merged.InterviewDifficulty)
	assert.Equal(t, 5, merged.InterviewQuestions)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{APIBaseURL: "http://x:1"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "http://x:1", merged.APIBaseURL)
	assert.Equal(t, 0, merged.TopN)
}
