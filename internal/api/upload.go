package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/jonathan/career-counsellor/internal/types"
	contracts "github.com/jonathan/career-counsellor/schemas"
)

// ReviewCV uploads a resume for review. When r is nil the form carries no file
// and the backend reviews its own sample resume.
func (c *Client) ReviewCV(ctx context.Context, filename string, r io.Reader) (*types.CVReview, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if r != nil {
		if filename == "" {
			filename = "resume.pdf"
		}
		part, err := form.CreateFormFile("file", filepath.Base(filename))
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, r); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, PathReviewCV, &buf)
	if err != nil {
		return nil, err
	}
	// The multipart writer owns the content type, boundary included.
	req.Header.Set("Content-Type", form.FormDataContentType())

	var review types.CVReview
	if err := c.do(req, PathReviewCV, contracts.CVReview, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
