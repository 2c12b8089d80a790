// Package resume checks a resume file before it is uploaded for review.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxSize is the largest resume accepted for upload.
const MaxSize = 10 << 20

var pdfMagic = []byte("%PDF-")

// Sentinel errors.
var (
	ErrNotPDF   = errors.New("resume must be a PDF file")
	ErrTooLarge = fmt.Errorf("resume exceeds %d MiB", MaxSize>>20)
	ErrEmpty    = errors.New("resume has no pages")
)

// Info describes a resume that passed the checks.
type Info struct {
	Path       string
	Size       int64
	Pages      int
	TextLength int
}

// Check validates the file at path: .pdf extension, PDF header, size limit,
// parseable with at least one page.
func Check(path string) (*Info, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%s: %w", path, ErrNotPDF)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat resume: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if stat.Size() > MaxSize {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fmt.Errorf("%s: missing PDF header: %w", path, ErrNotPDF)
	}

	pages, text, err := Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if pages == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return &Info{Path: path, Size: stat.Size(), Pages: pages, TextLength: len(text)}, nil
}

// Inspect counts pages and extracts plain text from PDF bytes. The parser panics on some
// malformed input, so panics are turned into errors.
func Inspect(data []byte) (pages int, text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, "", err
	}

	var sb strings.Builder
	pages = reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, _ := page.GetPlainText(nil)
		sb.WriteString(pageText)
	}
	return pages, sb.String(), nil
}
