package resume

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF builds a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	content := "BT /F1 12 Tf 72 720 Td (Jane Doe Resume) Tj ET"
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestCheck_ValidPDF(t *testing.T) {
	data := minimalPDF()
	path := writeFile(t, "resume.PDF", data)

	info, err := Check(path)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(len(data)), info.Size)
	assert.Equal(t, 1, info.Pages)
}

func TestCheck_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    []byte
		wantErr error
	}{
		{"wrong extension", "resume.docx", minimalPDF(), ErrNotPDF},
		{"missing header", "resume.pdf", []byte("hello world"), ErrNotPDF},
		{"too large", "big.pdf", append([]byte("%PDF-1.4\n"), make([]byte, MaxSize)...), ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Check(writeFile(t, tt.file, tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheck_Unparseable(t *testing.T) {
	_, err := Check(writeFile(t, "broken.pdf", []byte("%PDF-1.4\nthis is not a pdf body")))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestCheck_MissingFile(t *testing.T) {
	_, err := Check(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.ErrorContains(t, err, "failed to stat resume")
}
