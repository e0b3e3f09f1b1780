package media

import (
	"bytes"
	"testing"

	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestImageRule(t *testing.T) {
	rule := ImageRule(1 << 10)
	tests := []struct {
		name, file, ctype string
		size              int
		ok                bool
	}{
		{"png", "a.png", "image/png", 10, true},
		{"upper ext no type", "A.JPG", "", 10, true},
		{"octet stream svg", "logo.svg", "application/octet-stream", 10, true},
		{"pdf ext", "a.pdf", "application/pdf", 10, false},
		{"image ext lying type", "a.png", "text/html", 10, false},
		{"too large", "big.png", "image/png", 2 << 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := fileHeader(t, "image", tt.file, tt.ctype, bytes.Repeat([]byte("x"), tt.size))
			err := rule.Check(fh)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperr.ErrValidation)
			}
		})
	}
}

func TestResumeRuleRejectsNonPDF(t *testing.T) {
	rule := ResumeRule()
	assert.NoError(t, rule.Check(fileHeader(t, "resume", "cv.pdf", "application/pdf", []byte("%PDF"))))

	err := rule.Check(fileHeader(t, "resume", "cv.docx", "application/msword", []byte("doc")))
	assert.Equal(t, "Please upload a PDF file", apperr.Message(err))
	assert.Error(t, rule.Check(fileHeader(t, "resume", "cv.pdf", "text/plain", []byte("x"))))
}

func TestContactRuleAcceptsEitherSignal(t *testing.T) {
	rule := ContactRule()
	assert.NoError(t, rule.Check(fileHeader(t, "attachments", "notes.txt", "", []byte("hi"))))
	assert.NoError(t, rule.Check(fileHeader(t, "attachments", "archive", "application/zip", []byte("pk"))))
	assert.Error(t, rule.Check(fileHeader(t, "attachments", "run.exe", "application/x-msdownload", []byte("mz"))))
	assert.Error(t, rule.Check(nil))
}
