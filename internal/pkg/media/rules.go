package media

import (
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/folio-space/core/internal/pkg/apperr"
)

// Rule constrains one kind of upload.
type Rule struct {
	Extensions []string // lower-case, with dot
	MIMETypes  []string // "image/*" matches any image subtype
	MaxBytes   int64
	// RequireBoth demands an allowed extension and, when the client sent a
	// specific type, an allowed MIME type. Otherwise either one suffices.
	RequireBoth bool
	TypeMessage string
	// Prefix names stored files "<prefix>-<unixmillis>-<rand><ext>"; empty uses a UUID.
	Prefix string
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// ImageRule accepts content images up to maxBytes.
func ImageRule(maxBytes int64) Rule {
	return Rule{
		Extensions:  imageExtensions,
		MIMETypes:   []string{"image/*"},
		MaxBytes:    maxBytes,
		RequireBoth: true,
		TypeMessage: "Only image files are allowed (jpg, jpeg, png, gif, webp, svg)",
	}
}

// ResumeRule accepts PDF documents only.
func ResumeRule() Rule {
	return Rule{
		Extensions:  []string{".pdf"},
		MIMETypes:   []string{"application/pdf"},
		MaxBytes:    10 << 20,
		RequireBoth: true,
		TypeMessage: "Please upload a PDF file",
		Prefix:      "resume",
	}
}

// ContactRule accepts contact form attachments.
func ContactRule() Rule {
	return Rule{
		Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".jpg", ".jpeg", ".png", ".gif", ".zip", ".rar"},
		MIMETypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
			"image/jpeg",
			"image/png",
			"image/gif",
			"application/zip",
			"application/x-zip-compressed",
			"application/vnd.rar",
			"application/x-rar-compressed",
		},
		MaxBytes:    10 << 20,
		TypeMessage: "Invalid file type. Allowed: PDF, DOC, DOCX, TXT, JPG, PNG, GIF, ZIP, RAR",
		Prefix:      "contact",
	}
}

// Check validates fh against the rule without storing anything.
func (r Rule) Check(fh *multipart.FileHeader) error {
	if fh == nil {
		return apperr.Validation("file is required")
	}
	if r.MaxBytes > 0 && fh.Size > r.MaxBytes {
		return apperr.Validationf("%s exceeds the %dMB limit", fh.Filename, r.MaxBytes>>20)
	}

	extOK := r.allowsExt(filepath.Ext(fh.Filename))
	mimeType := contentType(fh)
	if r.RequireBoth {
		if extOK && (mimeType == "" || len(r.MIMETypes) == 0 || r.allowsMIME(mimeType)) {
			return nil
		}
	} else if extOK || r.allowsMIME(mimeType) {
		return nil
	}
	return apperr.Validation(r.TypeMessage)
}

func (r Rule) allowsExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (r Rule) allowsMIME(mimeType string) bool {
	if mimeType == "" {
		return false
	}
	for _, m := range r.MIMETypes {
		if m == mimeType {
			return true
		}
		if prefix, ok := strings.CutSuffix(m, "/*"); ok && strings.HasPrefix(mimeType, prefix+"/") {
			return true
		}
	}
	return false
}

// contentType returns the declared type, or "" when the client sent none
// or only the generic octet-stream.
func contentType(fh *multipart.FileHeader) string {
	raw := fh.Header.Get("Content-Type")
	if raw == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil || mt == "application/octet-stream" {
		return ""
	}
	return strings.ToLower(mt)
}
