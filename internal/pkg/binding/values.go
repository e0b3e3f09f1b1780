package binding

import (
	"mime/multipart"
	"strings"
)

// Trim returns a trimmed copy of an optional field, or nil.
func Trim(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}

// Files drops nil or empty uploads from a multipart slice.
func Files(in []*multipart.FileHeader) []*multipart.FileHeader {
	out := make([]*multipart.FileHeader, 0, len(in))
	for _, fh := range in {
		if fh != nil && fh.Filename != "" {
			out = append(out, fh)
		}
	}
	return out
}

// File returns fh when it carries an actual upload.
func File(fh *multipart.FileHeader) *multipart.FileHeader {
	if fh == nil || fh.Filename == "" {
		return nil
	}
	return fh
}
