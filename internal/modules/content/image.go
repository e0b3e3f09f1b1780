package content

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/folio-space/core/internal/pkg/binding"
	"github.com/folio-space/core/internal/pkg/media"
)

// ImageField is a record field set either by uploading a file or by
// sending a URL. An upload wins when both arrive.
type ImageField struct {
	Media *media.Handler
	Rule  media.Rule
	Dir   string
}

// Check validates an upload without storing it.
func (f ImageField) Check(fh *multipart.FileHeader) error {
	if fh = binding.File(fh); fh == nil {
		return nil
	}
	return f.Media.Check(fh, f.Rule)
}

// Resolve stores fh when present and returns the field's new value.
// A nil value means the field was not supplied.
func (f ImageField) Resolve(ctx context.Context, fh *multipart.FileHeader, url *string) (*string, *media.Stored, error) {
	if fh = binding.File(fh); fh != nil {
		stored, err := f.Media.Accept(ctx, fh, f.Rule, f.Dir)
		if err != nil {
			return nil, nil, err
		}
		return &stored.Path, stored, nil
	}
	if url == nil {
		return nil, nil, nil
	}
	v := strings.TrimSpace(*url)
	return &v, nil, nil
}

// Replaced returns old when next moves the field away from it.
func Replaced(old string, next *string) string {
	if next == nil || *next == old {
		return ""
	}
	return old
}
