package content

import (
	"context"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/media"
)

// Field pairs a request field name with its submitted value.
type Field struct {
	Name  string
	Value string
}

// Require fails naming the first blank field.
func Require(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return apperr.Validationf("%s is required", f.Name)
		}
	}
	return nil
}

// Updates collects the columns a partial update touches. Nil inputs were
// not supplied and leave their column alone.
type Updates map[string]any

func (u Updates) Text(column string, v *string) {
	if v != nil {
		u[column] = strings.TrimSpace(*v)
	}
}

// RequiredText is Text for columns that may not be cleared.
func (u Updates) RequiredText(column, field string, v *string) error {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return apperr.Validationf("%s cannot be empty", field)
	}
	u[column] = s
	return nil
}

func (u Updates) Int(column string, v *int) {
	if v != nil {
		u[column] = *v
	}
}

func (u Updates) List(column string, v models.StringArray) {
	if v != nil {
		u[column] = models.CleanList(v)
	}
}

// Commit runs persist after a possible upload. A failed persist drops the
// fresh upload; a successful one releases the file it replaced. The old file
// never goes before the record stops pointing at it.
func Commit(ctx context.Context, h *media.Handler, replaced string, upload *media.Stored, persist func() error) error {
	if err := persist(); err != nil {
		if upload != nil {
			h.Discard(ctx, upload.Path)
		}
		return err
	}
	if replaced != "" {
		h.Discard(ctx, replaced)
	}
	return nil
}
