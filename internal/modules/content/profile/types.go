package profile

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"github.com/folio-space/core/internal/pkg/apperr"
)

// UpsertProfileDTO is a partial profile. Absent fields keep their value.
type UpsertProfileDTO struct {
	Name      *string `json:"name"      form:"name"`
	Title     *string `json:"title"     form:"title"`
	Subtitle  *string `json:"subtitle"  form:"subtitle"`
	Email     *string `json:"email"     form:"email"`
	Phone     *string `json:"phone"     form:"phone"`
	GitHub    *string `json:"github"    form:"github"`
	LinkedIn  *string `json:"linkedin"  form:"linkedin"`
	Photo     *string `json:"photo"     form:"photo"`
	Location  *string `json:"location"  form:"location"`
	Education *string `json:"education" form:"education"`
	Focus     *string `json:"focus"     form:"focus"`

	About *AboutDTO `json:"about" form:"-"`
	// AboutJSON carries about as a JSON string in form bodies.
	AboutJSON string `json:"-" form:"about"`

	PhotoFile   *multipart.FileHeader `json:"-"           form:"image"`
	DeletePhoto bool                  `json:"deletePhoto" form:"deletePhoto"`
}

type AboutDTO struct {
	Paragraph1 *string `json:"paragraph1"`
	Paragraph2 *string `json:"paragraph2"`
}

// about returns the about section from whichever encoding carried it.
func (d *UpsertProfileDTO) about() (*AboutDTO, error) {
	if d.About != nil {
		return d.About, nil
	}
	raw := strings.TrimSpace(d.AboutJSON)
	if raw == "" {
		return nil, nil
	}
	var a AboutDTO
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, apperr.Validation("about must be a JSON object")
	}
	return &a, nil
}
