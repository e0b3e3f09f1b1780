// Package legacy imports content from the document-store deployment the
// site previously ran on.
package legacy

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Stats counts what happened to one collection.
type Stats struct {
	Collection string `json:"collection"`
	Read       int    `json:"read"`
	Imported   int    `json:"imported"`
	Skipped    int    `json:"skipped"`
}

// Report is the per-collection outcome of an import, in import order.
type Report []Stats

// Imported sums imported records across collections.
func (r Report) Imported() int {
	n := 0
	for _, s := range r {
		n += s.Imported
	}
	return n
}

type mapper func(d doc) (record any, key string)

type collection struct {
	name  string
	model any
	build mapper
}

var collections = []collection{
	{"admins", &models.AdminModel{}, mapAdmin},
	{"profiles", &models.ProfileModel{}, mapProfile},
	{"skills", &models.SkillModel{}, mapSkill},
	{"projects", &models.ProjectModel{}, mapProject},
	{"certifications", &models.CertificationModel{}, mapCertification},
	{"educations", &models.EducationModel{}, mapEducation},
	{"interests", &models.InterestModel{}, mapInterest},
	{"resumes", &models.ResumeModel{}, mapResume},
	{"contacts", &models.ContactModel{}, mapContact},
}

// Importer copies legacy documents into the content store.
type Importer struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewImporter(db *gorm.DB, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{db: db, log: log}
}

// Import reads every known collection from src. Records whose id already
// exists are skipped, so running it twice is harmless.
func (im *Importer) Import(ctx context.Context, src Source) (Report, error) {
	report := make(Report, 0, len(collections))
	for _, c := range collections {
		docs, err := src.Documents(ctx, c.name)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", c.name, err)
		}
		stats := Stats{Collection: c.name, Read: len(docs)}
		for _, raw := range docs {
			d := doc(raw)
			if d.id() == "" {
				stats.Skipped++
				continue
			}
			ok, err := im.insert(ctx, c, d)
			if err != nil {
				return report, fmt.Errorf("import %s %s: %w", c.name, d.id(), err)
			}
			if ok {
				stats.Imported++
			} else {
				stats.Skipped++
			}
		}
		im.log.Info("legacy collection imported",
			zap.String("collection", c.name),
			zap.Int("read", stats.Read),
			zap.Int("imported", stats.Imported),
			zap.Int("skipped", stats.Skipped),
		)
		report = append(report, stats)
	}
	return report, nil
}

func (im *Importer) insert(ctx context.Context, c collection, d doc) (bool, error) {
	db := im.db.WithContext(ctx)
	record, key := c.build(d)

	var n int64
	if err := db.Unscoped().Model(c.model).Where("id = ?", d.id()).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	switch c.name {
	case "profiles":
		// Singleton: the first profile wins.
		if err := db.Model(c.model).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	case "admins":
		if key == "" {
			return false, nil
		}
		if err := db.Unscoped().Model(c.model).Where("email = ?", key).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}

	if err := db.Create(record).Error; err != nil {
		if database.IsDuplicateError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func mapAdmin(d doc) (any, string) {
	email := strings.ToLower(d.str("email"))
	username := d.str("username")
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	return &models.AdminModel{Base: d.base(), Username: username, Email: email, Password: d.str("password")}, email
}

func mapProfile(d doc) (any, string) {
	about := d.sub("about")
	return &models.ProfileModel{
		Base:      d.base(),
		Name:      d.str("name"),
		Title:     d.str("title"),
		Subtitle:  d.str("subtitle"),
		Email:     d.str("email"),
		Phone:     d.str("phone"),
		GitHub:    d.str("github"),
		LinkedIn:  d.str("linkedin"),
		Photo:     mediaPath(d.str("photo")),
		Location:  d.str("location"),
		Education: d.str("education"),
		Focus:     d.str("focus"),
		About:     models.About{Paragraph1: about.str("paragraph1"), Paragraph2: about.str("paragraph2")},
	}, ""
}

func mapSkill(d doc) (any, string) {
	return &models.SkillModel{
		Base:    d.base(),
		Ordered: models.Ordered{Order: d.int("order")},
		Name:    d.str("name"),
		Logo:    mediaPath(d.str("logo")),
	}, ""
}

func mapProject(d doc) (any, string) {
	return &models.ProjectModel{
		Base:        d.base(),
		Ordered:     models.Ordered{Order: d.int("order")},
		Title:       d.str("title"),
		Description: d.str("description"),
		Tags:        d.strings("tags"),
		CodeLink:    d.str("codeLink"),
		DemoLink:    d.str("demoLink"),
	}, ""
}

func mapCertification(d doc) (any, string) {
	return &models.CertificationModel{
		Base:    d.base(),
		Ordered: models.Ordered{Order: d.int("order")},
		Title:   d.str("title"),
		Issuer:  d.str("issuer"),
		Year:    d.str("year"),
		Image:   mediaPath(d.str("image")),
	}, ""
}

func mapEducation(d doc) (any, string) {
	return &models.EducationModel{
		Base:        d.base(),
		Ordered:     models.Ordered{Order: d.int("order")},
		Degree:      d.str("degree"),
		Institution: d.str("institution"),
		Period:      d.str("period"),
		Description: d.str("description"),
		Logo:        mediaPath(d.str("logo")),
	}, ""
}

func mapInterest(d doc) (any, string) {
	return &models.InterestModel{
		Base:        d.base(),
		Ordered:     models.Ordered{Order: d.int("order")},
		Title:       d.str("title"),
		Description: d.str("description"),
		Image:       mediaPath(d.str("image")),
		Projects:    d.strings("projects"),
	}, ""
}

func mapResume(d doc) (any, string) {
	r := &models.ResumeModel{
		Base:         d.base(),
		Filename:     d.str("filename"),
		OriginalName: d.str("originalName"),
		Path:         mediaPath(d.str("path")),
		Size:         d.int64("size"),
		MimeType:     d.str("mimeType"),
		UploadDate:   d.time("uploadDate"),
	}
	if r.UploadDate.IsZero() {
		r.UploadDate = r.CreatedAt
	}
	return r, ""
}

func mapContact(d doc) (any, string) {
	c := &models.ContactModel{
		Base:        d.base(),
		Name:        d.str("name"),
		Email:       d.str("email"),
		Subject:     d.str("subject"),
		Message:     d.str("message"),
		Attachments: []models.Attachment{},
	}
	for _, a := range d.list("attachments") {
		c.Attachments = append(c.Attachments, models.Attachment{
			Filename: a.str("filename"),
			Path:     mediaPath(a.str("path")),
		})
	}
	return c, ""
}
