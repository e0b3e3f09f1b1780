package models

// AdminModel is the administrator credential. Password holds a bcrypt hash.
type AdminModel struct {
	Base
	Username string `json:"username" gorm:"not null"`
	Email    string `json:"email"    gorm:"type:varchar(191);uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
}

func (AdminModel) TableName() string { return "admins" }

// AllModels lists every table the store migrates.
func AllModels() []any {
	return []any{
		&AdminModel{},
		&ProfileModel{},
		&SkillModel{},
		&ProjectModel{},
		&CertificationModel{},
		&EducationModel{},
		&InterestModel{},
		&ResumeModel{},
		&ContactModel{},
	}
}
