package models

type EducationModel struct {
	Base
	Ordered
	Degree      string `json:"degree"      gorm:"not null"`
	Institution string `json:"institution" gorm:"not null"`
	Period      string `json:"period"      gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Logo        string `json:"logo"`
}

func (EducationModel) TableName() string { return "educations" }
