package models

type CertificationModel struct {
	Base
	Ordered
	Title  string `json:"title"  gorm:"not null"`
	Issuer string `json:"issuer" gorm:"not null"`
	Year   string `json:"year"   gorm:"not null"`
	Image  string `json:"image"  gorm:"not null"`
}

func (CertificationModel) TableName() string { return "certifications" }
