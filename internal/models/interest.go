package models

type InterestModel struct {
	Base
	Ordered
	Title       string      `json:"title"       gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Image       string      `json:"image"       gorm:"not null"`
	Projects    StringArray `json:"projects"    gorm:"type:text"`
}

func (InterestModel) TableName() string { return "interests" }
