package models

type SkillModel struct {
	Base
	Ordered
	Name string `json:"name" gorm:"not null"`
	Logo string `json:"logo" gorm:"not null"`
}

func (SkillModel) TableName() string { return "skills" }
