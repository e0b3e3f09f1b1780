package models

// ProjectModel stores portfolio projects.
type ProjectModel struct {
	Base
	Ordered
	Title       string      `json:"title"       gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Tags        StringArray `json:"tags"        gorm:"type:text"`
	CodeLink    string      `json:"codeLink"`
	DemoLink    string      `json:"demoLink"`
}

func (ProjectModel) TableName() string { return "projects" }
