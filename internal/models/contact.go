package models

// ContactModel is a message submitted through the public contact form.
type ContactModel struct {
	Base
	Name        string       `json:"name"        gorm:"not null"`
	Email       string       `json:"email"       gorm:"not null"`
	Subject     string       `json:"subject"     gorm:"not null"`
	Message     string       `json:"message"     gorm:"type:text;not null"`
	Attachments []Attachment `json:"attachments" gorm:"type:text;serializer:json"`
}

func (ContactModel) TableName() string { return "contacts" }

// Attachment references a stored contact upload.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}
