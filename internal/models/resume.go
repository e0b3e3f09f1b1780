package models

import "time"

// ResumeModel is one uploaded resume; the newest record is the current one.
type ResumeModel struct {
	Base
	Filename     string    `json:"filename"     gorm:"not null"`
	OriginalName string    `json:"originalName" gorm:"not null"`
	Path         string    `json:"path"         gorm:"not null"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	UploadDate   time.Time `json:"uploadDate"`
}

func (ResumeModel) TableName() string { return "resumes" }
