package models

// ProfileID is the key a profile created through the API is stored under,
// so concurrent first writes land on one row.
const ProfileID = "profile"

// ProfileModel is the singleton site owner profile.
type ProfileModel struct {
	Base
	Name      string `json:"name"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	GitHub    string `json:"github"   gorm:"column:github"`
	LinkedIn  string `json:"linkedin" gorm:"column:linkedin"`
	Photo     string `json:"photo"`
	Location  string `json:"location"`
	Education string `json:"education"`
	Focus     string `json:"focus"`
	About     About  `json:"about" gorm:"embedded;embeddedPrefix:about_"`
}

func (ProfileModel) TableName() string { return "profiles" }

// About holds the two about-section paragraphs.
type About struct {
	Paragraph1 string `json:"paragraph1" gorm:"type:text"`
	Paragraph2 string `json:"paragraph2" gorm:"type:text"`
}
