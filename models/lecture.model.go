package models

import "gorm.io/gorm"

// Lecture is created standalone and then linked into a course sequence.
type Lecture struct {
	gorm.Model
	Title         string `json:"lectureTitle"`
	VideoURL      string `json:"videoUrl"`
	PublicID      string `json:"publicId"` // media store asset id
	IsPreviewFree bool   `json:"isPreviewFree" gorm:"default:false"`
}
