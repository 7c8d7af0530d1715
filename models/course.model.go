package models

import "gorm.io/gorm"

const (
	LevelBeginner = "Beginner"
	LevelMedium   = "Medium"
	LevelAdvance  = "Advance"
)

type Course struct {
	gorm.Model
	Title       string  `json:"courseTitle"`
	SubTitle    string  `json:"subTitle"`
	Description string  `json:"description"` // rich text, stored as-is
	Category    string  `json:"category"`
	Level       string  `json:"courseLevel"`
	Price       float64 `json:"coursePrice"`
	Thumbnail   string  `json:"courseThumbnail"`
	IsPublished bool    `json:"isPublished" gorm:"default:false"`
	CreatorID   uint    `json:"creatorId" gorm:"index;not null"`
	Creator     User    `json:"creator" gorm:"foreignKey:CreatorID"`

	// Ordered lecture references, resolved through CourseLecture rows.
	Lectures []Lecture `json:"lectures" gorm:"-"`
}

// CourseLecture links a lecture into a course's ordered sequence.
// Position starts at 1 and grows by appending.
type CourseLecture struct {
	gorm.Model
	CourseID  uint `json:"course_id" gorm:"index;not null"`
	LectureID uint `json:"lecture_id" gorm:"index;not null"`
	Position  int  `json:"position" gorm:"not null"`
}
