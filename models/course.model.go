package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lecture is one unit inside a chapter. The URL is blanked for
// non-enrolled viewers unless the lecture is marked free preview.
type Lecture struct {
	LectureID     string  `json:"lectureId"`
	LectureTitle  string  `json:"lectureTitle"`
	LectureURL    string  `json:"lectureUrl"`
	Duration      float64 `json:"lectureDuration"`
	IsPreviewFree bool    `json:"isPreviewFree"`
	LectureOrder  int     `json:"lectureOrder"`
}

// Chapter groups lectures inside a course content tree.
type Chapter struct {
	ChapterID      string    `json:"chapterId"`
	ChapterTitle   string    `json:"chapterTitle"`
	ChapterOrder   int       `json:"chapterOrder"`
	ChapterContent []Lecture `json:"chapterContent"`
}

type Course struct {
	ID                string         `gorm:"primaryKey" json:"_id"`
	CourseTitle       string         `gorm:"not null" json:"courseTitle"`
	CourseDescription string         `json:"courseDescription"`
	CourseThumbnail   string         `json:"courseThumbnail"`
	Price             float64        `gorm:"not null" json:"price"`
	Discount          float64        `gorm:"default:0" json:"discount"`
	IsPublished       bool           `gorm:"default:false;index" json:"isPublished"`
	EducatorID        string         `gorm:"not null;index" json:"educator"`
	CourseContent     datatypes.JSON `json:"courseContent,omitempty"`

	CourseRatings    []CourseRating `gorm:"foreignKey:CourseID" json:"courseRatings,omitempty"`
	EnrolledStudents []User         `gorm:"many2many:course_enrollments;" json:"enrolledStudents,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CourseRating holds one student's 1-5 rating. The composite unique index
// gives the at-most-one-rating-per-user invariant upsert semantics.
type CourseRating struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	CourseID string `gorm:"not null;uniqueIndex:idx_course_user_rating" json:"-"`
	UserID   string `gorm:"not null;uniqueIndex:idx_course_user_rating" json:"userId"`
	Rating   int    `gorm:"not null" json:"rating"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
