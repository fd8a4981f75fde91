package contentclient

import (
	"time"
)

// ContentType tags what a lesson delivers.
type ContentType string

const (
	ContentVideo      ContentType = "video"
	ContentQuiz       ContentType = "quiz"
	ContentAssignment ContentType = "assignment"
	ContentArticle    ContentType = "article"
	ContentLive       ContentType = "live"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentVideo, ContentQuiz, ContentAssignment, ContentArticle, ContentLive:
		return true
	}
	return false
}

// Course is the course row the sections hang off.
type Course struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	TotalLessons         int       `json:"total_lessons"`
	TotalDurationSeconds int       `json:"total_duration_seconds"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Section is an ordered container of lessons within a course. The server calls
// it a module.
type Section struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Order         int       `json:"display_order"`
	IsFreePreview bool      `json:"is_free_preview"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Lessons       []Lesson  `json:"lessons"`

	// Expanded is editor state only and never sent to the server.
	Expanded bool `json:"-"`
}

// Lesson is one orderable content item owned by a section.
type Lesson struct {
	ID                   string      `json:"id"`
	SectionID            string      `json:"module_id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	ContentType          ContentType `json:"content_type"`
	VideoURL             string      `json:"video_url"`
	VideoDurationSeconds int         `json:"video_duration_seconds"`
	Order                int         `json:"display_order"`
	IsFreePreview        bool        `json:"is_free_preview"`
	CreatedAt            time.Time   `json:"created_at"`
}

// SectionInput is the payload for creating a section.
type SectionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SectionPatch is a partial section update; nil fields are not sent.
type SectionPatch struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	IsFreePreview *bool   `json:"is_free_preview,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p SectionPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.IsFreePreview == nil
}

// LessonInput is the payload for creating a lesson.
type LessonInput struct {
	Title                string      `json:"title"`
	Description          string      `json:"description,omitempty"`
	ContentType          ContentType `json:"content_type,omitempty"`
	VideoURL             string      `json:"video_url,omitempty"`
	VideoDurationSeconds int         `json:"video_duration_seconds,omitempty"`
	IsFreePreview        bool        `json:"is_free_preview,omitempty"`
}

// LessonPatch is a partial lesson update; nil fields are not sent.
type LessonPatch struct {
	Title                *string      `json:"title,omitempty"`
	Description          *string      `json:"description,omitempty"`
	ContentType          *ContentType `json:"content_type,omitempty"`
	VideoURL             *string      `json:"video_url,omitempty"`
	VideoDurationSeconds *int         `json:"video_duration_seconds,omitempty"`
	IsFreePreview        *bool        `json:"is_free_preview,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p LessonPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ContentType == nil &&
		p.VideoURL == nil && p.VideoDurationSeconds == nil && p.IsFreePreview == nil
}
