package course

// Lesson content types
const (
	ContentVideo      = "video"
	ContentQuiz       = "quiz"
	ContentAssignment = "assignment"
	ContentArticle    = "article"
	ContentLive       = "live"
)

// Lesson represents one orderable content item inside a module
type Lesson struct {
	BaseModel
	CourseID             string `json:"course_id" gorm:"type:varchar(36);index;not null"`
	ModuleID             string `json:"module_id" gorm:"type:varchar(36);index;not null"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	ContentType          string `json:"content_type" gorm:"default:'video'"`
	VideoURL             string `json:"video_url"`
	VideoDurationSeconds int    `json:"video_duration_seconds" gorm:"default:0"`
	OrderIndex           int    `json:"display_order" gorm:"default:0"` // Order within module
	IsFreePreview        bool   `json:"is_free_preview" gorm:"default:false"`
	IsDeleted            bool   `json:"-" gorm:"default:false;index"`
}
