package course

// Module represents a section within a course
type Module struct {
	BaseModel
	CourseID      string   `json:"course_id" gorm:"type:varchar(36);index;not null"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	OrderIndex    int      `json:"display_order" gorm:"default:0"` // Module order in course
	IsFreePreview bool     `json:"is_free_preview" gorm:"default:false"`
	IsDeleted     bool     `json:"-" gorm:"default:false;index"`
	Lessons       []Lesson `json:"lessons" gorm:"foreignKey:ModuleID"`
}
