package course

// Course represents a learning course that owns an ordered list of modules
type Course struct {
	BaseModel
	Title                string `json:"title"`
	Description          string `json:"description"`
	TotalLessons         int    `json:"total_lessons" gorm:"default:0"`
	TotalDurationSeconds int    `json:"total_duration_seconds" gorm:"default:0"`
	IsDeleted            bool   `json:"-" gorm:"default:false;index"`
}
