package testsupport

import (
	"testing"

	courseModels "coursedesk/models/course"

	"gorm.io/gorm"
)

// SeedCourse inserts a course for tests.
func SeedCourse(t testing.TB, db *gorm.DB, title string) courseModels.Course {
	t.Helper()

	course := courseModels.Course{Title: title}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

// SeedModule inserts a module at the given order.
func SeedModule(t testing.TB, db *gorm.DB, courseID, title string, order int) courseModels.Module {
	t.Helper()

	module := courseModels.Module{CourseID: courseID, Title: title, OrderIndex: order}
	if err := db.Create(&module).Error; err != nil {
		t.Fatalf("seed module: %v", err)
	}
	return module
}

// SeedLesson inserts a lesson at the given order.
func SeedLesson(t testing.TB, db *gorm.DB, module courseModels.Module, title, contentType string, order int) courseModels.Lesson {
	t.Helper()

	lesson := courseModels.Lesson{
		CourseID:    module.CourseID,
		ModuleID:    module.ID,
		Title:       title,
		ContentType: contentType,
		OrderIndex:  order,
	}
	if err := db.Create(&lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return lesson
}
