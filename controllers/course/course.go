package controllers

import (
	"coursedesk/database"
	"coursedesk/middleware"
	courseModels "coursedesk/models/course"
	courseValidator "coursedesk/validators/course"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminCreateCourse creates an empty course that modules can be attached to
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminListCourses lists live courses, newest first, with optional title search
func AdminListCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*courseValidator.CourseListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page, limit := reqData.Page, reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	if reqData.Search != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(reqData.Search)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	courses := []courseModels.Course{}
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetCourseDetails gets a single course with its lesson totals
func AdminGetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	course, found := findCourse(database.Database.Db, courseID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var moduleCount int64
	if err := database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&moduleCount).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":       course,
		"module_count": moduleCount,
	})
}

func findCourse(db *gorm.DB, courseID string) (courseModels.Course, bool) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return course, false
	}
	return course, true
}

func findModule(db *gorm.DB, courseID, moduleID string) (courseModels.Module, bool) {
	var module courseModels.Module
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return module, false
	}
	return module, true
}

// refreshCourseTotals recomputes the lesson count and total video duration of a course
func refreshCourseTotals(db *gorm.DB, courseID string) error {
	var totals struct {
		Lessons  int
		Duration int
	}
	err := db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COUNT(*) AS lessons, COALESCE(SUM(video_duration_seconds), 0) AS duration").
		Scan(&totals).Error
	if err != nil {
		return err
	}

	return db.Model(&courseModels.Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"total_lessons":          totals.Lessons,
		"total_duration_seconds": totals.Duration,
	}).Error
}

// nextOrderIndex returns max(order_index)+1 over the live rows matched by query, or 0 when there are none
func nextOrderIndex(query *gorm.DB) (int, error) {
	var maxOrder int
	if err := query.Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
