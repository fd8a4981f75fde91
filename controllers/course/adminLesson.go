package controllers

import (
	"coursedesk/database"
	"coursedesk/middleware"
	courseModels "coursedesk/models/course"
	"coursedesk/ordering"
	courseValidator "coursedesk/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminCreateLesson creates a new lesson at the end of a module
func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	moduleID := c.Locals("moduleID").(string)
	db := database.Database.Db

	if _, found := findModule(db, courseID, moduleID); !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := courseModels.Lesson{
		CourseID:             courseID,
		ModuleID:             moduleID,
		Title:                reqData.Title,
		Description:          reqData.Description,
		ContentType:          reqData.ContentType,
		VideoURL:             reqData.VideoURL,
		VideoDurationSeconds: reqData.VideoDurationSeconds,
		IsFreePreview:        reqData.IsFreePreview,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrderIndex(tx.Model(&courseModels.Lesson{}).Where("module_id = ? AND is_deleted = ?", moduleID, false))
		if err != nil {
			return err
		}
		lesson.OrderIndex = order
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}
		return refreshCourseTotals(tx, courseID)
	})
	if err != nil {
		log.Printf("Failed to create lesson in module %s: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminListLessons lists the lessons of one module in display order
func AdminListLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	moduleID := c.Locals("moduleID").(string)
	db := database.Database.Db

	if _, found := findModule(db, courseID, moduleID); !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lessons := []courseModels.Lesson{}
	if err := liveLessons(db.Where("module_id = ? AND course_id = ?", moduleID, courseID)).Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
	})
}

// AdminGetLesson gets a single lesson
func AdminGetLesson(c *fiber.Ctx) error {
	lesson, found := findLesson(database.Database.Db, c)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}

// AdminUpdateLesson applies a partial update to an existing lesson
func AdminUpdateLesson(c *fiber.Ctx) error {
	db := database.Database.Db

	lesson, found := findLesson(db, c)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseValidator.LessonUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.Description != nil {
		lesson.Description = *reqData.Description
	}
	if reqData.ContentType != nil && *reqData.ContentType != "" {
		lesson.ContentType = *reqData.ContentType
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.VideoDurationSeconds != nil {
		lesson.VideoDurationSeconds = *reqData.VideoDurationSeconds
	}
	if reqData.IsFreePreview != nil {
		lesson.IsFreePreview = *reqData.IsFreePreview
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&lesson).Error; err != nil {
			return err
		}
		if reqData.VideoDurationSeconds == nil {
			return nil
		}
		return refreshCourseTotals(tx, lesson.CourseID)
	})
	if err != nil {
		log.Printf("Failed to update lesson %s: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson
func AdminDeleteLesson(c *fiber.Ctx) error {
	db := database.Database.Db

	lesson, found := findLesson(db, c)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		lesson.IsDeleted = true
		if err := tx.Save(&lesson).Error; err != nil {
			return err
		}
		return refreshCourseTotals(tx, lesson.CourseID)
	})
	if err != nil {
		log.Printf("Failed to delete lesson %s: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson \""+lesson.Title+"\" has been deleted!", nil)
}

// AdminReorderLessons rewrites the order of every lesson in a module from a full id list
func AdminReorderLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	moduleID := c.Locals("moduleID").(string)
	db := database.Database.Db

	if _, found := findModule(db, courseID, moduleID); !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonOrder").(*courseValidator.LessonReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var liveIDs []string
	if err := db.Model(&courseModels.Lesson{}).Where("module_id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).Pluck("id", &liveIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}
	if !ordering.IsPermutation(liveIDs, reqData.LessonIDs) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson list is out of date, reload and try again!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, u := range ordering.Updates(reqData.LessonIDs) {
			if err := tx.Model(&courseModels.Lesson{}).Where("id = ? AND module_id = ?", u.ID, moduleID).Update("order_index", u.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to reorder lessons of module %s: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", nil)
}

func findLesson(db *gorm.DB, c *fiber.Ctx) (courseModels.Lesson, bool) {
	courseID := c.Locals("courseID").(string)
	moduleID := c.Locals("moduleID").(string)
	lessonID := c.Locals("lessonID").(string)

	var lesson courseModels.Lesson
	err := db.Where("id = ? AND module_id = ? AND course_id = ? AND is_deleted = ?", lessonID, moduleID, courseID, false).First(&lesson).Error
	if err != nil {
		return lesson, false
	}
	return lesson, true
}
