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

// liveLessons preloads the non-deleted lessons of a module in display order
func liveLessons(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false).Order("order_index asc")
}

// AdminCreateModule creates a new module in a course
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	db := database.Database.Db

	if _, found := findCourse(db, courseID); !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*courseValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module := courseModels.Module{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrderIndex(tx.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false))
		if err != nil {
			return err
		}
		module.OrderIndex = order
		return tx.Create(&module).Error
	})
	if err != nil {
		log.Printf("Failed to create module in course %s: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}
	module.Lessons = []courseModels.Lesson{}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminGetModule gets a single module with its lessons
func AdminGetModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	moduleID := c.Locals("moduleID").(string)

	var module courseModels.Module
	err := database.Database.Db.Preload("Lessons", liveLessons).
		Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).
		First(&module).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	if module.Lessons == nil {
		module.Lessons = []courseModels.Lesson{}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", module)
}

// AdminUpdateModule applies a partial update to an existing module
func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	moduleID := c.Locals("moduleID").(string)
	db := database.Database.Db

	module, found := findModule(db, courseID, moduleID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.ModuleUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.Description != nil {
		module.Description = *reqData.Description
	}
	if reqData.IsFreePreview != nil {
		module.IsFreePreview = *reqData.IsFreePreview
	}

	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}
	module.Lessons = []courseModels.Lesson{}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule soft deletes a module and every lesson it owns
func AdminDeleteModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	moduleID := c.Locals("moduleID").(string)
	db := database.Database.Db

	module, found := findModule(db, courseID, moduleID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		module.IsDeleted = true
		if err := tx.Save(&module).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Lesson{}).Where("module_id = ?", moduleID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return refreshCourseTotals(tx, courseID)
	})
	if err != nil {
		log.Printf("Failed to delete module %s: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module \""+module.Title+"\" has been deleted!", nil)
}

// AdminListModules lists all modules of a course with their lessons nested
func AdminListModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	db := database.Database.Db

	if _, found := findCourse(db, courseID); !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	err := db.Preload("Lessons", liveLessons).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Find(&modules).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	for i := range modules {
		if modules[i].Lessons == nil {
			modules[i].Lessons = []courseModels.Lesson{}
		}
	}
	if modules == nil {
		modules = []courseModels.Module{}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": modules,
	})
}

// AdminReorderModules rewrites the order of every module in a course from a full id list
func AdminReorderModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	db := database.Database.Db

	if _, found := findCourse(db, courseID); !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleOrder").(*courseValidator.ModuleReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var liveIDs []string
	if err := db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Pluck("id", &liveIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}
	if !ordering.IsPermutation(liveIDs, reqData.ModuleIDs) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module list is out of date, reload and try again!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, u := range ordering.Updates(reqData.ModuleIDs) {
			if err := tx.Model(&courseModels.Module{}).Where("id = ? AND course_id = ?", u.ID, courseID).Update("order_index", u.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to reorder modules of course %s: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules reordered successfully!", nil)
}
