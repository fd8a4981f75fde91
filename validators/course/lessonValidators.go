package courseValidator

import (
	"coursedesk/middleware"
	courseModels "coursedesk/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LessonRequest is the body accepted when creating a lesson
type LessonRequest struct {
	Title                string `json:"title" validate:"required,max=200"`
	Description          string `json:"description" validate:"max=5000"`
	ContentType          string `json:"content_type" validate:"omitempty,oneof=video quiz assignment article live"`
	VideoURL             string `json:"video_url" validate:"omitempty,url"`
	VideoDurationSeconds int    `json:"video_duration_seconds" validate:"gte=0"`
	IsFreePreview        bool   `json:"is_free_preview"`
}

// LessonUpdateRequest carries a partial lesson update; nil fields are left untouched
type LessonUpdateRequest struct {
	Title                *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description          *string `json:"description" validate:"omitempty,max=5000"`
	ContentType          *string `json:"content_type" validate:"omitempty,oneof=video quiz assignment article live"`
	VideoURL             *string `json:"video_url" validate:"omitempty,url"`
	VideoDurationSeconds *int    `json:"video_duration_seconds" validate:"omitempty,gte=0"`
	IsFreePreview        *bool   `json:"is_free_preview"`
}

// LessonReorderRequest carries the complete new lesson order of one module
type LessonReorderRequest struct {
	LessonIDs []string `json:"lessonIds" validate:"required,min=1,unique,dive,uuid"`
}

// CreateLesson validates lesson creation request
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}
		moduleID, ok, err := pathID(c, "module_id", "Module ID")
		if !ok {
			return err
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.ContentType = strings.ToLower(strings.TrimSpace(reqData.ContentType))
		reqData.VideoURL = strings.TrimSpace(reqData.VideoURL)

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}
		if reqData.ContentType == "" {
			reqData.ContentType = courseModels.ContentVideo
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates lesson update request
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}
		moduleID, ok, err := pathID(c, "module_id", "Module ID")
		if !ok {
			return err
		}
		lessonID, ok, err := pathID(c, "lesson_id", "Lesson ID")
		if !ok {
			return err
		}

		reqData := new(LessonUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		trimPtr(reqData.Title)
		trimPtr(reqData.Description)
		trimPtr(reqData.VideoURL)
		if reqData.ContentType != nil {
			ct := strings.ToLower(strings.TrimSpace(*reqData.ContentType))
			reqData.ContentType = &ct
		}

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// LessonParams validates the course, module and lesson ids for get/delete
func LessonParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}
		moduleID, ok, err := pathID(c, "module_id", "Module ID")
		if !ok {
			return err
		}
		lessonID, ok, err := pathID(c, "lesson_id", "Lesson ID")
		if !ok {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// ReorderLessons validates a lesson reorder request
func ReorderLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}
		moduleID, ok, err := pathID(c, "module_id", "Module ID")
		if !ok {
			return err
		}

		reqData := new(LessonReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedLessonOrder", reqData)
		return c.Next()
	}
}
