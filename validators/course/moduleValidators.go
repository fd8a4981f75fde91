package courseValidator

import (
	"coursedesk/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ModuleRequest is the body accepted when creating a module
type ModuleRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// ModuleUpdateRequest carries a partial module update; nil fields are left untouched
type ModuleUpdateRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	IsFreePreview *bool   `json:"is_free_preview"`
}

// ModuleReorderRequest carries the complete new module order of a course
type ModuleReorderRequest struct {
	ModuleIDs []string `json:"moduleIds" validate:"required,min=1,unique,dive,uuid"`
}

// CreateModule validates module creation request
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}
		moduleID, ok, err := pathID(c, "module_id", "Module ID")
		if !ok {
			return err
		}

		reqData := new(ModuleUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		trimPtr(reqData.Title)
		trimPtr(reqData.Description)

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// ModuleParams validates the course and module ids for get/delete and nested lesson listing
func ModuleParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}
		moduleID, ok, err := pathID(c, "module_id", "Module ID")
		if !ok {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// ReorderModules validates a module reorder request
func ReorderModules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}

		reqData := new(ModuleReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedModuleOrder", reqData)
		return c.Next()
	}
}
