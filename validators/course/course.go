package courseValidator

import (
	"coursedesk/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseRequest is the body accepted when creating a course
type CourseRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// CreateCourse validates course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseParam validates the course id on routes scoped to one course
func CourseParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok, err := pathID(c, "course_id", "Course ID")
		if !ok {
			return err
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseListRequest carries the query of the course list; zero values fall back to defaults
type CourseListRequest struct {
	Page   int    `query:"page" json:"page" validate:"gte=1"`
	Limit  int    `query:"limit" json:"limit" validate:"gte=1,max=100"`
	Search string `query:"search" json:"search" validate:"max=200"`
}

// ListCourses validates the pagination and search query of the course list
func ListCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if c.Query("page") == "" {
			reqData.Page = 1
		}
		if c.Query("limit") == "" {
			reqData.Limit = 10
		}
		reqData.Search = strings.TrimSpace(reqData.Search)

		if ok, err := validateBody(c, reqData); !ok {
			return err
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}
