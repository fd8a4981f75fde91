package courseRoutes

import (
	controllers "coursedesk/controllers/course"
	validators "coursedesk/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes sets up course, module and lesson management routes under /admin
func SetupContentRoutes(app *fiber.App) {
	courseGroup := app.Group("/admin/courses")

	// Course
	courseGroup.Get("/", validators.ListCourses(), controllers.AdminListCourses)
	courseGroup.Post("/", validators.CreateCourse(), controllers.AdminCreateCourse)
	courseGroup.Get("/:course_id", validators.CourseParam(), controllers.AdminGetCourseDetails)

	// Module Management (reorder is registered before /:module_id so it is not captured as an id)
	courseGroup.Get("/:course_id/modules", validators.CourseParam(), controllers.AdminListModules)
	courseGroup.Post("/:course_id/modules", validators.CreateModule(), controllers.AdminCreateModule)
	courseGroup.Put("/:course_id/modules/reorder", validators.ReorderModules(), controllers.AdminReorderModules)
	courseGroup.Get("/:course_id/modules/:module_id", validators.ModuleParams(), controllers.AdminGetModule)
	courseGroup.Put("/:course_id/modules/:module_id", validators.UpdateModule(), controllers.AdminUpdateModule)
	courseGroup.Delete("/:course_id/modules/:module_id", validators.ModuleParams(), controllers.AdminDeleteModule)

	// Lesson Management
	lessonGroup := courseGroup.Group("/:course_id/modules/:module_id/lessons")
	lessonGroup.Get("/", validators.ModuleParams(), controllers.AdminListLessons)
	lessonGroup.Post("/", validators.CreateLesson(), controllers.AdminCreateLesson)
	lessonGroup.Put("/reorder", validators.ReorderLessons(), controllers.AdminReorderLessons)
	lessonGroup.Get("/:lesson_id", validators.LessonParams(), controllers.AdminGetLesson)
	lessonGroup.Put("/:lesson_id", validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:lesson_id", validators.LessonParams(), controllers.AdminDeleteLesson)
}
