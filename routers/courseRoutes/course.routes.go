package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the course and lecture endpoints.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Only creators may open a course; everything else it needs is filled in
	// later through updates.
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleModerator), validators.CreateCourse(), controllers.CreateCourse)

	// Static paths before the :courseId wildcard.
	courseGroup.Get("/published", controllers.GetPublishedCourses)
	courseGroup.Get("/creator", middleware.JWTMiddleware, controllers.GetCreatorCourses)

	courseGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourse)
	courseGroup.Put("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.UpdateCourse)
	courseGroup.Patch("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.TogglePublish)

	// Lecture management
	courseGroup.Post("/:courseId/lecture", middleware.JWTMiddleware, validators.CourseID(), validators.CreateLecture(), controllers.CreateLecture)
	courseGroup.Get("/:courseId/lecture", validators.CourseID(), controllers.GetCourseLectures)
	courseGroup.Get("/:courseId/lecture/:lectureId", middleware.JWTMiddleware, validators.LectureID(), controllers.GetLecture)
	courseGroup.Put("/:courseId/lecture/:lectureId", middleware.JWTMiddleware, validators.LectureID(), validators.UpdateLecture(), controllers.UpdateLecture)
	courseGroup.Delete("/:courseId/lecture/:lectureId", middleware.JWTMiddleware, validators.LectureID(), controllers.DeleteLecture)
}
