package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateCourseRequest is the body of POST /courses.
type CreateCourseRequest struct {
	CourseTitle string `json:"courseTitle" validate:"required,min=3"`
	Category    string `json:"category" validate:"required"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.CourseTitle = strings.TrimSpace(reqData.CourseTitle)
		reqData.Category = strings.TrimSpace(reqData.Category)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CourseTitle":
					if fieldErr.Tag() == "min" {
						errors["courseTitle"] = "Course title must be at least 3 characters long!"
					} else {
						errors["courseTitle"] = "Course title is required!"
					}
				case "Category":
					errors["category"] = "Category is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseID validates the :courseId route param. A malformed id is a
// validation failure, never a lookup miss.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}
