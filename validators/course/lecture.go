package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateLectureRequest is the body of POST /courses/:courseId/lecture.
type CreateLectureRequest struct {
	LectureTitle string `json:"lectureTitle" validate:"required"`
}

func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLectureRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.LectureTitle = strings.TrimSpace(reqData.LectureTitle)

		if err := validate.Struct(reqData); err != nil {
			errors := map[string]string{"lectureTitle": "Lecture title is required!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// VideoInfo carries the media-store reference for a lecture video.
type VideoInfo struct {
	VideoURL *string `json:"videoUrl"`
	PublicID *string `json:"publicId"`
}

// UpdateLectureRequest is a partial update; nil fields are left untouched.
type UpdateLectureRequest struct {
	LectureTitle  *string    `json:"lectureTitle"`
	VideoInfo     *VideoInfo `json:"videoInfo"`
	IsPreviewFree *bool      `json:"isPreviewFree"`
}

func UpdateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLectureRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.LectureTitle != nil && strings.TrimSpace(*reqData.LectureTitle) == "" {
			errors := map[string]string{"lectureTitle": "Lecture title cannot be empty!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLectureUpdate", reqData)
		return c.Next()
	}
}

// LectureID validates both :courseId and :lectureId route params.
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		lectureIDStr := strings.TrimSpace(c.Params("lectureId"))

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		lectureID, err := strconv.Atoi(lectureIDStr)
		if err != nil || lectureID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		c.Locals("lectureID", uint(lectureID))
		return c.Next()
	}
}
