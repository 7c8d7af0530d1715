package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadCourseLectures resolves a course's lecture sequence in order.
func loadCourseLectures(courseID uint) ([]models.Lecture, error) {
	var lectures []models.Lecture
	err := database.Database.Db.
		Joins("JOIN course_lectures ON course_lectures.lecture_id = lectures.id").
		Where("course_lectures.course_id = ? AND course_lectures.deleted_at IS NULL", courseID).
		Order("course_lectures.position asc").
		Find(&lectures).Error
	return lectures, err
}

// nextLecturePosition returns the append position for a course's sequence.
func nextLecturePosition(tx *gorm.DB, courseID uint) int {
	var maxPos int
	tx.Model(&models.CourseLecture{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos)
	return maxPos + 1
}

// CreateLecture creates a lecture and appends it to the course sequence. The
// course is checked first and both writes share a transaction, so a failed
// link never leaves a dangling lecture behind.
func CreateLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedLecture").(*courseValidator.CreateLectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if ok, err := requireCourseOwnership(c, &course); !ok {
		return err
	}

	lecture := models.Lecture{Title: reqData.LectureTitle}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lecture).Error; err != nil {
			return err
		}
		link := models.CourseLecture{
			CourseID:  course.ID,
			LectureID: lecture.ID,
			Position:  nextLecturePosition(tx, course.ID),
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", fiber.Map{
		"lecture": lecture,
	})
}

// GetCourseLectures lists a course's lectures in sequence order. Public: the
// course detail page shows titles and free previews before enrollment.
func GetCourseLectures(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	lectures, err := loadCourseLectures(course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched successfully!", fiber.Map{
		"lectures": lectures,
	})
}

// GetLecture returns a single lecture.
func GetLecture(c *fiber.Ctx) error {
	lectureID := c.Locals("lectureID").(uint)

	var lecture models.Lecture
	if err := database.Database.Db.First(&lecture, lectureID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture fetched successfully!", fiber.Map{
		"lecture": lecture,
	})
}

// UpdateLecture applies the provided fields and makes sure the lecture is
// linked into the course, re-inserting the link if it went missing. Running
// the same call again is safe: the link is never duplicated.
func UpdateLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	lectureID := c.Locals("lectureID").(uint)

	reqData, ok := c.Locals("validatedLectureUpdate").(*courseValidator.UpdateLectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lecture models.Lecture
	if err := database.Database.Db.First(&lecture, lectureID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if ok, err := requireCourseOwnership(c, &course); !ok {
		return err
	}

	if reqData.LectureTitle != nil {
		lecture.Title = *reqData.LectureTitle
	}
	if reqData.VideoInfo != nil {
		if reqData.VideoInfo.VideoURL != nil {
			lecture.VideoURL = *reqData.VideoInfo.VideoURL
		}
		if reqData.VideoInfo.PublicID != nil {
			lecture.PublicID = *reqData.VideoInfo.PublicID
		}
	}
	if reqData.IsPreviewFree != nil {
		lecture.IsPreviewFree = *reqData.IsPreviewFree
	}

	if err := database.Database.Db.Save(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	// Self-healing link: append only when absent.
	var link models.CourseLecture
	err := database.Database.Db.Where("course_id = ? AND lecture_id = ?", course.ID, lecture.ID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		link = models.CourseLecture{
			CourseID:  course.ID,
			LectureID: lecture.ID,
			Position:  nextLecturePosition(database.Database.Db, course.ID),
		}
		if err := database.Database.Db.Create(&link).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", fiber.Map{
		"lecture": lecture,
	})
}

// DeleteLecture removes the lecture and pulls its reference out of whichever
// course sequences hold it, found by query rather than trusting the caller's
// course id.
func DeleteLecture(c *fiber.Ctx) error {
	lectureID := c.Locals("lectureID").(uint)

	var lecture models.Lecture
	if err := database.Database.Db.First(&lecture, lectureID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	// Ownership is checked against the course named in the path when it still
	// exists; otherwise only an admin may clean up.
	courseID := c.Locals("courseID").(uint)
	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err == nil {
		if ok, err := requireCourseOwnership(c, &course); !ok {
			return err
		}
	} else {
		role, _ := c.Locals("role").(string)
		if role != models.RoleAdmin {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
		}
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lecture_id = ?", lecture.ID).Delete(&models.CourseLecture{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lecture).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture removed successfully!", nil)
}
