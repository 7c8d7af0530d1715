package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// canMutateCourse reports whether the actor may modify the course. Admins may
// touch any course; everyone else must be its creator. The comparison runs on
// external ids so the role claim stays the only thing read from the token. A
// failed creator lookup is returned as an error, not treated as a denial.
func canMutateCourse(c *fiber.Ctx, course *models.Course) (bool, error) {
	role, _ := c.Locals("role").(string)
	if role == models.RoleAdmin {
		return true, nil
	}

	externalID, _ := c.Locals("externalId").(string)
	if externalID == "" {
		return false, nil
	}

	var creator models.User
	if err := database.Database.Db.First(&creator, course.CreatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return creator.ExternalID == externalID, nil
}

// requireCourseOwnership runs the mutation check and writes the matching
// error response. The returned bool tells the handler whether to continue.
func requireCourseOwnership(c *fiber.Ctx, course *models.Course) (bool, error) {
	allowed, err := canMutateCourse(c, course)
	if err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify course ownership!", nil)
	}
	if !allowed {
		return false, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}
	return true, nil
}

// CreateCourse creates an unpublished course owned by the actor's mirrored
// user record. Role gating happens in the router; this handler only needs the
// mirror to exist.
func CreateCourse(c *fiber.Ctx) error {
	externalID, ok := c.Locals("externalId").(string)
	if !ok || externalID == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	course := models.Course{
		Title:     reqData.CourseTitle,
		Category:  reqData.Category,
		CreatorID: user.ID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{
		"course": course,
	})
}

// GetPublishedCourses lists every published course. An empty result is
// reported as not found; the frontend renders its fallback state off that.
func GetPublishedCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_published = ?", true).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	if len(courses) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCreatorCourses lists the actor's own courses with lectures populated.
func GetCreatorCourses(c *fiber.Ctx) error {
	externalID, ok := c.Locals("externalId").(string)
	if !ok || externalID == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Where("creator_id = ?", user.ID).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	if len(courses) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	for i := range courses {
		lectures, err := loadCourseLectures(courses[i].ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		courses[i].Lectures = lectures
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourse returns a single course with its creator resolved.
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Preload("Creator").First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course": course,
	})
}

// UpdateCourse overwrites the course's fields with the submitted form values.
// Every submitted field wins, empty or not; only the thumbnail keeps its old
// value when no file is attached.
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if ok, err := requireCourseOwnership(c, &course); !ok {
		return err
	}

	course.Title = c.FormValue("courseTitle")
	course.SubTitle = c.FormValue("subTitle")
	course.Description = c.FormValue("description")
	course.Category = c.FormValue("category")
	course.Level = c.FormValue("courseLevel")

	// An omitted price overwrites to zero like every other field, but garbage
	// input is rejected instead of silently stored as zero.
	course.Price = 0
	if rawPrice := c.FormValue("coursePrice"); rawPrice != "" {
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"coursePrice": "Course price must be a number!",
			})
		}
		course.Price = price
	}

	// Thumbnail goes to the media store first; the returned URL replaces the
	// stored one only when a file was actually attached.
	if file, err := c.FormFile("file"); err == nil && file != nil && file.Size > 0 {
		result, err := utils.UploadToMediaStore(file)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error uploading thumbnail!", nil)
		}
		course.Thumbnail = result.URL
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", fiber.Map{
		"course": course,
	})
}

// TogglePublish flips the publish flag and reports the new state.
func TogglePublish(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if ok, err := requireCourseOwnership(c, &course); !ok {
		return err
	}

	course.IsPublished = !course.IsPublished
	if err := database.Database.Db.Model(&course).Update("is_published", course.IsPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course status!", nil)
	}

	message := "Course unpublished successfully!"
	if course.IsPublished {
		message = "Course published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"isPublished": course.IsPublished,
	})
}
