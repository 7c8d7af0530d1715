package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// logSweep logs sweep events with timestamp
func logSweep(message string) {
	log.Printf("[LECTURE-SWEEP %s] %s", time.Now().Format(time.RFC3339), message)
}

// Lecture creation and linking run in one transaction, so orphans should not
// happen; this sweep is the repair path for anything that slipped through
// (crashed process, manual data surgery).
func sweepOrphanLectures() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	linked := db.Model(&models.CourseLecture{}).Select("lecture_id")

	var orphans []models.Lecture
	if err := db.Where("created_at < ? AND id NOT IN (?)", cutoff, linked).Find(&orphans).Error; err != nil {
		logSweep("Error fetching orphan lectures: " + err.Error())
		return
	}
	if len(orphans) == 0 {
		return
	}

	for _, lecture := range orphans {
		if err := db.Delete(&lecture).Error; err != nil {
			logSweep("Error deleting orphan lecture: " + err.Error())
			continue
		}
	}
	logSweep("Removed " + strconv.Itoa(len(orphans)) + " orphan lectures")
}

// StartLectureScheduler runs the orphan sweep hourly.
func StartLectureScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", sweepOrphanLectures); err != nil {
		log.Fatalf("Failed to schedule lecture sweep: %v", err)
	}
	c.Start()
	logSweep("Scheduler started")
	return c
}
