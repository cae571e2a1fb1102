package utils

import (
	"skillhub/database"
	"skillhub/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReconcileEnrollmentCounts rewrites every course's denormalized enrolled
// counter from the authoritative enrollment rows. Listing endpoints already
// recompute live; this sweep keeps the stored value honest for anything that
// reads it directly.
func ReconcileEnrollmentCounts() {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Select("id", "enrolled").Find(&courses).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Reconciliation: failed to fetch courses")
		return
	}

	for _, course := range courses {
		var live int64
		if err := db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&live).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"course_id": course.ID,
				"error":     err.Error(),
			}).Error("Reconciliation: failed to count enrollments")
			continue
		}
		if int(live) == course.Enrolled {
			continue
		}
		if err := db.Model(&models.Course{}).Where("id = ?", course.ID).Update("enrolled", live).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"course_id": course.ID,
				"error":     err.Error(),
			}).Error("Reconciliation: failed to update counter")
			continue
		}
		logrus.WithFields(logrus.Fields{
			"course_id": course.ID,
			"stored":    course.Enrolled,
			"live":      live,
		}).Warn("Repaired drifted enrollment counter")
	}
}

// InitializeReconciliationScheduler runs the counter sweep every hour.
func InitializeReconciliationScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		ReconcileEnrollmentCounts()
	}); err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to schedule reconciliation sweep")
	}

	c.Start()
	logrus.Info("Enrollment counter reconciliation scheduler started - runs hourly")
	return c
}
