package utils

import (
	"campushire/config"
	"campushire/database"
	"campushire/models"
	courseModels "campushire/models/course"
	"campushire/services/learning"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler sets up the nightly enrollment reconciliation job
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress scheduler...")

	c := cron.New()

	// Run daily at 2 AM to re-derive percentages and issue pending certificates
	c.AddFunc("0 2 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running daily progress reconciliation...")
		ReconcileEnrollmentProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress scheduler started - runs daily at 2 AM")
}

// ReconcileEnrollmentProgress recomputes every active enrollment's percentage
// from scratch so drift from course edits self-heals, and issues certificates
// for enrollments that reached 100%.
func ReconcileEnrollmentProgress() {
	db := database.Database.Db
	tables := config.AppConfig.Tables

	store := learning.NewProgressStore(db, tables)
	tracker := learning.NewProgressTracker(db, tables, store)

	var enrollments []courseModels.Enrollment
	if err := db.Where("is_deleted = ? AND status != ?", false, "COMPLETED").
		Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciling %d enrollments", len(enrollments))

	for _, enrollment := range enrollments {
		percentage, err := tracker.RecomputeProgress(enrollment.UserID, enrollment.CourseID)
		if err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error recomputing enrollment %d: %v", enrollment.ID, err)
			continue
		}
		if percentage >= 100 {
			issueCertificate(enrollment)
		}
	}
}

// issueCertificate creates a certificate for a completed enrollment unless one
// already exists, and notifies the student
func issueCertificate(enrollment courseModels.Enrollment) {
	db := database.Database.Db

	var existing courseModels.Certificate
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		enrollment.UserID, enrollment.CourseID, false).First(&existing).Error
	if err == nil {
		return
	}

	certificate := courseModels.Certificate{
		UserID:            enrollment.UserID,
		CourseID:          enrollment.CourseID,
		EnrollmentID:      enrollment.ID,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          time.Now(),
	}
	if err := db.Create(&certificate).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error issuing certificate for enrollment %d: %v", enrollment.ID, err)
		return
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&user).Error; err != nil {
		return
	}
	var course courseModels.Course
	if err := db.Table(config.AppConfig.Tables.CourseTable).
		Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return
	}

	SendCourseCompletedEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
	log.Printf("[PROGRESS-SCHEDULER] Issued certificate %s for enrollment %d", certificate.CertificateNumber, enrollment.ID)
}
