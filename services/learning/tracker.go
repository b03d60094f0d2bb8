package learning

import (
	"errors"
	"time"

	"campushire/config"
	courseModels "campushire/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressTracker owns the completion bookkeeping on the Enrollment record
type ProgressTracker struct {
	db     *gorm.DB
	tables config.Tables
	store  *ProgressStore
}

func NewProgressTracker(db *gorm.DB, tables config.Tables, store *ProgressStore) *ProgressTracker {
	return &ProgressTracker{db: db, tables: tables, store: store}
}

// MarkContentComplete records completion of a content item and returns the
// recomputed progress percentage. Idempotent: repeat calls overwrite the same
// entry and yield the same percentage.
func (t *ProgressTracker) MarkContentComplete(userID, courseID, contentID uint, contentType string) (int, error) {
	var percentage int

	err := t.db.Transaction(func(tx *gorm.DB) error {
		enrollment, err := t.lockEnrollment(tx, userID, courseID)
		if err != nil {
			return err
		}

		progressData := enrollment.ProgressData.Data()
		progressData.EnsureMaps()
		progressData.CompletedContent[contentID] = courseModels.CompletedItem{
			CompletedAt: time.Now(),
			ContentType: contentType,
		}

		percentage, err = t.computeProgress(tx, courseID, progressData)
		if err != nil {
			return err
		}

		return t.saveEnrollment(tx, enrollment, progressData, percentage)
	})
	if err != nil {
		return 0, err
	}
	return percentage, nil
}

// MarkQuizComplete records a quiz attempt. The quiz progress store is written
// regardless of outcome; the enrollment is only touched on a pass. Returns the
// progress percentage and whether the quiz counts as completed.
func (t *ProgressTracker) MarkQuizComplete(userID, courseID, quizID uint, passed bool, score int, quizType string, moduleID uint) (int, bool, error) {
	// Attempt history is kept even for failed attempts
	t.store.SaveProgress(userID, courseID, quizID, moduleID, score, 100, passed)

	if !passed {
		var enrollment courseModels.Enrollment
		err := t.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
			First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, &NotFoundError{Resource: "enrollment for course", ID: courseID}
		}
		if err != nil {
			return 0, false, err
		}
		// Attempted but not completed; percentage unchanged
		return enrollment.ProgressPercentage, false, nil
	}

	var percentage int
	err := t.db.Transaction(func(tx *gorm.DB) error {
		enrollment, err := t.lockEnrollment(tx, userID, courseID)
		if err != nil {
			return err
		}

		progressData := enrollment.ProgressData.Data()
		progressData.EnsureMaps()
		progressData.CompletedQuizzes[quizID] = courseModels.CompletedQuiz{
			Passed:      true,
			CompletedAt: time.Now(),
			QuizType:    quizType,
			Score:       score,
		}

		percentage, err = t.computeProgress(tx, courseID, progressData)
		if err != nil {
			return err
		}

		return t.saveEnrollment(tx, enrollment, progressData, percentage)
	})
	if err != nil {
		return 0, false, err
	}
	return percentage, true, nil
}

// RecomputeProgress recalculates and persists the percentage for an existing
// enrollment without changing its completion state. Used by the nightly
// reconciler to heal drift after course edits.
func (t *ProgressTracker) RecomputeProgress(userID, courseID uint) (int, error) {
	var percentage int

	err := t.db.Transaction(func(tx *gorm.DB) error {
		enrollment, err := t.lockEnrollment(tx, userID, courseID)
		if err != nil {
			return err
		}

		progressData := enrollment.ProgressData.Data()
		progressData.EnsureMaps()

		percentage, err = t.computeProgress(tx, courseID, progressData)
		if err != nil {
			return err
		}

		return t.saveEnrollment(tx, enrollment, progressData, percentage)
	})
	if err != nil {
		return 0, err
	}
	return percentage, nil
}

// lockEnrollment loads the enrollment row for update so concurrent content and
// quiz completions cannot lose each other's writes
func (t *ProgressTracker) lockEnrollment(tx *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "enrollment for course", ID: courseID}
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (t *ProgressTracker) saveEnrollment(tx *gorm.DB, enrollment *courseModels.Enrollment, progressData courseModels.ProgressData, percentage int) error {
	enrollment.ProgressData = datatypes.NewJSONType(progressData)
	enrollment.ProgressPercentage = percentage

	if percentage >= 100 {
		enrollment.Status = "COMPLETED"
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else if percentage > 0 {
		enrollment.Status = "IN_PROGRESS"
	}

	return tx.Save(enrollment).Error
}

// computeProgress derives the percentage from scratch on every call. Total
// items count every published content item plus every module-level quiz; a
// quiz-type content item completes through the quiz map, everything else
// through the content map. 0 items means 0 percent.
func (t *ProgressTracker) computeProgress(tx *gorm.DB, courseID uint, progressData courseModels.ProgressData) (int, error) {
	var course courseModels.Course
	err := tx.Table(t.tables.CourseTable).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &NotFoundError{Resource: "course", ID: courseID}
	}
	if err != nil {
		return 0, err
	}

	var modules []courseModels.Module
	if err := tx.Table(t.tables.ModulesTable).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Find(&modules).Error; err != nil {
		return 0, err
	}

	totalItems := 0
	completedItems := 0

	for _, module := range modules {
		var contents []courseModels.CourseContent
		if err := tx.Table(t.tables.ContentsTable).
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", module.ID, false, true).
			Order("order_index asc").
			Find(&contents).Error; err != nil {
			return 0, err
		}

		for _, content := range contents {
			totalItems++
			if content.ContentType == "QUIZ" {
				// Content items and module quizzes draw ids from different
				// tables, so the quiz type tag disambiguates colliding numbers
				entry := progressData.CompletedQuizzes[content.ID]
				if entry.Passed && entry.QuizType == "CONTENT" {
					completedItems++
				}
			} else if _, ok := progressData.CompletedContent[content.ID]; ok {
				completedItems++
			}
		}

		var moduleQuiz courseModels.Quiz
		err := tx.Table(t.tables.QuizTable).
			Where("module_id = ? AND content_id IS NULL AND is_deleted = ?", module.ID, false).
			First(&moduleQuiz).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, err
			}
			continue
		}
		totalItems++
		entry := progressData.CompletedQuizzes[moduleQuiz.ID]
		if entry.Passed && entry.QuizType == "MODULE" {
			completedItems++
		}
	}

	return roundPercentage(completedItems, totalItems), nil
}
