package learning

import (
	"errors"
	"log"
	"time"

	"campushire/config"
	courseModels "campushire/models/course"

	"gorm.io/gorm"
)

// ProgressStore keeps the per (user, course, quiz) pass/fail record used for
// fast already-passed checks. It is a secondary index for UI convenience, not
// authoritative progress, so writes are best-effort. Records are keyed by the
// tracking id the submit flow derives (content id for embedded quizzes, quiz
// id for module quizzes); a numeric collision between the two tables within
// one course would alias records here.
type ProgressStore struct {
	db     *gorm.DB
	tables config.Tables
}

func NewProgressStore(db *gorm.DB, tables config.Tables) *ProgressStore {
	return &ProgressStore{db: db, tables: tables}
}

// CheckProgress returns the current record, or (nil, nil) when the user has
// never attempted the quiz. Absence is not an error.
func (s *ProgressStore) CheckProgress(userID, courseID, quizID uint) (*courseModels.QuizProgress, error) {
	var record courseModels.QuizProgress
	err := s.db.Table(s.tables.ProgressTable).
		Where("user_id = ? AND course_id = ? AND quiz_id = ? AND is_deleted = ?", userID, courseID, quizID, false).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SaveProgress upserts the record for the latest attempt. The attempt count
// always increments and the latest fields always overwrite, even on a repeated
// pass; immutability after a pass is enforced one layer up. When storage is
// unavailable the record is synthesized locally instead of failing the caller.
func (s *ProgressStore) SaveProgress(userID, courseID, quizID, moduleID uint, score, maxScore int, passed bool) *courseModels.QuizProgress {
	status := "FAILED"
	if passed {
		status = "COMPLETED"
	}

	record := courseModels.QuizProgress{
		UserID:       userID,
		CourseID:     courseID,
		QuizID:       quizID,
		ModuleID:     moduleID,
		Status:       status,
		Score:        score,
		MaxScore:     maxScore,
		Passed:       passed,
		CompletedAt:  time.Now(),
		AttemptCount: 1,
	}

	existing, err := s.CheckProgress(userID, courseID, quizID)
	if err != nil {
		log.Printf("Quiz progress store unavailable, returning unsaved record: %v", err)
		return &record
	}

	if existing == nil {
		if err := s.db.Table(s.tables.ProgressTable).Create(&record).Error; err != nil {
			log.Printf("Failed to save quiz progress, returning unsaved record: %v", err)
			record.ID = 0
		}
		return &record
	}

	existing.Status = status
	existing.Score = score
	existing.MaxScore = maxScore
	existing.Passed = passed
	existing.CompletedAt = record.CompletedAt
	existing.ModuleID = moduleID
	existing.AttemptCount++

	if err := s.db.Table(s.tables.ProgressTable).Save(existing).Error; err != nil {
		log.Printf("Failed to update quiz progress, returning unsaved record: %v", err)
		return &record
	}
	return existing
}
