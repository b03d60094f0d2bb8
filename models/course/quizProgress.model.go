package course

import (
	"time"

	"gorm.io/gorm"
)

// QuizProgress is the per (user, course, quiz) pass/fail index. One row per
// triple, mutated in place across attempts.
type QuizProgress struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	QuizID       uint      `json:"quiz_id" gorm:"index;not null"`
	ModuleID     uint      `json:"module_id"`
	Status       string    `json:"status" gorm:"default:'FAILED'"` // COMPLETED, FAILED
	Score        int       `json:"score"`
	MaxScore     int       `json:"max_score"`
	Passed       bool      `json:"passed" gorm:"default:false"`
	CompletedAt  time.Time `json:"completed_at"`
	AttemptCount int       `json:"attempt_count" gorm:"default:1"`
	IsDeleted    bool      `gorm:"default:false"`
}
