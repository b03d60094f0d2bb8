package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionResult is the per-question breakdown stored with a submission
type QuestionResult struct {
	QuestionID    uint     `json:"question_id"`
	QuestionText  string   `json:"question_text"`
	UserAnswer    string   `json:"user_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Options       []string `json:"options"`
}

// QuizSubmission represents one scored attempt at a quiz. Immutable once written.
type QuizSubmission struct {
	gorm.Model
	UserID           uint           `json:"user_id" gorm:"index;not null"`
	QuizID           uint           `json:"quiz_id" gorm:"index;not null"`
	Answers          datatypes.JSON `json:"answers"` // map questionID -> chosen option text
	Score            int            `json:"score"`   // 0-100 rounded
	CorrectAnswers   int            `json:"correct_answers"`
	TotalQuestions   int            `json:"total_questions"`
	EarnedPoints     int            `json:"earned_points"`
	TotalPoints      int            `json:"total_points"`
	PointsPercentage int            `json:"points_percentage"`
	Results          datatypes.JSON `json:"results"` // []QuestionResult
	Passed           bool           `json:"passed" gorm:"default:false"`
	AttemptNumber    int            `json:"attempt_number" gorm:"default:1"` // 1-based
	IsDeleted        bool           `gorm:"default:false"`
}
