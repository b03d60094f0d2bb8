package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompletedItem records completion of one content item
type CompletedItem struct {
	CompletedAt time.Time `json:"completed_at"`
	ContentType string    `json:"content_type"`
}

// CompletedQuiz records a passed quiz inside the enrollment's progress data
type CompletedQuiz struct {
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completed_at"`
	QuizType    string    `json:"quiz_type"` // MODULE or CONTENT
	Score       int       `json:"score"`
}

// ProgressData is the typed completion state held on an enrollment. Both maps
// are always present; NewProgressData initializes them at enrollment creation.
type ProgressData struct {
	CompletedContent map[uint]CompletedItem `json:"completed_content"`
	CompletedQuizzes map[uint]CompletedQuiz `json:"completed_quizzes"`
}

// NewProgressData returns progress data with empty (never nil) maps
func NewProgressData() ProgressData {
	return ProgressData{
		CompletedContent: make(map[uint]CompletedItem),
		CompletedQuizzes: make(map[uint]CompletedQuiz),
	}
}

// EnsureMaps re-initializes nil maps for enrollments that predate this subsystem
func (p *ProgressData) EnsureMaps() {
	if p.CompletedContent == nil {
		p.CompletedContent = make(map[uint]CompletedItem)
	}
	if p.CompletedQuizzes == nil {
		p.CompletedQuizzes = make(map[uint]CompletedQuiz)
	}
}

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	UserID             uint                             `json:"user_id" gorm:"index;not null"`
	CourseID           uint                             `json:"course_id" gorm:"index;not null"`
	Status             string                           `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	ProgressPercentage int                              `json:"progress_percentage" gorm:"default:0"`
	ProgressData       datatypes.JSONType[ProgressData] `json:"progress_data"`
	EnrolledAt         time.Time                        `json:"enrolled_at"`
	CompletedAt        *time.Time                       `json:"completed_at"`
	IsDeleted          bool                             `gorm:"default:false"`
}
