package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz represents a quiz attached to a module, or embedded in a content item
type Quiz struct {
	gorm.Model
	ModuleID         uint   `json:"module_id" gorm:"index;not null"`
	ContentID        *uint  `json:"content_id" gorm:"index"` // set when the quiz is a content item's quiz
	Title            string `json:"title"`
	PassingScore     int    `json:"passing_score" gorm:"default:70"` // 0-100
	TimeLimitMinutes int    `json:"time_limit_minutes" gorm:"default:30"`
	MaxAttempts      int    `json:"max_attempts" gorm:"default:3"`
	IsDeleted        bool   `gorm:"default:false"`
}

// QuizQuestion represents one question of a quiz. Options is a JSON array of
// exactly four strings; CorrectAnswer always matches one of them.
type QuizQuestion struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `json:"correct_answer"`
	Points        int            `json:"points" gorm:"default:1"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}
