package learning

import (
	"errors"

	"campushire/config"
	courseModels "campushire/models/course"

	"gorm.io/gorm"
)

// SubmitResult is what a quiz submission reports back to the caller
type SubmitResult struct {
	Submission         *courseModels.QuizSubmission `json:"submission"`
	ProgressPercentage int                          `json:"progress_percentage"`
	Passed             bool                         `json:"passed"`
}

// Orchestrator is the single entry point coupling quiz submissions to
// enrollment state, so handlers never call the lower layers out of order.
type Orchestrator struct {
	db      *gorm.DB
	tables  config.Tables
	engine  *QuizEngine
	store   *ProgressStore
	tracker *ProgressTracker
}

func NewOrchestrator(db *gorm.DB, tables config.Tables, engine *QuizEngine, store *ProgressStore, tracker *ProgressTracker) *Orchestrator {
	return &Orchestrator{db: db, tables: tables, engine: engine, store: store, tracker: tracker}
}

// resolveQuiz loads the quiz and derives its tracking key. Content-embedded
// quizzes are tracked under their content item's id, module-level quizzes
// under the quiz id. Attempt history stays keyed by the quiz id either way.
func (o *Orchestrator) resolveQuiz(quizID uint) (*courseModels.Quiz, uint, string, error) {
	var quiz courseModels.Quiz
	err := o.db.Table(o.tables.QuizTable).
		Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, "", &NotFoundError{Resource: "quiz", ID: quizID}
	}
	if err != nil {
		return nil, 0, "", err
	}

	trackingID := quiz.ID
	quizType := "MODULE"
	if quiz.ContentID != nil {
		trackingID = *quiz.ContentID
		quizType = "CONTENT"
	}
	return &quiz, trackingID, quizType, nil
}

// QuizProgress returns the pass/fail record for a quiz under the same tracking
// key the submit flow writes. nil means never attempted.
func (o *Orchestrator) QuizProgress(userID, courseID, quizID uint) (*courseModels.QuizProgress, error) {
	_, trackingID, _, err := o.resolveQuiz(quizID)
	if err != nil {
		return nil, err
	}
	return o.store.CheckProgress(userID, courseID, trackingID)
}

// SubmitQuiz runs the full submission flow: the already-passed guard, scoring,
// then the enrollment update. The guard runs before the engine so a learner
// who already passed cannot consume another attempt slot or alter history.
func (o *Orchestrator) SubmitQuiz(userID, courseID, quizID uint, answers map[uint]string) (*SubmitResult, error) {
	quiz, trackingID, quizType, err := o.resolveQuiz(quizID)
	if err != nil {
		return nil, err
	}

	record, err := o.store.CheckProgress(userID, courseID, trackingID)
	if err != nil {
		return nil, err
	}
	if record != nil && record.Passed {
		return nil, &AlreadyPassedError{QuizID: quizID}
	}

	submission, err := o.engine.SubmitQuiz(userID, quizID, answers)
	if err != nil {
		return nil, err
	}

	percentage, completed, err := o.tracker.MarkQuizComplete(
		userID, courseID, trackingID, submission.Passed, submission.Score, quizType, quiz.ModuleID)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Submission:         submission,
		ProgressPercentage: percentage,
		Passed:             completed,
	}, nil
}
