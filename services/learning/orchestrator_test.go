package learning

import (
	"errors"
	"testing"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestOrchestratorPassFlow(t *testing.T) {
	db, tables, engine, store, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	moduleID := seedModule(t, db, tables, courseID, 1)
	quiz, questions := createQuiz(t, engine, db, tables, moduleID, fourQuestionInput("Final"))
	seedEnrollment(t, db, 10, courseID)

	result, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected passed result")
	}
	if result.Submission.Score != 100 {
		t.Fatalf("expected score 100, got %d", result.Submission.Score)
	}
	// The module quiz is the course's only item
	if result.ProgressPercentage != 100 {
		t.Fatalf("expected 100%%, got %d%%", result.ProgressPercentage)
	}

	// Module-level quizzes are tracked under the quiz id
	record, err := store.CheckProgress(10, courseID, quiz.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || !record.Passed || record.AttemptCount != 1 {
		t.Fatalf("expected passed record with one attempt, got %+v", record)
	}

	enrollment := loadEnrollment(t, db, 10, courseID)
	if enrollment.Status != "COMPLETED" {
		t.Fatalf("expected enrollment COMPLETED, got %q", enrollment.Status)
	}
}

func TestOrchestratorFailFlow(t *testing.T) {
	db, tables, engine, store, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	moduleID := seedModule(t, db, tables, courseID, 1)
	quiz, questions := createQuiz(t, engine, db, tables, moduleID, fourQuestionInput("Final"))
	seedEnrollment(t, db, 10, courseID)

	result, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected failed result")
	}
	if result.ProgressPercentage != 0 {
		t.Fatalf("expected percentage unchanged at 0%%, got %d%%", result.ProgressPercentage)
	}
	if result.Submission.AttemptNumber != 1 {
		t.Fatalf("expected attempt number 1, got %d", result.Submission.AttemptNumber)
	}

	record, err := store.CheckProgress(10, courseID, quiz.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || record.Passed || record.Score != 50 {
		t.Fatalf("expected failed attempt on record, got %+v", record)
	}
}

func TestOrchestratorRejectsResubmitAfterPass(t *testing.T) {
	db, tables, engine, _, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	moduleID := seedModule(t, db, tables, courseID, 1)
	quiz, questions := createQuiz(t, engine, db, tables, moduleID, fourQuestionInput("Final"))
	seedEnrollment(t, db, 10, courseID)

	if _, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 4))
	var passedErr *AlreadyPassedError
	if !errors.As(err, &passedErr) {
		t.Fatalf("expected AlreadyPassedError, got %v", err)
	}
}

func TestOrchestratorGuardRunsBeforeScoring(t *testing.T) {
	db, tables, engine, store, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	moduleID := seedModule(t, db, tables, courseID, 1)
	quiz, questions := createQuiz(t, engine, db, tables, moduleID, fourQuestionInput("Final"))
	seedEnrollment(t, db, 10, courseID)

	// Passed previously, e.g. before a data migration
	store.SaveProgress(10, courseID, quiz.ID, moduleID, 80, 100, true)

	_, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 4))
	var passedErr *AlreadyPassedError
	if !errors.As(err, &passedErr) {
		t.Fatalf("expected AlreadyPassedError, got %v", err)
	}

	// The rejected submission never reaches the engine
	var count int64
	db.Table(tables.SubmissionsTable).Where("user_id = ? AND quiz_id = ?", 10, quiz.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no submission rows, got %d", count)
	}

	record, err := store.CheckProgress(10, courseID, quiz.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.AttemptCount != 1 {
		t.Fatalf("expected attempt count untouched at 1, got %d", record.AttemptCount)
	}
}

func TestOrchestratorTracksContentQuizUnderContentID(t *testing.T) {
	db, tables, engine, store, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	moduleID := seedModule(t, db, tables, courseID, 1)
	contentID := seedContent(t, db, tables, courseID, moduleID, "QUIZ", 1)

	input := fourQuestionInput("Embedded")
	input.ContentID = uintPtr(contentID)
	quiz, questions := createQuiz(t, engine, db, tables, moduleID, input)
	seedEnrollment(t, db, 10, courseID)

	result, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The quiz content item is the course's only item
	if result.ProgressPercentage != 100 {
		t.Fatalf("expected 100%%, got %d%%", result.ProgressPercentage)
	}

	record, err := store.CheckProgress(10, courseID, contentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || !record.Passed {
		t.Fatalf("expected pass tracked under content id, got %+v", record)
	}

	enrollment := loadEnrollment(t, db, 10, courseID)
	progressData := enrollment.ProgressData.Data()
	completedQuiz, ok := progressData.CompletedQuizzes[contentID]
	if !ok || completedQuiz.QuizType != "CONTENT" {
		t.Fatalf("expected content-keyed completion, got %+v", progressData.CompletedQuizzes)
	}

	// Attempt history stays keyed by the quiz id
	var count int64
	db.Table(tables.SubmissionsTable).Where("user_id = ? AND quiz_id = ?", 10, quiz.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one submission for the quiz id, got %d", count)
	}
}

func TestOrchestratorQuizProgressReadsContentTrackingKey(t *testing.T) {
	db, tables, engine, store, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	moduleID := seedModule(t, db, tables, courseID, 1)
	// Filler content pushes the quiz content's id past the quiz's own id
	seedContent(t, db, tables, courseID, moduleID, "VIDEO", 1)
	seedContent(t, db, tables, courseID, moduleID, "VIDEO", 2)
	contentID := seedContent(t, db, tables, courseID, moduleID, "QUIZ", 3)

	input := fourQuestionInput("Embedded")
	input.ContentID = uintPtr(contentID)
	quiz, questions := createQuiz(t, engine, db, tables, moduleID, input)
	if quiz.ID == contentID {
		t.Fatalf("expected distinct quiz and content ids, both are %d", quiz.ID)
	}
	seedEnrollment(t, db, 10, courseID)

	if _, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 4)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The raw quiz id finds nothing; the pass lives under the content id
	raw, err := store.CheckProgress(10, courseID, quiz.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected no record under the quiz id, got %+v", raw)
	}

	record, err := orchestrator.QuizProgress(10, courseID, quiz.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || !record.Passed {
		t.Fatalf("expected the pass to be visible through the quiz id, got %+v", record)
	}
	if record.QuizID != contentID {
		t.Fatalf("expected record keyed by content id %d, got %d", contentID, record.QuizID)
	}
}

func TestOrchestratorQuizProgressRejectsMissingQuiz(t *testing.T) {
	db, tables, _, _, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	seedEnrollment(t, db, 10, courseID)

	_, err := orchestrator.QuizProgress(10, courseID, 999)
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestOrchestratorFailThenPassCountsAttempts(t *testing.T) {
	db, tables, engine, store, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	moduleID := seedModule(t, db, tables, courseID, 1)
	quiz, questions := createQuiz(t, engine, db, tables, moduleID, fourQuestionInput("Final"))
	seedEnrollment(t, db, 10, courseID)

	if _, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := orchestrator.SubmitQuiz(10, courseID, quiz.ID, answersFor(questions, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submission.AttemptNumber != 2 {
		t.Fatalf("expected attempt number 2, got %d", result.Submission.AttemptNumber)
	}

	record, err := store.CheckProgress(10, courseID, quiz.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.AttemptCount != 2 || !record.Passed {
		t.Fatalf("expected two attempts ending in a pass, got %+v", record)
	}
}

func TestOrchestratorRejectsMissingQuiz(t *testing.T) {
	db, tables, _, _, _, orchestrator := newTestServices(t)

	courseID := seedCourse(t, db, tables)
	seedEnrollment(t, db, 10, courseID)

	_, err := orchestrator.SubmitQuiz(10, courseID, 999, map[uint]string{1: "a"})
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
