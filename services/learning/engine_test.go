package learning

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestCreateQuizRejectsInvalidInput(t *testing.T) {
	_, _, engine, _, _, _ := newTestServices(t)

	cases := []struct {
		name  string
		input QuizInput
		field string
	}{
		{
			name:  "blank title",
			input: QuizInput{Title: "   ", Questions: fourQuestionInput("x").Questions},
			field: "title",
		},
		{
			name:  "no questions",
			input: QuizInput{Title: "Quiz"},
			field: "questions",
		},
		{
			name: "blank question text",
			input: QuizInput{Title: "Quiz", Questions: []QuestionInput{
				{QuestionText: " ", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
			}},
			field: "questions[0].question_text",
		},
		{
			name: "three options",
			input: QuizInput{Title: "Quiz", Questions: []QuestionInput{
				{QuestionText: "Q?", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"},
			}},
			field: "questions[0].options",
		},
		{
			name: "blank option",
			input: QuizInput{Title: "Quiz", Questions: []QuestionInput{
				{QuestionText: "Q?", Options: []string{"a", "b", "c", " "}, CorrectAnswer: "a"},
			}},
			field: "questions[0].options[3]",
		},
		{
			name: "missing correct answer",
			input: QuizInput{Title: "Quiz", Questions: []QuestionInput{
				{QuestionText: "Q?", Options: []string{"a", "b", "c", "d"}},
			}},
			field: "questions[0].correct_answer",
		},
		{
			name: "correct answer not an option",
			input: QuizInput{Title: "Quiz", Questions: []QuestionInput{
				{QuestionText: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "e"},
			}},
			field: "questions[0].correct_answer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.CreateQuiz(1, tc.input)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := validationErr.Fields[tc.field]; !ok {
				t.Fatalf("expected error on field %q, got %v", tc.field, validationErr.Fields)
			}
		})
	}
}

func TestCreateQuizOptionCountMessageMentionsFour(t *testing.T) {
	_, _, engine, _, _, _ := newTestServices(t)

	input := QuizInput{Title: "Quiz", Questions: []QuestionInput{
		{QuestionText: "Q?", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"},
	}}

	_, err := engine.CreateQuiz(1, input)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if msg := validationErr.Fields["questions[0].options"]; !strings.Contains(msg, "4 options") {
		t.Fatalf("expected message mentioning 4 options, got %q", msg)
	}
}

func TestCreateQuizAppliesDefaults(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	quiz, questions := createQuiz(t, engine, db, tables, 1, fourQuestionInput("Defaults"))
	if quiz.PassingScore != 70 {
		t.Fatalf("expected default passing score 70, got %d", quiz.PassingScore)
	}
	if quiz.TimeLimitMinutes != 30 {
		t.Fatalf("expected default time limit 30, got %d", quiz.TimeLimitMinutes)
	}
	if quiz.MaxAttempts != 3 {
		t.Fatalf("expected default max attempts 3, got %d", quiz.MaxAttempts)
	}
	for i, q := range questions {
		if q.Points != 1 {
			t.Fatalf("expected default points 1, got %d", q.Points)
		}
		if q.OrderIndex != i+1 {
			t.Fatalf("expected order index %d, got %d", i+1, q.OrderIndex)
		}
	}
}

func TestCreateQuizClampsRanges(t *testing.T) {
	_, _, engine, _, _, _ := newTestServices(t)

	input := fourQuestionInput("Clamped")
	input.PassingScore = intPtr(150)
	input.TimeLimitMinutes = intPtr(0)
	input.MaxAttempts = intPtr(-2)

	quiz, err := engine.CreateQuiz(1, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.PassingScore != 100 {
		t.Fatalf("expected passing score clamped to 100, got %d", quiz.PassingScore)
	}
	if quiz.TimeLimitMinutes != 1 {
		t.Fatalf("expected time limit clamped to 1, got %d", quiz.TimeLimitMinutes)
	}
	if quiz.MaxAttempts != 1 {
		t.Fatalf("expected max attempts clamped to 1, got %d", quiz.MaxAttempts)
	}
}

func TestCreateQuizTrimsText(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	input := QuizInput{Title: "  Trimmed  ", Questions: []QuestionInput{
		{QuestionText: "  Q?  ", Options: []string{" a ", "b", "c", "d"}, CorrectAnswer: " a "},
		{QuestionText: "Q2?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b"},
		{QuestionText: "Q3?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "c"},
		{QuestionText: "Q4?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "d"},
	}}

	quiz, questions := createQuiz(t, engine, db, tables, 1, input)
	if quiz.Title != "Trimmed" {
		t.Fatalf("expected trimmed title, got %q", quiz.Title)
	}
	if questions[0].QuestionText != "Q?" {
		t.Fatalf("expected trimmed question text, got %q", questions[0].QuestionText)
	}
	if questions[0].CorrectAnswer != "a" {
		t.Fatalf("expected trimmed correct answer, got %q", questions[0].CorrectAnswer)
	}
}

func TestSubmitQuizScoresPassingAttempt(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	quiz, questions := createQuiz(t, engine, db, tables, 1, fourQuestionInput("Scenario A"))

	// 3 of 4 correct with passing score 70
	submission, err := engine.SubmitQuiz(10, quiz.ID, answersFor(questions, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Score != 75 {
		t.Fatalf("expected score 75, got %d", submission.Score)
	}
	if !submission.Passed {
		t.Fatalf("expected passed=true")
	}
	if submission.CorrectAnswers != 3 || submission.TotalQuestions != 4 {
		t.Fatalf("expected 3/4 correct, got %d/%d", submission.CorrectAnswers, submission.TotalQuestions)
	}
	if submission.EarnedPoints != 3 || submission.TotalPoints != 4 || submission.PointsPercentage != 75 {
		t.Fatalf("unexpected points: %d/%d (%d%%)", submission.EarnedPoints, submission.TotalPoints, submission.PointsPercentage)
	}
	if submission.AttemptNumber != 1 {
		t.Fatalf("expected attempt number 1, got %d", submission.AttemptNumber)
	}
}

func TestSubmitQuizScoresFailingAttempt(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	quiz, questions := createQuiz(t, engine, db, tables, 1, fourQuestionInput("Scenario B"))

	// 2 of 4 correct stays below passing score 70
	submission, err := engine.SubmitQuiz(10, quiz.ID, answersFor(questions, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Score != 50 {
		t.Fatalf("expected score 50, got %d", submission.Score)
	}
	if submission.Passed {
		t.Fatalf("expected passed=false")
	}
}

func TestSubmitQuizRoundsScore(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	input := QuizInput{Title: "Three", Questions: []QuestionInput{
		{QuestionText: "Q1?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{QuestionText: "Q2?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{QuestionText: "Q3?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	}}
	quiz, questions := createQuiz(t, engine, db, tables, 1, input)

	submission, err := engine.SubmitQuiz(10, quiz.ID, answersFor(questions, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Score != 33 {
		t.Fatalf("expected score 33 for 1/3, got %d", submission.Score)
	}

	submission, err = engine.SubmitQuiz(11, quiz.ID, answersFor(questions, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Score != 67 {
		t.Fatalf("expected score 67 for 2/3, got %d", submission.Score)
	}
}

func TestSubmitQuizTrimsAnswersBeforeComparing(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	quiz, questions := createQuiz(t, engine, db, tables, 1, fourQuestionInput("Trim"))

	answers := make(map[uint]string, len(questions))
	for _, q := range questions {
		answers[q.ID] = "  " + q.CorrectAnswer + "  "
	}

	submission, err := engine.SubmitQuiz(10, quiz.ID, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Score != 100 {
		t.Fatalf("expected score 100, got %d", submission.Score)
	}
}

func TestSubmitQuizEnforcesAttemptLimit(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	input := fourQuestionInput("Limited")
	input.MaxAttempts = intPtr(3)
	quiz, questions := createQuiz(t, engine, db, tables, 1, input)

	// Failing attempts 1..3 are numbered exactly 1..3
	for attempt := 1; attempt <= 3; attempt++ {
		submission, err := engine.SubmitQuiz(10, quiz.ID, answersFor(questions, 0))
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", attempt, err)
		}
		if submission.AttemptNumber != attempt {
			t.Fatalf("expected attempt number %d, got %d", attempt, submission.AttemptNumber)
		}
	}

	_, err := engine.SubmitQuiz(10, quiz.ID, answersFor(questions, 0))
	var limitErr *AttemptLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected AttemptLimitError, got %v", err)
	}
	if limitErr.MaxAttempts != 3 {
		t.Fatalf("expected configured maximum 3 in error, got %d", limitErr.MaxAttempts)
	}

	// Rejected attempt leaves no submission behind
	var count int64
	db.Table(tables.SubmissionsTable).Where("user_id = ? AND quiz_id = ?", 10, quiz.ID).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 submissions, got %d", count)
	}

	// Another user is unaffected by the first user's attempts
	if _, err := engine.SubmitQuiz(11, quiz.ID, answersFor(questions, 0)); err != nil {
		t.Fatalf("unexpected error for second user: %v", err)
	}
}

func TestSubmitQuizRejectsMissingQuiz(t *testing.T) {
	_, _, engine, _, _, _ := newTestServices(t)

	_, err := engine.SubmitQuiz(10, 999, map[uint]string{1: "a"})
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSubmitQuizRejectsEmptyAnswers(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	quiz, _ := createQuiz(t, engine, db, tables, 1, fourQuestionInput("Empty"))

	_, err := engine.SubmitQuiz(10, quiz.ID, nil)
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestSubmitQuizKeepsDetailedResults(t *testing.T) {
	db, tables, engine, _, _, _ := newTestServices(t)

	quiz, questions := createQuiz(t, engine, db, tables, 1, fourQuestionInput("Results"))

	submission, err := engine.SubmitQuiz(10, quiz.ID, answersFor(questions, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored []struct {
		QuestionID    uint     `json:"question_id"`
		UserAnswer    string   `json:"user_answer"`
		CorrectAnswer string   `json:"correct_answer"`
		IsCorrect     bool     `json:"is_correct"`
		Options       []string `json:"options"`
	}
	if err := json.Unmarshal(submission.Results, &stored); err != nil {
		t.Fatalf("failed to decode results: %v", err)
	}
	if len(stored) != 4 {
		t.Fatalf("expected 4 results, got %d", len(stored))
	}
	if !stored[0].IsCorrect || stored[3].IsCorrect {
		t.Fatalf("unexpected correctness flags: %+v", stored)
	}
	if len(stored[0].Options) != 4 {
		t.Fatalf("expected options carried for review, got %v", stored[0].Options)
	}
	if stored[3].UserAnswer != "beta" || stored[3].CorrectAnswer != "alpha" {
		t.Fatalf("expected answers preserved, got %+v", stored[3])
	}
}
