package learning

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"campushire/config"
	courseModels "campushire/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPassingScore = 70
	defaultTimeLimit    = 30
	defaultMaxAttempts  = 3
	defaultPoints       = 1
	optionsPerQuestion  = 4
)

// QuestionInput is the authoring payload for one quiz question
type QuestionInput struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        *int     `json:"points"`
}

// QuizInput is the authoring payload for a quiz. Numeric fields are pointers
// so absent values fall back to defaults instead of zero.
type QuizInput struct {
	Title            string          `json:"title"`
	ContentID        *uint           `json:"content_id"`
	PassingScore     *int            `json:"passing_score"`
	TimeLimitMinutes *int            `json:"time_limit_minutes"`
	MaxAttempts      *int            `json:"max_attempts"`
	Questions        []QuestionInput `json:"questions"`
}

// QuizEngine validates quiz authoring input and scores submissions
type QuizEngine struct {
	db     *gorm.DB
	tables config.Tables
}

func NewQuizEngine(db *gorm.DB, tables config.Tables) *QuizEngine {
	return &QuizEngine{db: db, tables: tables}
}

// CreateQuiz validates and persists a quiz with its questions (ordered 1..N).
// The quiz and question records share the quiz id as foreign key.
func (e *QuizEngine) CreateQuiz(moduleID uint, in QuizInput) (*courseModels.Quiz, error) {
	fieldErrors := make(map[string]string)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		fieldErrors["title"] = "Title is required!"
	}

	if len(in.Questions) == 0 {
		fieldErrors["questions"] = "At least one question is required!"
	}

	for i, q := range in.Questions {
		key := fmt.Sprintf("questions[%d]", i)

		if strings.TrimSpace(q.QuestionText) == "" {
			fieldErrors[key+".question_text"] = "Question text is required!"
		}

		if len(q.Options) != optionsPerQuestion {
			fieldErrors[key+".options"] = "Each question must have exactly 4 options!"
		} else {
			for j, opt := range q.Options {
				if strings.TrimSpace(opt) == "" {
					fieldErrors[fmt.Sprintf("%s.options[%d]", key, j)] = "Option text must not be blank!"
				}
			}
		}

		correct := strings.TrimSpace(q.CorrectAnswer)
		if correct == "" {
			fieldErrors[key+".correct_answer"] = "Correct answer is required!"
		} else if len(q.Options) == optionsPerQuestion {
			found := false
			for _, opt := range q.Options {
				if strings.TrimSpace(opt) == correct {
					found = true
					break
				}
			}
			if !found {
				fieldErrors[key+".correct_answer"] = "Correct answer must be one of the question's options!"
			}
		}
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	quiz := courseModels.Quiz{
		ModuleID:         moduleID,
		ContentID:        in.ContentID,
		Title:            title,
		PassingScore:     clamp(in.PassingScore, defaultPassingScore, 0, 100),
		TimeLimitMinutes: clampMin(in.TimeLimitMinutes, defaultTimeLimit, 1),
		MaxAttempts:      clampMin(in.MaxAttempts, defaultMaxAttempts, 1),
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(e.tables.QuizTable).Create(&quiz).Error; err != nil {
			return err
		}
		for i, q := range in.Questions {
			options := make([]string, optionsPerQuestion)
			for j, opt := range q.Options {
				options[j] = strings.TrimSpace(opt)
			}
			optionsJSON, err := json.Marshal(options)
			if err != nil {
				return err
			}
			question := courseModels.QuizQuestion{
				QuizID:        quiz.ID,
				QuestionText:  strings.TrimSpace(q.QuestionText),
				Options:       datatypes.JSON(optionsJSON),
				CorrectAnswer: strings.TrimSpace(q.CorrectAnswer),
				Points:        clampMin(q.Points, defaultPoints, 1),
				OrderIndex:    i + 1,
			}
			if err := tx.Table(e.tables.QuestionsTable).Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &quiz, nil
}

// SubmitQuiz scores answers against the quiz's questions and persists the
// attempt. Answers map question ids to the chosen option text. The quiz and
// question records are never mutated.
func (e *QuizEngine) SubmitQuiz(userID, quizID uint, answers map[uint]string) (*courseModels.QuizSubmission, error) {
	var quiz courseModels.Quiz
	err := e.db.Table(e.tables.QuizTable).
		Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "quiz", ID: quizID}
	}
	if err != nil {
		return nil, err
	}

	var questions []courseModels.QuizQuestion
	if err := e.db.Table(e.tables.QuestionsTable).
		Where("quiz_id = ? AND is_deleted = ?", quizID, false).
		Order("order_index asc").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &NotFoundError{Resource: "quiz questions for quiz", ID: quizID}
	}

	if len(answers) == 0 {
		return nil, &InvalidInputError{Reason: "Answers must map question ids to the chosen option!"}
	}

	// Attempt limit check before any write
	var priorCount int64
	if err := e.db.Table(e.tables.SubmissionsTable).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).
		Count(&priorCount).Error; err != nil {
		return nil, err
	}
	if int(priorCount) >= quiz.MaxAttempts {
		return nil, &AttemptLimitError{QuizID: quizID, MaxAttempts: quiz.MaxAttempts}
	}

	correctCount := 0
	earnedPoints := 0
	totalPoints := 0
	results := make([]courseModels.QuestionResult, 0, len(questions))

	for _, q := range questions {
		var options []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return nil, err
		}

		userAnswer := strings.TrimSpace(answers[q.ID])
		isCorrect := userAnswer != "" && userAnswer == strings.TrimSpace(q.CorrectAnswer)
		if isCorrect {
			correctCount++
			earnedPoints += q.Points
		}
		totalPoints += q.Points

		results = append(results, courseModels.QuestionResult{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Options:       options,
		})
	}

	score := roundPercentage(correctCount, len(questions))
	pointsPercentage := roundPercentage(earnedPoints, totalPoints)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	submission := courseModels.QuizSubmission{
		UserID:           userID,
		QuizID:           quizID,
		Answers:          datatypes.JSON(answersJSON),
		Score:            score,
		CorrectAnswers:   correctCount,
		TotalQuestions:   len(questions),
		EarnedPoints:     earnedPoints,
		TotalPoints:      totalPoints,
		PointsPercentage: pointsPercentage,
		Results:          datatypes.JSON(resultsJSON),
		Passed:           score >= quiz.PassingScore,
		AttemptNumber:    int(priorCount) + 1,
	}

	if err := e.db.Table(e.tables.SubmissionsTable).Create(&submission).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// roundPercentage returns round(100 * part / total), 0 when total is 0
func roundPercentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func clamp(v *int, def, min, max int) int {
	if v == nil {
		return def
	}
	if *v < min {
		return min
	}
	if *v > max {
		return max
	}
	return *v
}

func clampMin(v *int, def, min int) int {
	if v == nil {
		return def
	}
	if *v < min {
		return min
	}
	return *v
}
