package learning

import (
	"testing"
	"time"

	"campushire/config"
	courseModels "campushire/models/course"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the learning tables
// migrated under the default table names
func setupTestDB(t *testing.T) (*gorm.DB, config.Tables) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	tables := config.DefaultTables()

	if err := db.AutoMigrate(&courseModels.Enrollment{}); err != nil {
		t.Fatalf("failed to migrate enrollments: %v", err)
	}
	migrations := []struct {
		table string
		model interface{}
	}{
		{tables.CourseTable, &courseModels.Course{}},
		{tables.ModulesTable, &courseModels.Module{}},
		{tables.ContentsTable, &courseModels.CourseContent{}},
		{tables.QuizTable, &courseModels.Quiz{}},
		{tables.QuestionsTable, &courseModels.QuizQuestion{}},
		{tables.SubmissionsTable, &courseModels.QuizSubmission{}},
		{tables.ProgressTable, &courseModels.QuizProgress{}},
	}
	for _, m := range migrations {
		if err := db.Table(m.table).AutoMigrate(m.model); err != nil {
			t.Fatalf("failed to migrate %s: %v", m.table, err)
		}
	}

	return db, tables
}

func newTestServices(t *testing.T) (*gorm.DB, config.Tables, *QuizEngine, *ProgressStore, *ProgressTracker, *Orchestrator) {
	t.Helper()
	db, tables := setupTestDB(t)
	engine := NewQuizEngine(db, tables)
	store := NewProgressStore(db, tables)
	tracker := NewProgressTracker(db, tables, store)
	orchestrator := NewOrchestrator(db, tables, engine, store, tracker)
	return db, tables, engine, store, tracker, orchestrator
}

func intPtr(v int) *int {
	return &v
}

func seedCourse(t *testing.T, db *gorm.DB, tables config.Tables) uint {
	t.Helper()
	course := courseModels.Course{
		InstituteID: 1,
		Title:       "Placement Readiness",
		Status:      "ACTIVE",
		IsPublished: true,
	}
	if err := db.Table(tables.CourseTable).Create(&course).Error; err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}
	return course.ID
}

func seedModule(t *testing.T, db *gorm.DB, tables config.Tables, courseID uint, order int) uint {
	t.Helper()
	module := courseModels.Module{CourseID: courseID, Title: "Module", OrderIndex: order}
	if err := db.Table(tables.ModulesTable).Create(&module).Error; err != nil {
		t.Fatalf("failed to seed module: %v", err)
	}
	return module.ID
}

func seedContent(t *testing.T, db *gorm.DB, tables config.Tables, courseID, moduleID uint, contentType string, order int) uint {
	t.Helper()
	content := courseModels.CourseContent{
		CourseID:    courseID,
		ModuleID:    moduleID,
		Title:       "Content",
		ContentType: contentType,
		OrderIndex:  order,
		IsMandatory: true,
		IsPublished: true,
	}
	if err := db.Table(tables.ContentsTable).Create(&content).Error; err != nil {
		t.Fatalf("failed to seed content: %v", err)
	}
	return content.ID
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	enrollment := courseModels.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		Status:       "ENROLLED",
		ProgressData: datatypes.NewJSONType(courseModels.NewProgressData()),
		EnrolledAt:   time.Now(),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("failed to seed enrollment: %v", err)
	}
}

// fourQuestionInput builds a valid quiz payload with four one-point questions
func fourQuestionInput(title string) QuizInput {
	questions := make([]QuestionInput, 4)
	for i := range questions {
		questions[i] = QuestionInput{
			QuestionText:  "What is the answer?",
			Options:       []string{"alpha", "beta", "gamma", "delta"},
			CorrectAnswer: "alpha",
		}
	}
	return QuizInput{Title: title, Questions: questions}
}

// createQuiz persists a quiz through the engine and returns it with its questions
func createQuiz(t *testing.T, engine *QuizEngine, db *gorm.DB, tables config.Tables, moduleID uint, in QuizInput) (*courseModels.Quiz, []courseModels.QuizQuestion) {
	t.Helper()
	quiz, err := engine.CreateQuiz(moduleID, in)
	if err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}
	var questions []courseModels.QuizQuestion
	if err := db.Table(tables.QuestionsTable).
		Where("quiz_id = ?", quiz.ID).
		Order("order_index asc").
		Find(&questions).Error; err != nil {
		t.Fatalf("failed to load questions: %v", err)
	}
	return quiz, questions
}

// answersFor returns answers with the first correctCount questions answered
// correctly and the rest answered wrong
func answersFor(questions []courseModels.QuizQuestion, correctCount int) map[uint]string {
	answers := make(map[uint]string, len(questions))
	for i, q := range questions {
		if i < correctCount {
			answers[q.ID] = q.CorrectAnswer
		} else {
			answers[q.ID] = "beta"
		}
	}
	return answers
}
