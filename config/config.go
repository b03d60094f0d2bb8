package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP Password

	StorageApiURL string // Object storage upload endpoint
	StorageApiKey string
	UploadDir     string // Local fallback directory for uploads

	Tables Tables
}

// Tables enumerates the table names used by the learning services.
// Injected into each service at construction instead of package-level constants.
type Tables struct {
	QuizTable        string
	QuestionsTable   string
	SubmissionsTable string
	ProgressTable    string
	CourseTable      string
	ModulesTable     string
	ContentsTable    string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// DefaultTables returns the table names used unless overridden by environment.
func DefaultTables() Tables {
	return Tables{
		QuizTable:        "quizzes",
		QuestionsTable:   "quiz_questions",
		SubmissionsTable: "quiz_submissions",
		ProgressTable:    "quiz_progress",
		CourseTable:      "courses",
		ModulesTable:     "modules",
		ContentsTable:    "course_contents",
	}
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		StorageApiURL: getEnv("STORAGE_API_URL", ""),
		StorageApiKey: getEnv("STORAGE_API_KEY", ""),
		UploadDir:     getEnv("UPLOAD_DIR", "./public/uploads"),

		Tables: Tables{
			QuizTable:        getEnv("QUIZ_TABLE", "quizzes"),
			QuestionsTable:   getEnv("QUESTIONS_TABLE", "quiz_questions"),
			SubmissionsTable: getEnv("SUBMISSIONS_TABLE", "quiz_submissions"),
			ProgressTable:    getEnv("PROGRESS_TABLE", "quiz_progress"),
			CourseTable:      getEnv("COURSE_TABLE", "courses"),
			ModulesTable:     getEnv("MODULES_TABLE", "modules"),
			ContentsTable:    getEnv("CONTENTS_TABLE", "course_contents"),
		},
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
