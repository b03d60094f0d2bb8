package database

import (
	"campushire/config"
	"campushire/models"
	courseModels "campushire/models/course"
	jobModels "campushire/models/job"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db, config.AppConfig.Tables); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations. The learning tables pick up
// their names from the injected table configuration.
func RunMigrations(db *gorm.DB, tables config.Tables) error {
	log.Println("Running Migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
		&jobModels.JobPosting{},
		&jobModels.JobApplication{},
	); err != nil {
		return err
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
			return err
		}
	}

	log.Println("Migrations completed successfully.")
	return nil
}
