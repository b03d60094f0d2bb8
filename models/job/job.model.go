package job

import (
	"time"

	"gorm.io/gorm"
)

// JobPosting represents a job opening published by a recruiter
type JobPosting struct {
	gorm.Model
	RecruiterID uint       `json:"recruiter_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	Description string     `json:"description" gorm:"type:text"`
	CompanyName string     `json:"company_name"`
	Location    string     `json:"location"`
	SalaryMin   int64      `json:"salary_min" gorm:"default:0"`
	SalaryMax   int64      `json:"salary_max" gorm:"default:0"`
	JobType     string     `json:"job_type" gorm:"default:'FULL_TIME'"` // FULL_TIME, PART_TIME, INTERNSHIP
	Status      string     `json:"status" gorm:"default:'OPEN'"`        // OPEN, CLOSED
	ExpiresAt   *time.Time `json:"expires_at"`
	IsDeleted   bool       `gorm:"default:false"`
}

// JobApplication represents a student's application to a job posting
type JobApplication struct {
	gorm.Model
	JobID       uint   `json:"job_id" gorm:"index;not null"`
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	ResumeURL   string `json:"resume_url"`
	CoverLetter string `json:"cover_letter" gorm:"type:text"`
	Status      string `json:"status" gorm:"default:'APPLIED'"` // APPLIED, SHORTLISTED, REJECTED, HIRED
	IsDeleted   bool   `gorm:"default:false"`
}
