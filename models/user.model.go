package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string `gorm:"default:''"`
	Name            string `gorm:"default:''"`
	Email           string `gorm:"unique;not null"`
	Mobile          string `gorm:"default:''"`
	Role            string `gorm:"default:'STUDENT'"` // STUDENT, INSTITUTE, RECRUITER, ADMIN
	Password        string `gorm:"not null"`
	InstituteName   string
	CompanyName     string
	ResumeURL       string
	Headline        string
	City            string
	State           string
	IsEmailVerified bool       `gorm:"default:false"`
	LastLogin       time.Time  `gorm:"default:NULL"`
	LastFailedLogin *time.Time `json:"last_failed_login"`
	IsBlocked       bool       `gorm:"default:false"`
	IsDeleted       bool       `gorm:"default:false"`
}
