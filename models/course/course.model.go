package course

import "gorm.io/gorm"

// Course represents a learning course published by an institute
type Course struct {
	gorm.Model
	InstituteID  uint   `json:"institute_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Duration     int64  `json:"duration" gorm:"default:0"`     // duration in hours
	Status       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
