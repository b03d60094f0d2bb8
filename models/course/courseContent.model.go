package course

import "gorm.io/gorm"

// CourseContent represents a single content item within a module
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, DOCUMENT, ASSIGNMENT, QUIZ
	TextContent string `json:"text_content" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	DocumentURL string `json:"document_url"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Order within module
	IsMandatory bool   `json:"is_mandatory" gorm:"default:true"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
