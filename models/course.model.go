package models

import (
	"time"

	"gorm.io/datatypes"
)

// Course levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// FileUpload is a resource attached to a syllabus item.
type FileUpload struct {
	FileName   string    `json:"fileName"`
	FileUrl    string    `json:"fileUrl"`
	FileType   string    `json:"fileType,omitempty"` // e.g. pdf, docx, pptx, zip
	FileSize   string    `json:"fileSize,omitempty"` // e.g. "2.5 MB"
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
}

// SyllabusItem is one module/topic entry of a course syllabus.
type SyllabusItem struct {
	Module       string       `json:"module"`
	Topic        string       `json:"topic"`
	YoutubeLinks []string     `json:"youtubeLinks,omitempty"`
	FileUploads  []FileUpload `json:"fileUploads,omitempty"`
}

// Course is a catalog entry. Code is stored uppercase. Enrolled is a
// denormalized counter kept for display; listing endpoints and the
// reconciliation sweep derive the authoritative number from the enrollments
// table.
type Course struct {
	ID          uint                              `gorm:"primarykey" json:"id"`
	Title       string                            `gorm:"not null" json:"title"`
	Code        string                            `gorm:"uniqueIndex;not null" json:"code"`
	Category    string                            `gorm:"index" json:"category"`
	Description string                            `json:"description"`
	Instructor  string                            `json:"instructor"` // free-text name, not a User reference
	Duration    string                            `json:"duration"`
	Level       string                            `gorm:"index" json:"level"`
	MaxStudents int                               `gorm:"not null" json:"maxStudents"`
	Enrolled    int                               `gorm:"default:0" json:"enrolled"`
	StartDate   time.Time                         `json:"startDate"`
	EndDate     time.Time                         `json:"endDate"`
	Syllabus    datatypes.JSONSlice[SyllabusItem] `json:"syllabus"`
	IsActive    bool                              `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time                         `json:"createdAt"`
	UpdatedAt   time.Time                         `json:"updatedAt"`
}
