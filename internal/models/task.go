package model

import (
	"time"

	"github.com/Augustwise/fullstack-task-manager/internal/constants"
)

type Task struct {
	ID          string `gorm:"primaryKey;size:36"`
	OwnerID     string `gorm:"size:36;not null;index"`
	Name        string `gorm:"not null"`
	Description string
	DueDate     *time.Time         `gorm:"index"`
	CreatedAt   time.Time          `gorm:"not null"`
	Completed   bool               `gorm:"not null;default:false"`
	Priority    constants.Priority `gorm:"type:varchar(10);not null"`
	File        Attachment         `gorm:"embedded;embeddedPrefix:file_"`
}

// Attachment is owned by the task row it is embedded in. An empty
// StoredFilename means the task has no file.
type Attachment struct {
	StoredFilename string `gorm:"size:64"`
	OriginalName   string
	MimeType       string `gorm:"size:100"`
	SizeBytes      int64
}

func (a Attachment) Present() bool {
	return a.StoredFilename != ""
}
