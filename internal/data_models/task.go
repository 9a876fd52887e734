package dto

import (
	"io"
	"time"

	"github.com/Augustwise/fullstack-task-manager/internal/constants"
	model "github.com/Augustwise/fullstack-task-manager/internal/models"
)

// TaskRequestData is the parsed form of a create or edit request.
type TaskRequestData struct {
	Name        string
	Description string
	DueDate     *time.Time
	Priority    constants.Priority
	File        *UploadedFile
}

// UploadedFile is a file part accepted from a multipart form. Content is
// owned by the caller and must be closed by it.
type UploadedFile struct {
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

type AttachmentResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

type TaskResponse struct {
	ID          string              `json:"_id"`
	UserID      string              `json:"userId"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	Completed   bool                `json:"completed"`
	Priority    constants.Priority  `json:"priority"`
	File        *AttachmentResponse `json:"file,omitempty"`
}

func NewTaskResponse(t model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Name:        t.Name,
		Description: t.Description,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		Completed:   t.Completed,
		Priority:    t.Priority,
	}
	if t.File.Present() {
		resp.File = &AttachmentResponse{
			Filename:     t.File.StoredFilename,
			OriginalName: t.File.OriginalName,
			MimeType:     t.File.MimeType,
			Size:         t.File.SizeBytes,
		}
	}
	return resp
}

func NewTaskListResponse(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
