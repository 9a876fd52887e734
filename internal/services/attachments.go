package services

import (
	"context"
	"mime"

	dto "github.com/Augustwise/fullstack-task-manager/internal/data_models"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	model "github.com/Augustwise/fullstack-task-manager/internal/models"
	"github.com/Augustwise/fullstack-task-manager/internal/storage"
)

const MaxAttachmentSize int64 = 10 << 20

// allowedMimeTypes maps each accepted type to the extension used for the
// stored name.
var allowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// NormalizeMimeType strips parameters and lowercases the media type.
func NormalizeMimeType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mediaType
}

// ValidateUpload runs before anything is written, so a rejected file never
// leaves a record or a blob behind.
func ValidateUpload(f *dto.UploadedFile) error {
	if f.Size > MaxAttachmentSize {
		return apperrors.ErrFileTooLarge
	}
	if _, ok := allowedMimeTypes[NormalizeMimeType(f.MimeType)]; !ok {
		return apperrors.ErrUnsupportedFileType
	}
	return nil
}

func (s *TaskService) storeUpload(ctx context.Context, f *dto.UploadedFile) (model.Attachment, error) {
	mimeType := NormalizeMimeType(f.MimeType)

	name, err := storage.NewName(allowedMimeTypes[mimeType])
	if err != nil {
		return model.Attachment{}, err
	}

	if err := s.storage.Save(ctx, name, f.Content, f.Size, mimeType); err != nil {
		return model.Attachment{}, err
	}

	return model.Attachment{
		StoredFilename: name,
		OriginalName:   f.OriginalName,
		MimeType:       mimeType,
		SizeBytes:      f.Size,
	}, nil
}

func (s *TaskService) discardUpload(ctx context.Context, name string) {
	if err := s.storage.Remove(context.WithoutCancel(ctx), name); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove unreferenced upload", "file", name, "error", err)
	}
}
