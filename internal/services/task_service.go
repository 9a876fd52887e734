package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/Augustwise/fullstack-task-manager/internal/constants"
	dto "github.com/Augustwise/fullstack-task-manager/internal/data_models"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	model "github.com/Augustwise/fullstack-task-manager/internal/models"
	repository "github.com/Augustwise/fullstack-task-manager/internal/repositories"
	"github.com/Augustwise/fullstack-task-manager/internal/storage"
)

type TaskService struct {
	repo    *repository.TaskRepository
	storage storage.Storage
	cleanup *CleanupPool
	logger  *slog.Logger
}

func NewTaskService(
	repo *repository.TaskRepository,
	store storage.Storage,
	cleanup *CleanupPool,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		repo:    repo,
		storage: store,
		cleanup: cleanup,
		logger:  logger,
	}
}

// Attachment is an opened stored file ready to be streamed.
type Attachment struct {
	Content      io.ReadCloser
	OriginalName string
	MimeType     string
	Size         int64
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, data dto.TaskRequestData) (*model.Task, error) {
	if err := validateTaskRequest(data); err != nil {
		return nil, err
	}

	var file model.Attachment
	if data.File != nil {
		stored, err := s.storeUpload(ctx, data.File)
		if err != nil {
			return nil, err
		}
		file = stored
	}

	task, err := s.repo.CreateTask(ctx, ownerID, taskFields(data), file)
	if err != nil {
		if file.Present() {
			s.discardUpload(ctx, file.StoredFilename)
		}
		return nil, err
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateTask replaces the editable fields of an owned task. A new file
// replaces the attachment; the blob removed afterwards is the one the row
// held when the update committed.
func (s *TaskService) UpdateTask(ctx context.Context, id, ownerID string, data dto.TaskRequestData) (*model.Task, error) {
	if err := validateTaskRequest(data); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindOwned(ctx, id, ownerID); err != nil {
		return nil, err
	}

	var replacement *model.Attachment
	if data.File != nil {
		stored, err := s.storeUpload(ctx, data.File)
		if err != nil {
			return nil, err
		}
		replacement = &stored
	}

	task, previous, err := s.repo.Update(ctx, id, ownerID, taskFields(data), replacement)
	if err != nil {
		if replacement != nil {
			s.discardUpload(ctx, replacement.StoredFilename)
		}
		return nil, err
	}

	if replacement != nil && previous.Present() && previous.StoredFilename != replacement.StoredFilename {
		s.cleanup.Enqueue(previous.StoredFilename)
	}

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id, ownerID string) error {
	removed, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if removed.Present() {
		s.cleanup.Enqueue(removed.StoredFilename)
	}
	return nil
}

func (s *TaskService) ToggleCompleted(ctx context.Context, id, ownerID string) (*model.Task, error) {
	return s.repo.ToggleCompleted(ctx, id, ownerID)
}

// OpenAttachment returns the stored file of an owned task. The caller
// closes Content.
func (s *TaskService) OpenAttachment(ctx context.Context, id, ownerID string) (*Attachment, error) {
	task, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !task.File.Present() {
		return nil, apperrors.ErrNoAttachment
	}

	rc, err := s.storage.Open(ctx, task.File.StoredFilename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			s.logger.WarnContext(ctx, "attachment metadata without stored file",
				"task_id", task.ID, "file", task.File.StoredFilename)
			return nil, apperrors.ErrAttachmentMissing
		}
		return nil, err
	}

	return &Attachment{
		Content:      rc,
		OriginalName: task.File.OriginalName,
		MimeType:     task.File.MimeType,
		Size:         task.File.SizeBytes,
	}, nil
}

// SweepResult reports what a sweep found.
type SweepResult struct {
	Scanned int
	Orphans []string
	Removed int
}

// SweepOrphanedFiles removes stored blobs no task references. Blobs younger
// than grace are skipped so an upload whose record is still being written
// is left alone.
func (s *TaskService) SweepOrphanedFiles(ctx context.Context, dryRun bool, grace time.Duration) (SweepResult, error) {
	var result SweepResult

	referenced, err := s.repo.ReferencedFilenames(ctx)
	if err != nil {
		return result, err
	}

	objects, err := s.storage.List(ctx)
	if err != nil {
		return result, err
	}

	cutoff := time.Now().Add(-grace)
	for _, obj := range objects {
		result.Scanned++
		if _, ok := referenced[obj.Name]; ok {
			continue
		}
		if !obj.ModTime.IsZero() && obj.ModTime.After(cutoff) {
			continue
		}

		result.Orphans = append(result.Orphans, obj.Name)
		if dryRun {
			continue
		}

		if err := s.storage.Remove(ctx, obj.Name); err != nil {
			s.logger.ErrorContext(ctx, "sweep: failed to remove orphan", "file", obj.Name, "error", err)
			continue
		}
		result.Removed++
	}

	s.logger.InfoContext(ctx, "sweep finished",
		"provider", s.storage.Provider(),
		"scanned", result.Scanned,
		"orphans", len(result.Orphans),
		"removed", result.Removed,
		"dry_run", dryRun,
	)
	return result, nil
}

func validateTaskRequest(data dto.TaskRequestData) error {
	if data.Name == "" {
		return apperrors.ErrTaskNameRequired
	}
	if data.File != nil {
		return ValidateUpload(data.File)
	}
	return nil
}

func taskFields(data dto.TaskRequestData) repository.TaskFields {
	return repository.TaskFields{
		Name:        data.Name,
		Description: data.Description,
		DueDate:     data.DueDate,
		Priority:    constants.ParsePriority(string(data.Priority)),
	}
}
