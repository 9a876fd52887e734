package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Augustwise/fullstack-task-manager/internal/constants"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	model "github.com/Augustwise/fullstack-task-manager/internal/models"
)

// TaskRepository never looks a task up without its owner: a task that
// belongs to someone else is reported exactly like a missing one.
type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

type TaskFields struct {
	Name        string
	Description string
	DueDate     *time.Time
	Priority    constants.Priority
}

func (r *TaskRepository) CreateTask(ctx context.Context, ownerID string, fields TaskFields, file model.Attachment) (*model.Task, error) {
	task := &model.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        fields.Name,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		CreatedAt:   r.now().UTC(),
		Priority:    fields.Priority,
		File:        file,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindOwned(ctx context.Context, id, ownerID string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Take(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByOwner orders by due date ascending with undated tasks first, the
// way an ascending sort treats missing values.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("CASE WHEN due_date IS NULL THEN 0 ELSE 1 END").
		Order("due_date asc").
		Order("created_at asc").
		Order("id asc").
		Find(&tasks).Error
	return tasks, err
}

// Update replaces the editable fields and returns the task as written
// together with the attachment the row held before. A nil file keeps the
// current attachment columns untouched. The read and the write share one
// locked transaction, so the returned previous attachment is the one this
// update displaced and no other.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID string, fields TaskFields, file *model.Attachment) (*model.Task, model.Attachment, error) {
	var (
		task     model.Task
		previous model.Attachment
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, id, ownerID, &task); err != nil {
			return err
		}
		previous = task.File

		values := map[string]interface{}{
			"name":        fields.Name,
			"description": fields.Description,
			"due_date":    fields.DueDate,
			"priority":    fields.Priority,
		}
		if file != nil {
			values["file_stored_filename"] = file.StoredFilename
			values["file_original_name"] = file.OriginalName
			values["file_mime_type"] = file.MimeType
			values["file_size_bytes"] = file.SizeBytes
		}

		res := tx.Model(&model.Task{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTaskNotFound
		}

		task.Name = fields.Name
		task.Description = fields.Description
		task.DueDate = fields.DueDate
		task.Priority = fields.Priority
		if file != nil {
			task.File = *file
		}
		return nil
	})
	if err != nil {
		return nil, model.Attachment{}, err
	}

	return &task, previous, nil
}

func (r *TaskRepository) ToggleCompleted(ctx context.Context, id, ownerID string) (*model.Task, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("completed", gorm.Expr("NOT completed"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrTaskNotFound
	}
	return r.FindOwned(ctx, id, ownerID)
}

// Delete removes an owned task and returns the attachment it held.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) (model.Attachment, error) {
	var task model.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, id, ownerID, &task); err != nil {
			return err
		}

		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Task{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return model.Attachment{}, err
	}

	return task.File, nil
}

// lockOwned loads an owned task with a row lock held until tx ends. sqlite
// has no row locks; there the single pooled connection serialises writers.
func lockOwned(tx *gorm.DB, id, ownerID string, task *model.Task) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Take(task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTaskNotFound
	}
	return err
}

// ReferencedFilenames returns every stored filename any task points at.
func (r *TaskRepository) ReferencedFilenames(ctx context.Context) (map[string]struct{}, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("file_stored_filename IS NOT NULL AND file_stored_filename <> ''").
		Pluck("file_stored_filename", &names).Error
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}
