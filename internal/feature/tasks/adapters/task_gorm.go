// Package adapters provides repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/db"
)

// taskGorm is a GORM implementation of the TaskRepository interface.
type taskGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure taskGorm implements TaskRepository.
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm creates a new instance of taskGorm.
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// Create inserts task, mapping a name collision to usecase.ErrTaskNameTaken.
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrTaskNameTaken
		}
		return err
	}
	return nil
}

// FindByID returns usecase.ErrTaskNotFound when no task has the ID.
func (r *taskGorm) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Query applies the exact-match filters of q and sorts by q.OrderBy, then id.
func (r *taskGorm) Query(ctx context.Context, q entity.TaskQuery) ([]entity.Task, error) {
	tx := r.db.WithContext(ctx).Model(&entity.Task{})
	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}
	if q.DueDate != nil {
		tx = tx.Where("due_date = ?", *q.DueDate)
	}

	column := q.OrderBy.Column()
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: q.Descending})
	if column != "id" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	tasks := []entity.Task{}
	if err := tx.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update overwrites the editable columns of task.ID.
func (r *taskGorm) Update(ctx context.Context, task *entity.Task) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"task_name":   task.TaskName,
			"description": task.Description,
			"due_date":    task.DueDate,
			"status":      task.Status,
		})
	if result.Error != nil {
		if db.IsDuplicateKey(result.Error) {
			return 0, usecase.ErrTaskNameTaken
		}
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateStatus sets the status column of one task.
func (r *taskGorm) UpdateStatus(ctx context.Context, id uint, status entity.Status) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// Delete removes the task row.
func (r *taskGorm) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entity.Task{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// NameExists reports whether a task other than exceptID is named name.
func (r *taskGorm) NameExists(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("task_name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	return count > 0, err
}
