package usecase

import (
	"context"
	"fmt"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository abstracts the persistence layer for tasks.
type TaskRepository interface {
	// Create stores task. It returns ErrTaskNameTaken on a duplicate name.
	Create(ctx context.Context, task *entity.Task) error

	// FindByID returns ErrTaskNotFound if no task has the ID.
	FindByID(ctx context.Context, id uint) (*entity.Task, error)

	// Query returns the tasks matching q in q's order.
	Query(ctx context.Context, q entity.TaskQuery) ([]entity.Task, error)

	// Update overwrites name, description, due date and status of the task
	// with task.ID and reports the number of rows matched.
	Update(ctx context.Context, task *entity.Task) (int64, error)

	// UpdateStatus sets the status of one task and reports the rows matched.
	UpdateStatus(ctx context.Context, id uint, status entity.Status) (int64, error)

	// Delete removes the task row and reports the rows removed.
	Delete(ctx context.Context, id uint) (int64, error)

	// NameExists reports whether a task other than exceptID uses name.
	NameExists(ctx context.Context, name string, exceptID uint) (bool, error)
}

// taskUsecase implements the task business logic.
// Tasks are not filtered by owner.
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase creates a new taskUsecase.
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// List returns the tasks matching q.
func (u *taskUsecase) List(ctx context.Context, q entity.TaskQuery) ([]entity.Task, error) {
	tasks, err := u.tasks.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create stores a new pending task owned by userID.
func (u *taskUsecase) Create(ctx context.Context, userID uint, name, description string, due entity.Date) (*entity.Task, error) {
	task := &entity.Task{
		UserID:      userID,
		TaskName:    name,
		Description: description,
		DueDate:     due,
		Status:      entity.StatusPending,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the task with id.
func (u *taskUsecase) Get(ctx context.Context, id uint) (*entity.Task, error) {
	return u.tasks.FindByID(ctx, id)
}

// Update overwrites the editable fields of task.ID.
func (u *taskUsecase) Update(ctx context.Context, task *entity.Task) error {
	n, err := u.tasks.Update(ctx, task)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotUpdated
	}
	return nil
}

// Delete removes the task when permanent is set and marks it Deleted otherwise.
func (u *taskUsecase) Delete(ctx context.Context, id uint, permanent bool) error {
	if _, err := u.tasks.FindByID(ctx, id); err != nil {
		return err
	}

	if permanent {
		if _, err := u.tasks.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	}

	n, err := u.tasks.UpdateStatus(ctx, id, entity.StatusDeleted)
	if err != nil {
		return fmt.Errorf("failed to mark task deleted: %w", err)
	}
	if n == 0 {
		return ErrTaskNotDeleted
	}
	return nil
}

// TaskNameTaken reports whether a task other than exceptID is named name.
func (u *taskUsecase) TaskNameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	return u.tasks.NameExists(ctx, name, exceptID)
}
