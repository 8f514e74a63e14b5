package dto

import (
	"time"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskItem is one row of the task list.
type TaskItem struct {
	ID          uint          `json:"id"`
	UserID      uint          `json:"user_id"`
	TaskName    string        `json:"taskName"`
	Description string        `json:"description"`
	Status      entity.Status `json:"status"`
	DueDate     entity.Date   `json:"dueDate"`
}

// NewTaskItems converts tasks to list rows. The result is never nil.
func NewTaskItems(tasks []entity.Task) []TaskItem {
	items := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, TaskItem{
			ID:          t.ID,
			UserID:      t.UserID,
			TaskName:    t.TaskName,
			Description: t.Description,
			Status:      t.Status,
			DueDate:     t.DueDate,
		})
	}
	return items
}

// TaskDetail is the body of /tasks/:id.
type TaskDetail struct {
	ID          uint          `json:"id"`
	TaskName    string        `json:"taskName"`
	Status      entity.Status `json:"status"`
	Description string        `json:"description"`
	DueDate     entity.Date   `json:"dueDate"`
	TaskStatus  string        `json:"taskStatus"`
}

// NewTaskDetail converts t and adds its status label.
func NewTaskDetail(t *entity.Task) TaskDetail {
	return TaskDetail{
		ID:          t.ID,
		TaskName:    t.TaskName,
		Status:      t.Status,
		Description: t.Description,
		DueDate:     t.DueDate,
		TaskStatus:  t.Status.Label(),
	}
}

// CreatedTask is the stored record returned by /create.
type CreatedTask struct {
	ID          uint          `json:"id"`
	UserID      uint          `json:"user_id"`
	TaskName    string        `json:"taskName"`
	Description string        `json:"description"`
	DueDate     entity.Date   `json:"dueDate"`
	Status      entity.Status `json:"status"`
	TaskStatus  string        `json:"taskStatus"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewCreatedTask converts t and adds its status label.
func NewCreatedTask(t *entity.Task) CreatedTask {
	return CreatedTask{
		ID:          t.ID,
		UserID:      t.UserID,
		TaskName:    t.TaskName,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		TaskStatus:  t.Status.Label(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
