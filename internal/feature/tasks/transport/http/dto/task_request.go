// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

import "task_backend/internal/api"

// ListTasksReq holds the filters and ordering for the task list.
// PaginationLimit is coerced to an integer and never rejected.
type ListTasksReq struct {
	OrderBy         api.Scalar `json:"orderBy" form:"orderBy" validate:"omitempty,oneof=taskName status id dueDate"`
	SortBy          api.Scalar `json:"sortBy" form:"sortBy" validate:"omitempty,oneof=asc desc"`
	Status          api.Scalar `json:"status" form:"status" validate:"omitempty,integer"`
	DueDate         api.Scalar `json:"dueDate" form:"dueDate" validate:"omitempty,date"`
	PaginationLimit api.Scalar `json:"paginationLimit" form:"paginationLimit"`
}

// CreateTaskReq represents the request for /create.
type CreateTaskReq struct {
	TaskName    api.Scalar `json:"taskName" form:"taskName" validate:"required,notblank,unique_task_name"`
	Description api.Scalar `json:"description" form:"description" validate:"required,notblank"`
	DueDate     api.Scalar `json:"dueDate" form:"dueDate" validate:"required,notblank,date"`
}

// UpdateTaskReq represents the request for /update. TaskID must stay the
// first field: unique_task_name reads it to exclude the task being edited.
type UpdateTaskReq struct {
	TaskID      api.Scalar `json:"taskId" form:"taskId" validate:"required,notblank,integer,min_int=1"`
	TaskName    api.Scalar `json:"taskName" form:"taskName" validate:"required,notblank,unique_task_name"`
	Description api.Scalar `json:"description" form:"description" validate:"required,notblank"`
	DueDate     api.Scalar `json:"dueDate" form:"dueDate" validate:"required,notblank,date"`
	Status      api.Scalar `json:"status" form:"status" validate:"required,notblank,oneof=0 1 2 3"`
}

// DeleteTaskReq represents the request for /delete.
type DeleteTaskReq struct {
	TaskID            api.Scalar `json:"taskId" form:"taskId" validate:"required,notblank,integer,min_int=1"`
	IsPermanentDelete api.Scalar `json:"isPermanentDelete" form:"isPermanentDelete" validate:"required,notblank,integer,oneof=0 1"`
}
