// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task has the requested ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNameTaken is returned when another task already uses the name.
	ErrTaskNameTaken = errors.New("task name already taken")

	// ErrTaskNotUpdated is returned when an update matched no row.
	ErrTaskNotUpdated = errors.New("task not updated")

	// ErrTaskNotDeleted is returned when a soft delete matched no row.
	ErrTaskNotDeleted = errors.New("task not deleted")
)
