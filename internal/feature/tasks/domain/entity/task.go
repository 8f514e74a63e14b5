// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Status is the lifecycle state of a task. Transitions are not restricted.
type Status int

const (
	StatusPending    Status = 0
	StatusInProgress Status = 1
	StatusCompleted  Status = 2
	StatusDeleted    Status = 3
)

// Label returns the display name of s. Unknown values read as Deleted.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "Inprogress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Deleted"
	}
}

// Task is a unit of work owned by the user who created it.
type Task struct {
	ID uint `gorm:"primaryKey"`

	// UserID is the creator. It is never reassigned.
	UserID uint `gorm:"index;not null"`

	// TaskName is unique across all users.
	TaskName string `gorm:"uniqueIndex;size:255;not null"`

	Description string `gorm:"type:text;not null"`
	Status      Status `gorm:"not null"`
	DueDate     Date   `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
