package entity

// TaskOrder is a sortable task attribute, named as clients send it.
type TaskOrder string

const (
	OrderByID       TaskOrder = "id"
	OrderByTaskName TaskOrder = "taskName"
	OrderByStatus   TaskOrder = "status"
	OrderByDueDate  TaskOrder = "dueDate"
)

// Column returns the database column for o. Unknown values sort by id.
func (o TaskOrder) Column() string {
	switch o {
	case OrderByTaskName:
		return "task_name"
	case OrderByStatus:
		return "status"
	case OrderByDueDate:
		return "due_date"
	default:
		return "id"
	}
}

// TaskQuery selects and orders tasks. Nil filters match everything.
type TaskQuery struct {
	Status     *Status
	DueDate    *Date
	OrderBy    TaskOrder
	Descending bool
}
