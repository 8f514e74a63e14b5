// Package handler provides the HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"task_backend/internal/api"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/validation"
	"task_backend/internal/shared/chunk"
)

// Response messages.
const (
	MsgTaskList          = "All tasks List"
	MsgTaskCreated       = "Successfully task created"
	MsgTaskFetched       = "Successfully task fetched"
	MsgNoTaskFound       = "Sorry! No task found"
	MsgTaskUpdated       = "Task updated Successfully"
	MsgTaskUpdateFailed  = "Sorry! there was error while updating the task"
	MsgTaskNotFound      = "Sorry! Task not found"
	MsgTaskDeleted       = "Task is permanently deleted"
	MsgTaskSoftDeleted   = "Task is temporarily deleted"
	MsgTaskDeleteFailed  = "Sorry! there was error while deleted the task"
	MsgTaskNameTaken     = "The task name has already been taken."
	MsgSortByInvalid     = "Sort order should be asc or desc"
	MsgOrderByInvalid    = "Order by should be in taskName,status,id,dueDate"
	MsgInternalError     = "Internal server error"
	uniqueTaskNameRule   = "unique_task_name"
	uniqueTaskNameFormat = "The %s has already been taken."
)

// TaskUsecase defines the task operations used by the handler.
type TaskUsecase interface {
	List(ctx context.Context, q entity.TaskQuery) ([]entity.Task, error)
	Create(ctx context.Context, userID uint, name, description string, due entity.Date) (*entity.Task, error)
	Get(ctx context.Context, id uint) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id uint, permanent bool) error
	TaskNameTaken(ctx context.Context, name string, exceptID uint) (bool, error)
}

// Caller is the authenticated user stored by the Auth Gate.
type Caller interface {
	GetID() uint
}

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	tasks    TaskUsecase
	validate *validation.Validator
}

// NewTaskHandler creates a new TaskHandler with the unique_task_name rule
// backed by tasks.
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	h := &TaskHandler{tasks: tasks, validate: validation.New()}
	if err := h.validate.RegisterRule(uniqueTaskNameRule, h.uniqueTaskName, uniqueTaskNameFormat); err != nil {
		panic(err)
	}
	h.validate.SetMessage("orderBy", "oneof", MsgOrderByInvalid)
	h.validate.SetMessage("sortBy", "oneof", MsgSortByInvalid)
	return h
}

// uniqueTaskName passes when no other task has the name. A sibling TaskID
// field excludes that task from the check.
func (h *TaskHandler) uniqueTaskName(ctx context.Context, fl validator.FieldLevel) bool {
	var exceptID uint
	if f := reflect.Indirect(fl.Parent()).FieldByName("TaskID"); f.IsValid() && f.Kind() == reflect.String {
		if n, ok := validation.ParseInt(f.String()); ok && n > 0 {
			exceptID = uint(n)
		}
	}

	taken, err := h.tasks.TaskNameTaken(ctx, strings.TrimSpace(fl.Field().String()), exceptID)
	if err != nil {
		slog.Error("task name lookup failed", "error", err)
		return true
	}
	return !taken
}

// List handles GET|POST /tasks.
// - orderBy and sortBy are validated against fixed sets
// - status and dueDate filter by exact match when present
// - paginationLimit > 0 returns the list split into pages of that size
func (h *TaskHandler) List(c *gin.Context) {
	var req dto.ListTasksReq
	if !api.BindAndValidate(c, h.validate, &req) {
		return
	}

	q := entity.TaskQuery{OrderBy: entity.OrderByID}
	if !req.OrderBy.IsZero() {
		q.OrderBy = entity.TaskOrder(req.OrderBy.String())
	}
	q.Descending = req.SortBy.String() == "desc"
	if !req.Status.IsZero() {
		n, _ := validation.ParseInt(req.Status.String())
		status := entity.Status(n)
		q.Status = &status
	}
	if !req.DueDate.IsZero() {
		due := parseDate(req.DueDate)
		q.DueDate = &due
	}

	tasks, err := h.tasks.List(c.Request.Context(), q)
	if err != nil {
		h.internalError(c, "list tasks failed", err)
		return
	}

	items := dto.NewTaskItems(tasks)
	if limit := leadingInt(req.PaginationLimit.String()); limit > 0 {
		api.Write(c, api.Success(MsgTaskList, chunk.Split(items, limit)))
		return
	}
	api.Write(c, api.Success(MsgTaskList, items))
}

// Create handles POST /create. The caller becomes the owner.
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskReq
	if !api.BindAndValidate(c, h.validate, &req) {
		return
	}

	caller, ok := jwtmw.CurrentUser[Caller](c)
	if !ok {
		api.Write(c, api.Failure(http.StatusBadRequest, jwtmw.MsgTokenMissing))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), caller.GetID(),
		req.TaskName.String(), req.Description.String(), parseDate(req.DueDate))
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNameTaken) {
			api.Write(c, api.Failure(http.StatusBadRequest, MsgTaskNameTaken))
			return
		}
		h.internalError(c, "create task failed", err)
		return
	}

	slog.Info("task created", "task_id", task.ID, "user_id", task.UserID)
	api.Write(c, api.Success(MsgTaskCreated, dto.NewCreatedTask(task)))
}

// Show handles GET /tasks/:id. A non-numeric or unknown id is reported as
// no task found.
func (h *TaskHandler) Show(c *gin.Context) {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &id)
	if err != nil || id < 1 {
		api.Write(c, api.Failure(http.StatusBadRequest, MsgNoTaskFound))
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			api.Write(c, api.Failure(http.StatusBadRequest, MsgNoTaskFound))
			return
		}
		h.internalError(c, "get task failed", err)
		return
	}
	api.Write(c, api.Success(MsgTaskFetched, dto.NewTaskDetail(task)))
}

// Update handles POST /update. Every editable field is overwritten.
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskReq
	if !api.BindAndValidate(c, h.validate, &req) {
		return
	}

	id, _ := validation.ParseInt(req.TaskID.String())
	status, _ := validation.ParseInt(req.Status.String())
	err := h.tasks.Update(c.Request.Context(), &entity.Task{
		ID:          uint(id),
		TaskName:    req.TaskName.String(),
		Description: req.Description.String(),
		DueDate:     parseDate(req.DueDate),
		Status:      entity.Status(status),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotUpdated):
			api.Write(c, api.Failure(http.StatusBadRequest, MsgTaskUpdateFailed))
		case errors.Is(err, usecase.ErrTaskNameTaken):
			api.Write(c, api.Failure(http.StatusBadRequest, MsgTaskNameTaken))
		default:
			h.internalError(c, "update task failed", err)
		}
		return
	}
	api.Write(c, api.Success(MsgTaskUpdated, nil))
}

// Destroy handles POST /delete. isPermanentDelete=1 removes the row,
// otherwise the task is marked Deleted.
func (h *TaskHandler) Destroy(c *gin.Context) {
	var req dto.DeleteTaskReq
	if !api.BindAndValidate(c, h.validate, &req) {
		return
	}

	id, _ := validation.ParseInt(req.TaskID.String())
	permanent := req.IsPermanentDelete.String() == "1"

	if err := h.tasks.Delete(c.Request.Context(), uint(id), permanent); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			api.Write(c, api.Failure(http.StatusBadRequest, MsgTaskNotFound))
		case errors.Is(err, usecase.ErrTaskNotDeleted):
			api.Write(c, api.Failure(http.StatusBadRequest, MsgTaskDeleteFailed))
		default:
			h.internalError(c, "delete task failed", err)
		}
		return
	}

	if permanent {
		api.Write(c, api.Success(MsgTaskDeleted, nil))
		return
	}
	api.Write(c, api.Success(MsgTaskSoftDeleted, nil))
}

func (h *TaskHandler) internalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "path", c.FullPath())
	api.Write(c, api.Failure(http.StatusInternalServerError, MsgInternalError))
}

// parseDate converts an already validated date field.
func parseDate(s api.Scalar) entity.Date {
	t, _ := validation.ParseDate(s.String())
	return entity.NewDate(t)
}

// leadingInt reads the integer prefix of s: "3" and "3abc" give 3, anything
// without leading digits gives 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
