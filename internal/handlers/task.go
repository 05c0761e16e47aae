package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knagata/taskflow/internal/dto"
	apierrors "github.com/knagata/taskflow/internal/errors"
	"github.com/knagata/taskflow/internal/middleware"
	"github.com/knagata/taskflow/internal/models"
	"github.com/knagata/taskflow/internal/services"
	"github.com/knagata/taskflow/internal/utils"
)

// TaskHandler serves the JSON task API.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the caller's tasks with the same filters as the HTML
// list, paginated.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		UserID:   userID,
		Archived: c.Query("archived") == "true",
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		input.Status = &status
	}
	if v := c.Query("category"); v != "" {
		input.Category = &v
	}
	if v := c.Query("priority"); v != "" {
		priority := models.TaskPriority(v)
		input.Priority = &priority
	}

	result, err := h.taskService.List(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(result.Tasks, params, result.Total))
}

// GetTask returns the task loaded by the ownership middleware.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// CreateTask creates a new task owned by the caller. A malformed due_date
// string is ignored and the task is stored without one.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Priority    string `json:"priority"`
		Status      string `json:"status"`
		Notes       string `json:"notes"`
		DueDate     string `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		Notes:       req.Notes,
	}
	if req.DueDate != "" {
		input.DueDate = utils.ParseDueDate(req.DueDate)
	}

	task, err := h.taskService.Create(input)
	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// UpdateTask applies a partial update. The raw body is inspected per key
// so that an absent field, an explicit null and a value stay
// distinguishable, which the due_date semantics depend on.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if v, ok := rawReq["title"]; ok {
		if s, ok := v.(string); ok {
			input.Title = &s
		}
	}
	if v, ok := rawReq["description"]; ok {
		if s, ok := v.(string); ok {
			input.Description = &s
		}
	}
	if v, ok := rawReq["category"]; ok {
		if s, ok := v.(string); ok {
			input.Category = &s
		}
	}
	if v, ok := rawReq["priority"]; ok {
		if s, ok := v.(string); ok {
			priority := models.TaskPriority(s)
			input.Priority = &priority
		}
	}
	if v, ok := rawReq["status"]; ok {
		if s, ok := v.(string); ok {
			status := models.TaskStatus(s)
			input.Status = &status
		}
	}
	if v, ok := rawReq["notes"]; ok {
		if s, ok := v.(string); ok {
			input.Notes = &s
		}
	}
	if v, ok := rawReq["due_date"]; ok {
		// Present with a non-empty string: reparse, keep the old value on
		// failure. Present with null or an empty value: clear.
		if s, ok := v.(string); ok && s != "" {
			if parsed := utils.ParseDueDate(s); parsed != nil {
				input.DueDate = parsed
			}
		} else {
			input.ClearDueDate = true
		}
	}

	updated, err := h.taskService.Update(task.ID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*updated))
}

// ArchiveTask sets or toggles the archived flag.
func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	rawReq := map[string]any{}
	// An empty body means toggle, so a bind failure is not an error here.
	_ = c.ShouldBindJSON(&rawReq)

	var archived *bool
	if v, ok := rawReq["archived"]; ok {
		if b, ok := v.(bool); ok {
			archived = &b
		}
	}

	updated, err := h.taskService.Archive(task.ID, userID, archived)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*updated))
}

// DeleteTask permanently removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.Delete(task.ID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Task deleted",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, "Unauthorized")
	default:
		apierrors.InternalError(c, "")
	}
}
