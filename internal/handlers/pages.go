package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/knagata/taskflow/internal/errors"
	"github.com/knagata/taskflow/internal/middleware"
	"github.com/knagata/taskflow/internal/models"
	"github.com/knagata/taskflow/internal/services"
)

// PageHandler renders the authenticated HTML pages.
type PageHandler struct {
	taskService *services.TaskService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(taskService *services.TaskService) *PageHandler {
	return &PageHandler{
		taskService: taskService,
	}
}

// Dashboard renders the stats, recent and upcoming task panels.
func (h *PageHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	data, err := h.taskService.Dashboard(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"flashes":        takeFlashes(c),
		"stats":          data.Stats,
		"recent_tasks":   data.RecentTasks,
		"upcoming_tasks": data.UpcomingTasks,
	})
}

// Tasks renders the filtered task list. The archived partition is chosen
// by the literal query value "true"; everything else shows active tasks.
func (h *PageHandler) Tasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	statusFilter := c.Query("status")
	categoryFilter := c.Query("category")
	priorityFilter := c.Query("priority")
	showArchived := c.Query("archived") == "true"

	input := services.ListTasksInput{
		UserID:   userID,
		Archived: showArchived,
	}
	if statusFilter != "" {
		status := models.TaskStatus(statusFilter)
		input.Status = &status
	}
	if categoryFilter != "" {
		input.Category = &categoryFilter
	}
	if priorityFilter != "" {
		priority := models.TaskPriority(priorityFilter)
		input.Priority = &priority
	}

	result, err := h.taskService.List(input)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	c.HTML(http.StatusOK, "tasks.html", gin.H{
		"flashes":          takeFlashes(c),
		"tasks":            result.Tasks,
		"categories":       result.Categories,
		"current_status":   statusFilter,
		"current_category": categoryFilter,
		"current_priority": priorityFilter,
		"show_archived":    showArchived,
		"archived_count":   result.ArchivedCount,
	})
}
