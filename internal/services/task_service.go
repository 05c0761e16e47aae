package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/knagata/taskflow/internal/constants"
	"github.com/knagata/taskflow/internal/models"
	"github.com/knagata/taskflow/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrNotTaskOwner  = errors.New("task does not belong to the user")
	ErrTitleRequired = errors.New("title is required")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// DashboardStats holds per-status task counts for a user
type DashboardStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
}

// DashboardData aggregates everything the dashboard page shows
type DashboardData struct {
	Stats         DashboardStats
	RecentTasks   []models.Task
	UpcomingTasks []models.Task
}

// Dashboard computes the status counts, the five most recently created
// tasks (archived included) and up to five unfinished tasks with the
// earliest due dates.
func (s *TaskService) Dashboard(userID uint64) (*DashboardData, error) {
	data := &DashboardData{}

	total, err := s.taskRepo.CountByUser(userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	data.Stats.Total = total

	statusCounts := []struct {
		status models.TaskStatus
		dest   *int64
	}{
		{models.TaskStatusCompleted, &data.Stats.Completed},
		{models.TaskStatusPending, &data.Stats.Pending},
		{models.TaskStatusInProgress, &data.Stats.InProgress},
	}
	for _, sc := range statusCounts {
		status := sc.status
		count, err := s.taskRepo.CountByUser(userID, &status)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s tasks: %w", status, err)
		}
		*sc.dest = count
	}

	recent, err := s.taskRepo.RecentByUser(userID, constants.RecentTaskLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent tasks: %w", err)
	}
	data.RecentTasks = recent

	upcoming, err := s.taskRepo.UpcomingByUser(userID, constants.UpcomingTaskLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming tasks: %w", err)
	}
	data.UpcomingTasks = upcoming

	return data, nil
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID   uint64
	Archived bool
	Status   *models.TaskStatus
	Category *string
	Priority *models.TaskPriority
	Page     int
	PageSize int
}

// TaskListResult holds a filtered task listing with the filter metadata
// the UI needs: the distinct categories ever used and the archived count,
// both independent of the requested filters.
type TaskListResult struct {
	Tasks         []models.Task
	Total         int64
	Categories    []string
	ArchivedCount int64
}

// List returns the user's tasks in the requested archived partition,
// narrowed by the supplied filters, newest first.
func (s *TaskService) List(input ListTasksInput) (*TaskListResult, error) {
	filter := repository.TaskFilter{
		UserID:   input.UserID,
		Archived: input.Archived,
		Status:   input.Status,
		Category: input.Category,
		Priority: input.Priority,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	categories, err := s.taskRepo.DistinctCategories(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	archivedCount, err := s.taskRepo.CountArchived(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count archived tasks: %w", err)
	}

	return &TaskListResult{
		Tasks:         tasks,
		Total:         total,
		Categories:    categories,
		ArchivedCount: archivedCount,
	}, nil
}

// Get returns a task after checking ownership
func (s *TaskService) Get(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task. DueDate is
// expected to be parsed-or-nil already; a malformed client value never
// reaches this layer.
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description string
	Category    string
	Priority    models.TaskPriority
	Status      models.TaskStatus
	Notes       string
	DueDate     *time.Time
}

// Create creates a new task owned by the caller
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}

	task := &models.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      input.Status,
		Notes:       input.Notes,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial update. Nil pointers mean the field
// was absent from the request and stays untouched. The due date carries
// three states: DueDate set replaces the value, ClearDueDate unsets it,
// neither leaves it alone.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Category     *string
	Priority     *models.TaskPriority
	Status       *models.TaskStatus
	Notes        *string
	DueDate      *time.Time
	ClearDueDate bool
}

// Update applies a partial update to an owned task, then reconciles
// CompletedAt: stamped once when the task is completed, cleared whenever
// it is not.
func (s *TaskService) Update(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if task.Status == models.TaskStatusCompleted {
		if task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Archive sets the archived flag to the supplied value, or toggles it
// when no value is given.
func (s *TaskService) Archive(taskID, userID uint64, archived *bool) (*models.Task, error) {
	task, err := s.Get(taskID, userID)
	if err != nil {
		return nil, err
	}

	if archived != nil {
		task.Archived = *archived
	} else {
		task.Archived = !task.Archived
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete permanently removes an owned task
func (s *TaskService) Delete(taskID, userID uint64) error {
	task, err := s.Get(taskID, userID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
