package repository

import (
	"github.com/knagata/taskflow/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists all fields of a task
	Update(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error

	// CountByUser counts a user's tasks, optionally narrowed to one status
	CountByUser(userID uint64, status *models.TaskStatus) (int64, error)

	// CountArchived counts a user's archived tasks
	CountArchived(userID uint64) (int64, error)

	// DistinctCategories lists the distinct non-empty categories a user has used
	DistinctCategories(userID uint64) ([]string, error)

	// RecentByUser returns the most recently created tasks, archived included
	RecentByUser(userID uint64, limit int) ([]models.Task, error)

	// UpcomingByUser returns unfinished tasks with a due date, earliest first
	UpcomingByUser(userID uint64, limit int) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks. Archived always
// partitions the result; the optional fields narrow it by exact match.
type TaskFilter struct {
	UserID   uint64
	Archived bool
	Status   *models.TaskStatus
	Category *string
	Priority *models.TaskPriority
	Page     int
	PageSize int
}
