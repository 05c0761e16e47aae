package repository

import (
	"github.com/knagata/taskflow/internal/database"
	"github.com/knagata/taskflow/internal/models"
	"github.com/knagata/taskflow/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter, newest first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).
		Where("user_id = ?", filter.UserID).
		Where("archived = ?", filter.Archived)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update persists all fields of a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete permanently removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CountByUser counts a user's tasks, optionally narrowed to one status
func (r *GormTaskRepository) CountByUser(userID uint64, status *models.TaskStatus) (int64, error) {
	var count int64
	query := r.db.Model(&models.Task{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Count(&count).Error
	return count, err
}

// CountArchived counts a user's archived tasks
func (r *GormTaskRepository) CountArchived(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND archived = ?", userID, true).
		Count(&count).Error
	return count, err
}

// DistinctCategories lists the distinct non-empty categories a user has used
func (r *GormTaskRepository) DistinctCategories(userID uint64) ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND category IS NOT NULL AND category <> ''", userID).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// RecentByUser returns the most recently created tasks, archived included
func (r *GormTaskRepository) RecentByUser(userID uint64, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// UpcomingByUser returns unfinished tasks with a due date, earliest first
func (r *GormTaskRepository) UpcomingByUser(userID uint64, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Where("due_date IS NOT NULL").
		Where("status <> ?", models.TaskStatusCompleted).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}
