package services

import (
	"testing"
	"time"

	"github.com/knagata/taskflow/internal/models"
	"github.com/knagata/taskflow/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaskServiceTest(t *testing.T) (*gorm.DB, *TaskService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	return db, NewTaskService(repository.NewTaskRepository(db))
}

func createServiceTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestDashboard_StatusCounts(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	user := createServiceTestUser(t, db, "alice")
	other := createServiceTestUser(t, db, "bob")

	seed := []models.Task{
		{Title: "p1", UserID: user.ID, Status: models.TaskStatusPending},
		{Title: "p2", UserID: user.ID, Status: models.TaskStatusPending},
		{Title: "w1", UserID: user.ID, Status: models.TaskStatusInProgress},
		{Title: "c1", UserID: user.ID, Status: models.TaskStatusCompleted},
		{Title: "archived still counts", UserID: user.ID, Status: models.TaskStatusPending, Archived: true},
		{Title: "not mine", UserID: other.ID, Status: models.TaskStatusCompleted},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	data, err := service.Dashboard(user.ID)
	require.NoError(t, err)

	require.EqualValues(t, 5, data.Stats.Total)
	require.EqualValues(t, 3, data.Stats.Pending)
	require.EqualValues(t, 1, data.Stats.InProgress)
	require.EqualValues(t, 1, data.Stats.Completed)
}

func TestDashboard_RecentTasksNewestFirstCapped(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	user := createServiceTestUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		task := models.Task{
			Title:     "task",
			UserID:    user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i == 6 {
			task.Title = "newest"
			task.Archived = true
		}
		require.NoError(t, db.Create(&task).Error)
	}

	data, err := service.Dashboard(user.ID)
	require.NoError(t, err)

	require.Len(t, data.RecentTasks, 5)
	// Archived tasks still show up in the recency list.
	require.Equal(t, "newest", data.RecentTasks[0].Title)
	require.True(t, data.RecentTasks[0].Archived)
	for i := 1; i < len(data.RecentTasks); i++ {
		require.False(t, data.RecentTasks[i].CreatedAt.After(data.RecentTasks[i-1].CreatedAt))
	}
}

func TestDashboard_UpcomingExcludesCompletedAndUndated(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	user := createServiceTestUser(t, db, "alice")

	day := func(offset int) *time.Time {
		d := time.Now().AddDate(0, 0, offset)
		return &d
	}

	seed := []models.Task{
		{Title: "later", UserID: user.ID, DueDate: day(10)},
		{Title: "soonest", UserID: user.ID, DueDate: day(1)},
		{Title: "middle", UserID: user.ID, DueDate: day(5)},
		{Title: "done", UserID: user.ID, DueDate: day(2), Status: models.TaskStatusCompleted},
		{Title: "no due date", UserID: user.ID},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	data, err := service.Dashboard(user.ID)
	require.NoError(t, err)

	require.Len(t, data.UpcomingTasks, 3)
	require.Equal(t, "soonest", data.UpcomingTasks[0].Title)
	require.Equal(t, "middle", data.UpcomingTasks[1].Title)
	require.Equal(t, "later", data.UpcomingTasks[2].Title)
}

func TestList_CategoriesAndArchivedCountIgnoreFilters(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	user := createServiceTestUser(t, db, "alice")
	other := createServiceTestUser(t, db, "bob")

	seed := []models.Task{
		{Title: "a", UserID: user.ID, Category: "work"},
		{Title: "b", UserID: user.ID, Category: "home"},
		{Title: "c", UserID: user.ID, Category: "work", Archived: true},
		{Title: "d", UserID: user.ID, Category: ""},
		{Title: "foreign", UserID: other.ID, Category: "secret"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	category := "home"
	result, err := service.List(ListTasksInput{UserID: user.ID, Category: &category})
	require.NoError(t, err)

	require.Len(t, result.Tasks, 1)
	require.Equal(t, "b", result.Tasks[0].Title)
	// The category dropdown and the archive badge describe the whole
	// collection, not the filtered view.
	require.Equal(t, []string{"home", "work"}, result.Categories)
	require.EqualValues(t, 1, result.ArchivedCount)
}

func TestList_StatusFilterWithinArchivedPartition(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	user := createServiceTestUser(t, db, "alice")

	seed := []models.Task{
		{Title: "active pending", UserID: user.ID, Status: models.TaskStatusPending},
		{Title: "archived pending", UserID: user.ID, Status: models.TaskStatusPending, Archived: true},
		{Title: "archived done", UserID: user.ID, Status: models.TaskStatusCompleted, Archived: true},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	status := models.TaskStatusPending
	result, err := service.List(ListTasksInput{UserID: user.ID, Archived: true, Status: &status})
	require.NoError(t, err)

	require.Len(t, result.Tasks, 1)
	require.Equal(t, "archived pending", result.Tasks[0].Title)
}

func TestGet_OwnershipBeforeExistence(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	owner := createServiceTestUser(t, db, "alice")
	intruder := createServiceTestUser(t, db, "mallory")

	task := models.Task{Title: "private", UserID: owner.ID}
	require.NoError(t, db.Create(&task).Error)

	_, err := service.Get(task.ID, intruder.ID)
	require.ErrorIs(t, err, ErrNotTaskOwner)

	_, err = service.Get(9999, owner.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdate_ForeignTaskRejected(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	owner := createServiceTestUser(t, db, "alice")
	intruder := createServiceTestUser(t, db, "mallory")

	task := models.Task{Title: "private", UserID: owner.ID}
	require.NoError(t, db.Create(&task).Error)

	title := "defaced"
	_, err := service.Update(task.ID, intruder.ID, UpdateTaskInput{Title: &title})
	require.ErrorIs(t, err, ErrNotTaskOwner)

	var stored models.Task
	require.NoError(t, db.First(&stored, task.ID).Error)
	require.Equal(t, "private", stored.Title)
}

func TestArchive_Toggle(t *testing.T) {
	db, service := setupTaskServiceTest(t)
	user := createServiceTestUser(t, db, "alice")

	task := models.Task{Title: "toggle me", UserID: user.ID}
	require.NoError(t, db.Create(&task).Error)

	updated, err := service.Archive(task.ID, user.ID, nil)
	require.NoError(t, err)
	require.True(t, updated.Archived)

	updated, err = service.Archive(task.ID, user.ID, nil)
	require.NoError(t, err)
	require.False(t, updated.Archived)
}
