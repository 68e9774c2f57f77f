package task

import (
	"errors"
	"testing"
	"time"

	domain "github.com/Community-Programmer/task-manager/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestTask(userID, title string) *domain.Task {
	now := time.Now()
	return &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	task := newTestTask("user-a", "Write report")
	task.Description = "Quarterly numbers"

	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	if found.Title != task.Title {
		t.Errorf("found.Title = %q, want %q", found.Title, task.Title)
	}
	if found.Description != task.Description {
		t.Errorf("found.Description = %q, want %q", found.Description, task.Description)
	}
	if found.UserID != "user-a" {
		t.Errorf("found.UserID = %q, want %q", found.UserID, "user-a")
	}
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	_, err := repo.FindByID("no-such-task")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() error = %v, want %v", err, ErrTaskNotFound)
	}
}

func TestTaskRepository_FindAllByOwner(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	for _, title := range []string{"T1", "T2", "T3"} {
		if err := repo.Create(newTestTask("user-a", title)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.Create(newTestTask("user-b", "Other user's task")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tasks, err := repo.FindAllByOwner("user-a")
	if err != nil {
		t.Fatalf("FindAllByOwner() error = %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("FindAllByOwner() returned %d tasks, want 3", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != "user-a" {
			t.Errorf("listed task %q owned by %q, want user-a", task.ID, task.UserID)
		}
	}
}

func TestTaskRepository_Save(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	task := newTestTask("user-a", "Before")
	due := time.Now().Add(24 * time.Hour)
	task.DueDate = &due

	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	task.Title = "After"
	task.Status = domain.StatusCompleted
	task.DueDate = nil // Save must persist cleared fields too

	if err := repo.Save(task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "After" {
		t.Errorf("found.Title = %q, want %q", found.Title, "After")
	}
	if found.Status != domain.StatusCompleted {
		t.Errorf("found.Status = %q, want %q", found.Status, domain.StatusCompleted)
	}
	if found.DueDate != nil {
		t.Errorf("found.DueDate = %v, want nil", found.DueDate)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	task := newTestTask("user-a", "Ephemeral")
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The delete is permanent: the record is gone and a second delete
	// reports not found.
	if _, err := repo.FindByID(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() after delete error = %v, want %v", err, ErrTaskNotFound)
	}
	if err := repo.Delete(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrTaskNotFound)
	}
}
