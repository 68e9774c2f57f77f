package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/Community-Programmer/task-manager/domain/task"
	"github.com/google/uuid"
)

var (
	// ErrTitleRequired is returned when a task has no title.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrInvalidPriority is returned for an unknown priority value.
	ErrInvalidPriority = errors.New("invalid priority value")
	// ErrInvalidDueDate is returned when the due date cannot be parsed.
	ErrInvalidDueDate = errors.New("invalid due date format")
)

// dueDateLayouts are the accepted due date formats: full RFC 3339 timestamps
// and bare dates.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// TaskService handles task business logic. Every operation is scoped to the
// owner id passed in by the caller, which the API layer takes from the
// validated token, never from the request body or path.
type TaskService struct {
	repo *TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create creates a task owned by userID. Status defaults to PENDING and
// priority to MEDIUM when omitted.
func (s *TaskService) Create(_ context.Context, userID string, req CreateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	status := domain.StatusPending
	if req.Status != "" {
		status = domain.Status(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns all tasks owned by userID.
func (s *TaskService) List(_ context.Context, userID string) ([]*domain.Task, error) {
	return s.repo.FindAllByOwner(userID)
}

// Get returns the task with the given id if it is owned by userID.
func (s *TaskService) Get(_ context.Context, userID, id string) (*domain.Task, error) {
	return s.fetchOwned(id, userID)
}

// Update applies the supplied fields to an owned task. Partial updates are
// supported: nil fields keep their current value. An empty due date string
// clears the due date.
func (s *TaskService) Update(_ context.Context, userID string, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.fetchOwned(req.ID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			dueDate, err := parseDueDate(req.DueDate)
			if err != nil {
				return nil, err
			}
			task.DueDate = dueDate
		}
	}

	task.UpdatedAt = time.Now()
	if err := s.repo.Save(task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes an owned task permanently.
func (s *TaskService) Delete(_ context.Context, userID, id string) error {
	if _, err := s.fetchOwned(id, userID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// fetchOwned is the single fetch-and-authorize step behind every task
// operation: a task that does not exist and a task owned by someone else
// both come back as ErrTaskNotFound.
func (s *TaskService) fetchOwned(id, userID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// parseDueDate parses an optional due date string. A nil or empty input
// yields no due date.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, *raw)
}
