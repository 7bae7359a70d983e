package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskman/internal/errors"
	"taskman/internal/model"
	"taskman/internal/repository"
)

// allowedTaskUpdates is the patch allow-list for task updates.
var allowedTaskUpdates = map[string]bool{
	"description": true,
	"completed":   true,
}

// TaskService handles owner-scoped task operations.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, description string) (*model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, updates map[string]interface{}) (*model.Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type taskService struct {
	tasks repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, description string) (*model.Task, error) {
	task := &model.Task{
		Description: description,
		OwnerID:     ownerID,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// Update applies an allow-listed patch to an owned task. An unknown field
// rejects the whole patch.
func (s *taskService) Update(ctx context.Context, id, ownerID uuid.UUID, updates map[string]interface{}) (*model.Task, error) {
	for field := range updates {
		if !allowedTaskUpdates[field] {
			return nil, errors.ErrInvalidUpdates
		}
	}

	task, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	for field, value := range updates {
		switch field {
		case "description":
			description, ok := value.(string)
			if !ok {
				return nil, errors.NewValidationError("description must be a string")
			}
			task.Description = description
		case "completed":
			completed, ok := value.(bool)
			if !ok {
				return nil, errors.NewValidationError("completed must be a boolean")
			}
			task.Completed = completed
		}
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id, ownerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
