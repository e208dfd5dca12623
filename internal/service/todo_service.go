package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kuronosukeeee/todo-api-v2/internal/domain"
	"github.com/kuronosukeeee/todo-api-v2/internal/repository"
)

// Validation errors. The handler layer maps each kind to an HTTP status.
var (
	ErrDescriptionTooLong = fmt.Errorf("description must not exceed %d characters", domain.MaxDescriptionLength)
	ErrDueDateInPast      = errors.New("due date is in the past")
	ErrIDMismatch         = errors.New("payload id does not match route id")
)

// TodoService holds the business rules for todo items: input validation,
// UTC normalization, and the conflict-to-not-found resolution on update.
type TodoService interface {
	GetAll(ctx context.Context) ([]domain.TodoItem, error)
	GetIncomplete(ctx context.Context) ([]domain.TodoItem, error)
	GetCompleted(ctx context.Context) ([]domain.TodoItem, error)
	Create(ctx context.Context, item domain.TodoItem) (*domain.TodoItem, error)
	Update(ctx context.Context, id uint, item domain.TodoItem) error
	Delete(ctx context.Context, id uint) error
}

type todoService struct {
	repo repository.TodoRepository
	now  func() time.Time
}

// NewTodoService creates a TodoService on top of the given repository.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *todoService) GetAll(ctx context.Context) ([]domain.TodoItem, error) {
	return s.repo.GetAll(ctx)
}

func (s *todoService) GetIncomplete(ctx context.Context) ([]domain.TodoItem, error) {
	return s.repo.GetByCompletion(ctx, false)
}

func (s *todoService) GetCompleted(ctx context.Context) ([]domain.TodoItem, error) {
	return s.repo.GetByCompletion(ctx, true)
}

// Create validates and inserts a new item. Validation fails fast, before
// anything is written: the description cap is checked first, then the due
// date against the current UTC instant. Any client-supplied id is discarded;
// the store assigns the real one.
func (s *todoService) Create(ctx context.Context, item domain.TodoItem) (*domain.TodoItem, error) {
	if descriptionTooLong(item.Description) {
		return nil, ErrDescriptionTooLong
	}
	if item.DueDate.Before(s.now()) {
		return nil, ErrDueDateInPast
	}

	item.NormalizeTimestamps()
	item.ID = 0

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces the stored row with the incoming state (blind overwrite,
// no read-before-write merge). A completed item with no completion time gets
// stamped with the current UTC instant; a client-supplied completion time is
// kept as is. When the overwrite hits a row that changed or vanished, the
// item's existence is re-checked: gone means not found, still present means
// a true conflict that propagates to the caller.
func (s *todoService) Update(ctx context.Context, id uint, item domain.TodoItem) error {
	if item.ID != id {
		return ErrIDMismatch
	}
	if descriptionTooLong(item.Description) {
		return ErrDescriptionTooLong
	}

	item.NormalizeTimestamps()
	if item.IsCompleted && item.CompletedDate == nil {
		completed := s.now()
		item.CompletedDate = &completed
	}

	err := s.repo.Replace(ctx, &item)
	if errors.Is(err, repository.ErrConflict) {
		if _, findErr := s.repo.FindByID(ctx, id); errors.Is(findErr, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return err
	}
	return err
}

// Delete removes the item after an existence check so a missing id surfaces
// as not found rather than a silent no-op.
func (s *todoService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func descriptionTooLong(description *string) bool {
	return description != nil && len([]rune(*description)) > domain.MaxDescriptionLength
}
