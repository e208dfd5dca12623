package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kuronosukeeee/todo-api-v2/internal/domain"
)

// Sentinel errors the service and handler layers map to HTTP statuses.
var (
	// ErrNotFound reports that no row exists for the requested id.
	ErrNotFound = errors.New("todo item not found")

	// ErrConflict reports that a write targeted a row that changed or
	// vanished underneath the request (including a row that never existed).
	ErrConflict = errors.New("todo item was modified or removed concurrently")
)

// TodoRepository is the persistence gateway over the todo_items table.
// Every mutating method is a single atomic commit; nothing is staged on
// in-memory objects between calls.
type TodoRepository interface {
	GetAll(ctx context.Context) ([]domain.TodoItem, error)
	GetByCompletion(ctx context.Context, completed bool) ([]domain.TodoItem, error)
	FindByID(ctx context.Context, id uint) (*domain.TodoItem, error)
	Create(ctx context.Context, item *domain.TodoItem) error
	Replace(ctx context.Context, item *domain.TodoItem) error
	Delete(ctx context.Context, id uint) error
}

type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a TodoRepository backed by GORM.
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) GetAll(ctx context.Context) ([]domain.TodoItem, error) {
	var items []domain.TodoItem
	result := r.db.WithContext(ctx).Order("id").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *gormTodoRepository) GetByCompletion(ctx context.Context, completed bool) ([]domain.TodoItem, error) {
	var items []domain.TodoItem
	result := r.db.WithContext(ctx).Where("is_completed = ?", completed).Order("id").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.TodoItem, error) {
	var item domain.TodoItem
	result := r.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

func (r *gormTodoRepository) Create(ctx context.Context, item *domain.TodoItem) error {
	// GORM populates item.ID from the RETURNING clause.
	result := r.db.WithContext(ctx).Create(item)
	return result.Error
}

// Replace overwrites the full row keyed by item.ID with the caller-supplied
// state. Select("*") forces zero-valued fields through as well; GORM's Save
// is deliberately not used because it falls back to an insert when the
// update matches no rows, which would resurrect a concurrently deleted row.
func (r *gormTodoRepository) Replace(ctx context.Context, item *domain.TodoItem) error {
	result := r.db.WithContext(ctx).
		Model(&domain.TodoItem{}).
		Where("id = ?", item.ID).
		Select("*").
		Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *gormTodoRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.TodoItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
