package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/kuronosukeeee/todo-api-v2/internal/domain"
)

// MemoryTodoRepository is an in-memory TodoRepository used by the service
// and handler tests. It mirrors the GORM implementation's semantics,
// including the conflict on replacing a row that no longer exists.
type MemoryTodoRepository struct {
	mu     sync.Mutex
	items  map[uint]domain.TodoItem
	nextID uint
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		items:  make(map[uint]domain.TodoItem),
		nextID: 1,
	}
}

func (r *MemoryTodoRepository) GetAll(ctx context.Context) ([]domain.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]domain.TodoItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MemoryTodoRepository) GetByCompletion(ctx context.Context, completed bool) ([]domain.TodoItem, error) {
	all, _ := r.GetAll(ctx)
	items := make([]domain.TodoItem, 0, len(all))
	for _, item := range all {
		if item.IsCompleted == completed {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MemoryTodoRepository) FindByID(ctx context.Context, id uint) (*domain.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *MemoryTodoRepository) Create(ctx context.Context, item *domain.TodoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return nil
}

func (r *MemoryTodoRepository) Replace(ctx context.Context, item *domain.TodoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return ErrConflict
	}
	r.items[item.ID] = *item
	return nil
}

func (r *MemoryTodoRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
