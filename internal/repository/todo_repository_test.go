package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kuronosukeeee/todo-api-v2/internal/domain"
	"github.com/kuronosukeeee/todo-api-v2/internal/repository"
)

// setupRepository starts a throwaway PostgreSQL container, migrates the
// schema and returns a repository bound to it.
func setupRepository(t *testing.T) repository.TodoRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed repository tests in short mode")
	}

	ctx := context.Background()
	container, err := pgcontainer.Run(ctx,
		"postgres:16-alpine",
		pgcontainer.WithDatabase("todo_test"),
		pgcontainer.WithUsername("test"),
		pgcontainer.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TodoItem{}))

	return repository.NewGormTodoRepository(db)
}

func strPtr(s string) *string { return &s }

func newItem(title string, completed bool) *domain.TodoItem {
	due := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond)
	item := &domain.TodoItem{
		Title:       strPtr(title),
		Description: strPtr("integration test item"),
		DueDate:     due,
		IsCompleted: completed,
	}
	if completed {
		completedAt := time.Now().UTC().Truncate(time.Microsecond)
		item.CompletedDate = &completedAt
	}
	return item
}

func TestGormRepositoryRoundTrip(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	item := newItem("round trip", false)
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID, "the store assigns the primary key on insert")

	stored, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, stored.ID)
	require.NotNil(t, stored.Title)
	assert.Equal(t, "round trip", *stored.Title)
	assert.True(t, stored.DueDate.Equal(item.DueDate), "the due date instant must survive the round trip")
	assert.False(t, stored.IsCompleted)
	assert.Nil(t, stored.CompletedDate)
}

func TestGormRepositoryFindByIDNotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.FindByID(context.Background(), 12345)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGormRepositoryReplaceOverwritesFullRow(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	item := newItem("before", false)
	require.NoError(t, repo.Create(ctx, item))

	completedAt := time.Now().UTC().Truncate(time.Microsecond)
	replacement := &domain.TodoItem{
		ID:            item.ID,
		Title:         strPtr("after"),
		Description:   nil,
		DueDate:       item.DueDate,
		CompletedDate: &completedAt,
		IsCompleted:   true,
	}
	require.NoError(t, repo.Replace(ctx, replacement))

	stored, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Title)
	assert.Equal(t, "after", *stored.Title)
	assert.Nil(t, stored.Description, "zero-valued fields must overwrite too")
	assert.True(t, stored.IsCompleted)
	require.NotNil(t, stored.CompletedDate)
	assert.True(t, stored.CompletedDate.Equal(completedAt))
}

func TestGormRepositoryReplaceMissingRowConflicts(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	item := newItem("vanishing", false)
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.Delete(ctx, item.ID))

	err := repo.Replace(ctx, item)
	require.ErrorIs(t, err, repository.ErrConflict,
		"replacing a row that vanished must surface a conflict, not recreate it")

	_, err = repo.FindByID(ctx, item.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGormRepositoryDelete(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	item := newItem("to delete", false)
	require.NoError(t, repo.Create(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))

	err := repo.Delete(ctx, item.ID)
	require.ErrorIs(t, err, repository.ErrNotFound, "deletion is physical; the row is gone")
}

func TestGormRepositoryCompletionFilter(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newItem("open", false)))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, newItem("done", true)))
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	incomplete, err := repo.GetByCompletion(ctx, false)
	require.NoError(t, err)
	completed, err := repo.GetByCompletion(ctx, true)
	require.NoError(t, err)

	assert.Len(t, all, 5)
	assert.Len(t, incomplete, 3)
	assert.Len(t, completed, 2)
	assert.Equal(t, len(all), len(incomplete)+len(completed))
}
