package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"casa_criativa/internal/domain/models"
	"casa_criativa/internal/storage"
	"casa_criativa/internal/transport/http/dto"
	"casa_criativa/internal/validation"
)

type MockIdeaRepository struct {
	mock.Mock
}

func (m *MockIdeaRepository) Insert(ctx context.Context, input models.IdeaInput) (*models.Idea, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Idea), args.Error(1)
}

func (m *MockIdeaRepository) ListAll(ctx context.Context) ([]models.Idea, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Idea), args.Error(1)
}

func (m *MockIdeaRepository) ListRecent(ctx context.Context, n int) ([]models.Idea, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Idea), args.Error(1)
}

func (m *MockIdeaRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestService(repo *MockIdeaRepository) *IdeaService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewIdeaService(log, repo, validation.New())
}

var errDisk = errors.New("disk I/O error")

func TestIdeaService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission is stored", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		service := newTestService(repo)

		want := models.IdeaInput{Title: "Read", Category: "Leisure", Description: "Book club"}
		stored := &models.Idea{ID: 7, Title: "Read", Category: "Leisure", Description: "Book club", CreatedAt: time.Now()}

		repo.On("Insert", ctx, want).Return(stored, nil).Once()

		got, err := service.Submit(ctx, dto.CreateIdeaRequest{
			Title:       "Read",
			Category:    "Leisure",
			Description: "Book club",
			Image:       "",
			Link:        "",
		})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		repo.AssertExpectations(t)
	})

	t.Run("invalid submission never reaches the store", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		service := newTestService(repo)

		got, err := service.Submit(ctx, dto.CreateIdeaRequest{Title: "", Category: "X", Description: "Y", Image: "bad"})
		assert.Nil(t, got)

		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"title", "image"}, verrs.Fields())
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		service := newTestService(repo)

		repo.On("Insert", ctx, mock.AnythingOfType("models.IdeaInput")).
			Return(nil, errors.Join(storage.ErrStorageUnavailable, errDisk)).Once()

		_, err := service.Submit(ctx, dto.CreateIdeaRequest{Title: "a", Category: "b", Description: "c"})
		assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
		repo.AssertExpectations(t)
	})
}

func TestIdeaService_Home(t *testing.T) {
	ctx := context.Background()

	t.Run("asks for the two latest", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		service := newTestService(repo)

		ideas := []models.Idea{{ID: 4}, {ID: 5}}
		repo.On("ListRecent", ctx, 2).Return(ideas, nil).Once()

		got, err := service.Home(ctx)
		require.NoError(t, err)
		assert.Equal(t, ideas, got)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		service := newTestService(repo)

		repo.On("ListRecent", ctx, 2).Return(nil, storage.ErrStorageUnavailable).Once()

		_, err := service.Home(ctx)
		assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
	})
}

func TestIdeaService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockIdeaRepository)
	service := newTestService(repo)

	ideas := []models.Idea{{ID: 2}, {ID: 1}}
	repo.On("ListAll", ctx).Return(ideas, nil).Once()
	repo.On("ListAll", ctx).Return(nil, storage.ErrStorageUnavailable).Once()

	got, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ideas, got)

	_, err = service.List(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
	repo.AssertExpectations(t)
}

func TestIdeaService_Health(t *testing.T) {
	ctx := context.Background()
	repo := new(MockIdeaRepository)
	service := newTestService(repo)

	repo.On("Count", ctx).Return(3, nil).Once()
	repo.On("Count", ctx).Return(0, storage.ErrStorageUnavailable).Once()

	count, err := service.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = service.Health(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
}
