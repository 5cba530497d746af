package repository

import (
	"context"
	"time"

	"casa_criativa/internal/domain/models"
)

type IdeaRepository interface {
	Insert(ctx context.Context, input models.IdeaInput) (*models.Idea, error)
	ListAll(ctx context.Context) ([]models.Idea, error)
	ListRecent(ctx context.Context, n int) ([]models.Idea, error)
	Count(ctx context.Context) (int, error)
}

// HitRepository counts requests per key inside a fixed window.
type HitRepository interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}
