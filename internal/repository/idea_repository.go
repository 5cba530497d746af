package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"casa_criativa/internal/domain/models"
	"casa_criativa/internal/storage"
)

const (
	ideaTable = "ideas"

	// DefaultRecent is how many ideas the home page digest shows.
	DefaultRecent = 2
)

var ideaColumns = []string{
	"id", "image", "title", "category", "description", "link", "created_at", "updated_at",
}

// layouts accepted when reading created_at/updated_at back from SQLite
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

type IdeaRepo struct {
	db      *sql.DB
	sb      sq.StatementBuilderType
	timeout time.Duration
	now     func() time.Time
}

func NewIdeaRepository(db *sql.DB, timeout time.Duration) *IdeaRepo {
	return &IdeaRepo{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(sq.Question),
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *IdeaRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, r.timeout)
}

// Insert stores the idea and returns it with the id and timestamps assigned.
// It returns only after the row is committed.
func (r *IdeaRepo) Insert(ctx context.Context, input models.IdeaInput) (*models.Idea, error) {
	const op = "repository.idea_repository.Insert"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.now()

	query, args, err := r.sb.Insert(ideaTable).
		Columns("image", "title", "category", "description", "link", "created_at", "updated_at").
		Values(
			nullString(input.Image),
			input.Title,
			input.Category,
			input.Description,
			nullString(input.Link),
			now.Format(time.RFC3339Nano),
			now.Format(time.RFC3339Nano),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrStorageUnavailable, err)
	}

	return &models.Idea{
		ID:          id,
		Image:       input.Image,
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		Link:        input.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ListAll returns every idea, newest first.
func (r *IdeaRepo) ListAll(ctx context.Context) ([]models.Idea, error) {
	const op = "repository.idea_repository.ListAll"

	ideas, err := r.list(ctx, r.sb.Select(ideaColumns...).From(ideaTable).OrderBy("id DESC"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ideas, nil
}

// ListRecent returns the n newest ideas in chronological order (oldest first).
// n <= 0 falls back to DefaultRecent.
func (r *IdeaRepo) ListRecent(ctx context.Context, n int) ([]models.Idea, error) {
	const op = "repository.idea_repository.ListRecent"

	if n <= 0 {
		n = DefaultRecent
	}

	ideas, err := r.list(ctx, r.sb.Select(ideaColumns...).
		From(ideaTable).
		OrderBy("id DESC").
		Limit(uint64(n)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slices.Reverse(ideas)

	return ideas, nil
}

func (r *IdeaRepo) Count(ctx context.Context) (int, error) {
	const op = "repository.idea_repository.Count"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args, err := r.sb.Select("COUNT(*)").From(ideaTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, storage.ErrStorageUnavailable, err)
	}

	return count, nil
}

func (r *IdeaRepo) list(ctx context.Context, builder sq.SelectBuilder) ([]models.Idea, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("can't build sql: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	ideas := make([]models.Idea, 0)
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
		}
		ideas = append(ideas, idea)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	return ideas, nil
}

func scanIdea(rows *sql.Rows) (models.Idea, error) {
	var (
		idea                 models.Idea
		image, link          sql.NullString
		createdAt, updatedAt string
	)

	err := rows.Scan(
		&idea.ID,
		&image,
		&idea.Title,
		&idea.Category,
		&idea.Description,
		&link,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.Idea{}, err
	}

	if image.Valid {
		idea.Image = &image.String
	}
	if link.Valid {
		idea.Link = &link.String
	}

	if idea.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Idea{}, err
	}
	if idea.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Idea{}, err
	}

	return idea, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unexpected time format %q", s)
}
