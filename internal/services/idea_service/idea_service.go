package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"casa_criativa/internal/domain/models"
	"casa_criativa/internal/lib/logger/sl"
	"casa_criativa/internal/metrics"
	"casa_criativa/internal/repository"
	"casa_criativa/internal/transport/http/dto"
	"casa_criativa/internal/validation"
)

type Validator interface {
	CheckIdea(req dto.CreateIdeaRequest) (models.IdeaInput, error)
}

type IdeaService struct {
	log       *slog.Logger
	repo      repository.IdeaRepository
	validator Validator
}

func NewIdeaService(log *slog.Logger, repo repository.IdeaRepository, validator Validator) *IdeaService {
	return &IdeaService{log: log, repo: repo, validator: validator}
}

// Home returns the digest shown on the landing page: the latest ideas,
// oldest of them first.
func (s *IdeaService) Home(ctx context.Context) ([]models.Idea, error) {
	const op = "idea_service.Home"

	ideas, err := s.repo.ListRecent(ctx, repository.DefaultRecent)
	if err != nil {
		s.log.Error("failed to load recent ideas", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ideas, nil
}

// List returns every idea, newest first.
func (s *IdeaService) List(ctx context.Context) ([]models.Idea, error) {
	const op = "idea_service.List"

	ideas, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to load ideas", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ideas, nil
}

// Submit validates the request and stores it. Invalid input never reaches
// the repository; the returned error then wraps validation.Errors.
func (s *IdeaService) Submit(ctx context.Context, req dto.CreateIdeaRequest) (*models.Idea, error) {
	const op = "idea_service.Submit"
	log := s.log.With(
		slog.String("op", op),
	)

	input, err := s.validator.CheckIdea(req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			for _, f := range verrs.Fields() {
				metrics.ValidationFailuresTotal.WithLabelValues(f).Inc()
			}
			log.Warn("rejected submission", slog.Any("fields", verrs.Fields()))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idea, err := s.repo.Insert(ctx, input)
	if err != nil {
		log.Error("failed to save idea", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.IdeasCreatedTotal.Inc()
	log.Info("new idea created", slog.Int64("idea_id", idea.ID))

	return idea, nil
}

// Health reports how many ideas are stored; it fails when the store does.
func (s *IdeaService) Health(ctx context.Context) (int, error) {
	const op = "idea_service.Health"

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.log.Error("health check failed", slog.String("op", op), sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
