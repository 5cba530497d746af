package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"casa_criativa/internal/domain/models"
	"casa_criativa/internal/lib/logger/sl"
	"casa_criativa/internal/transport/http/dto"
	"casa_criativa/internal/transport/http/dto/response"
	"casa_criativa/internal/validation"
)

type IdeaService interface {
	Home(ctx context.Context) ([]models.Idea, error)
	List(ctx context.Context) ([]models.Idea, error)
	Submit(ctx context.Context, req dto.CreateIdeaRequest) (*models.Idea, error)
	Health(ctx context.Context) (int, error)
}

type Routers struct {
	log         *slog.Logger
	IdeaService IdeaService
}

func NewRouter(log *slog.Logger, ideaService IdeaService) *Routers {
	return &Routers{
		log:         log,
		IdeaService: ideaService,
	}
}

// IdeasPage is the view model of index.html and ideias.html.
type IdeasPage struct {
	Ideas []models.Idea
}

// ErrorPage is the view model of error.html.
type ErrorPage struct {
	Error      string
	StatusCode int
}

// Home renders the digest of the latest ideas.
func (r *Routers) Home(c echo.Context) error {
	const op = "http.routers.Home"

	ideas, err := r.IdeaService.Home(c.Request().Context())
	if err != nil {
		r.log.Error("error loading home page", slog.String("op", op), sl.Err(err))
		return RenderError(c, http.StatusInternalServerError, response.MsgLoadIdeas)
	}

	return c.Render(http.StatusOK, "index.html", IdeasPage{Ideas: ideas})
}

// Ideas renders every idea, newest first.
func (r *Routers) Ideas(c echo.Context) error {
	const op = "http.routers.Ideas"

	ideas, err := r.IdeaService.List(c.Request().Context())
	if err != nil {
		r.log.Error("error loading ideas page", slog.String("op", op), sl.Err(err))
		return RenderError(c, http.StatusInternalServerError, response.MsgLoadIdeas)
	}

	return c.Render(http.StatusOK, "ideias.html", IdeasPage{Ideas: ideas})
}

// CreateIdea godoc
// @Summary Submit an idea
// @Description Validates the submission, stores it and redirects to the full list.
// @Tags ideas
// @Accept x-www-form-urlencoded,json
// @Produce json,html
// @Param title formData string true "Title (max 100 characters)"
// @Param category formData string true "Category (max 50 characters)"
// @Param description formData string true "Description (max 500 characters)"
// @Param image formData string false "Image URL"
// @Param link formData string false "Link URL"
// @Success 303 "Redirect to /ideias"
// @Failure 400 {object} response.ValidationErrorResponse "Invalid fields"
// @Failure 500 "Error page"
// @Router / [post]
func (r *Routers) CreateIdea(c echo.Context) error {
	const op = "http.routers.CreateIdea"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateIdeaRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.InvalidFields(validation.Errors{{
			Field:   "body",
			Message: "Invalid request format",
		}}))
	}

	_, err := r.IdeaService.Submit(c.Request().Context(), req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return c.JSON(http.StatusBadRequest, response.InvalidFields(verrs))
		}

		log.Error("error creating idea", sl.Err(err))
		return RenderError(c, http.StatusInternalServerError, response.MsgSaveIdea)
	}

	return c.Redirect(http.StatusSeeOther, "/ideias")
}

// ListIdeas godoc
// @Summary List ideas
// @Description Returns every idea, newest first.
// @Tags ideas
// @Produce json
// @Success 200 {object} response.IdeasResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/ideas [get]
func (r *Routers) ListIdeas(c echo.Context) error {
	const op = "http.routers.ListIdeas"

	ideas, err := r.IdeaService.List(c.Request().Context())
	if err != nil {
		r.log.Error("error fetching ideas via api", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrFetchIdeas)
	}

	return c.JSON(http.StatusOK, response.SuccessIdeas(ideas))
}

// Health godoc
// @Summary Health check
// @Description Reports store reachability and the number of stored ideas.
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.HealthResponse
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	now := time.Now().UTC().Format(time.RFC3339)

	count, err := r.IdeaService.Health(c.Request().Context())
	if err != nil {
		r.log.Error("health check failed", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.Unhealthy(now))
	}

	return c.JSON(http.StatusOK, response.Healthy(count, now))
}

// RenderError writes the generic error page. Callers pass user-facing text only.
func RenderError(c echo.Context, code int, msg string) error {
	return c.Render(code, "error.html", ErrorPage{Error: msg, StatusCode: code})
}

// ErrorHandler is the last stop for errors returned by handlers and
// middleware, including recovered panics.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := http.StatusInternalServerError, response.MsgInternal

		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch {
			case he.Code == http.StatusNotFound, he.Code == http.StatusMethodNotAllowed:
				code, msg = http.StatusNotFound, response.MsgNotFound
			case he.Code == http.StatusTooManyRequests:
				code, msg = http.StatusTooManyRequests, response.MsgTooMany
			case he.Code < http.StatusInternalServerError:
				code, msg = he.Code, http.StatusText(he.Code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error("unhandled error",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				sl.Err(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = RenderError(c, code, msg)
		}
		if err != nil {
			log.Error("failed to write error response", sl.Err(err))
			_ = c.String(code, msg)
		}
	}
}
