package response

import (
	"casa_criativa/internal/domain/models"
	"casa_criativa/internal/validation"
)

type IdeasResponse struct {
	Success bool          `json:"success"`
	Ideas   []models.Idea `json:"ideas"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ValidationErrorResponse struct {
	Success bool                    `json:"success"`
	Errors  []validation.FieldError `json:"errors"`
}

// HealthResponse carries ideas_count only when the store answered, zero
// included.
type HealthResponse struct {
	Status     string `json:"status"`
	IdeasCount *int   `json:"ideas_count,omitempty"`
	Timestamp  string `json:"timestamp"`
}

func Healthy(count int, timestamp string) HealthResponse {
	return HealthResponse{
		Status:     "healthy",
		IdeasCount: &count,
		Timestamp:  timestamp,
	}
}

func Unhealthy(timestamp string) HealthResponse {
	return HealthResponse{
		Status:    "unhealthy",
		Timestamp: timestamp,
	}
}

func SuccessIdeas(ideas []models.Idea) IdeasResponse {
	return IdeasResponse{
		Success: true,
		Ideas:   ideas,
	}
}

func Failure(msg string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   msg,
	}
}

func InvalidFields(errs validation.Errors) ValidationErrorResponse {
	return ValidationErrorResponse{
		Success: false,
		Errors:  errs,
	}
}
