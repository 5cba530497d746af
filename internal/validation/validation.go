// Package validation checks and sanitizes idea submissions before they reach
// the store.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"casa_criativa/internal/domain/models"
	"casa_criativa/internal/transport/http/dto"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors holds one entry per offending field.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields lists the offending field names in struct order.
func (e Errors) Fields() []string {
	res := make([]string, 0, len(e))
	for _, fe := range e {
		res = append(res, fe.Field)
	}

	return res
}

var messages = map[string]string{
	"title":       "Title is required and must be less than 100 characters",
	"category":    "Category is required and must be less than 50 characters",
	"description": "Description is required and must be less than 500 characters",
	"image":       "Image must be a valid URL",
	"link":        "Link must be a valid URL",
}

// same set of characters validator.js escape() rewrites
var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// schemes accepted for image and link, the isURL defaults of validator.js
var webSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// isWebURL rejects script-capable schemes such as javascript: and data:,
// which the stock url tag lets through.
func isWebURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	return webSchemes[strings.ToLower(u.Scheme)] && u.Hostname() != ""
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// the tag name is a compile-time constant; registration only fails on an empty tag
	_ = v.RegisterValidation("weburl", isWebURL)

	return &Validator{validate: v}
}

// Validate satisfies echo.Validator. Field failures come back as Errors.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	res := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		res = append(res, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return res
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}

	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}

// CheckIdea trims, validates and escapes a submission. It returns either a
// complete IdeaInput or Errors naming every invalid field, never both.
func (v *Validator) CheckIdea(req dto.CreateIdeaRequest) (models.IdeaInput, error) {
	req = trim(req)

	if err := v.Validate(req); err != nil {
		return models.IdeaInput{}, err
	}

	return models.IdeaInput{
		Title:       escaper.Replace(req.Title),
		Category:    escaper.Replace(req.Category),
		Description: escaper.Replace(req.Description),
		Image:       optional(req.Image),
		Link:        optional(req.Link),
	}, nil
}

func trim(req dto.CreateIdeaRequest) dto.CreateIdeaRequest {
	return dto.CreateIdeaRequest{
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
		Link:        strings.TrimSpace(req.Link),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
