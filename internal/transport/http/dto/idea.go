package dto

// CreateIdeaRequest is the raw submission, bound from a form or a JSON body.
type CreateIdeaRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=100"`
	Category    string `json:"category" form:"category" validate:"required,max=50"`
	Description string `json:"description" form:"description" validate:"required,max=500"`
	Image       string `json:"image,omitempty" form:"image" validate:"omitempty,url,weburl"`
	Link        string `json:"link,omitempty" form:"link" validate:"omitempty,url,weburl"`
}
