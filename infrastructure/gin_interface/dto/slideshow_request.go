package dto

import (
	"fmt"
	"strings"

	"github.com/sagarghai/growth-tools-api/domain"
)

type SlideshowRequest struct {
	Slides []string `json:"slides" binding:"required,min=1"`
}

// Validate enforces the rules the binding tags cannot express.
func (r *SlideshowRequest) Validate(maxSlides int) error {
	if len(r.Slides) > maxSlides {
		return domain.NewValidationError(fmt.Sprintf("maximum %d slides allowed", maxSlides))
	}
	for i, slide := range r.Slides {
		if strings.TrimSpace(slide) == "" {
			return domain.NewValidationError(fmt.Sprintf("slides[%d] must not be empty", i))
		}
	}
	return nil
}
