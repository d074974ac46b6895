package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	// Name labels the report in responses and history. Optional.
	Name string `json:"name" validate:"omitempty,max=200"`
	// Lyrics is the raw sheet source, metadata and sections included.
	Lyrics string `json:"lyrics" validate:"required,max=65536"`
}

// ParseErrorResponse is the 422 body for sheets that fail to parse.
type ParseErrorResponse struct {
	Error  string `json:"error"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// firstValidationError flattens a validator error into one message.
func firstValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
