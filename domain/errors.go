package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ValidationError    ErrorKind = "validation_error"
	GenerationError    ErrorKind = "generation_error"
	EncodingError      ErrorKind = "encoding_error"
	ConfigurationError ErrorKind = "configuration_error"
)

// PipelineError is the error contract of the video pipelines. Kind is the
// stable machine-readable classification, Detail carries the upstream
// diagnostic (API error body, ffmpeg output) verbatim.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Detail  string
	Timeout bool
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *PipelineError {
	return &PipelineError{Kind: ValidationError, Message: message}
}

func NewGenerationError(message string, detail string, err error) *PipelineError {
	return &PipelineError{Kind: GenerationError, Message: message, Detail: detail, Err: err}
}

func NewGenerationTimeout(message string, err error) *PipelineError {
	return &PipelineError{Kind: GenerationError, Message: message, Timeout: true, Err: err}
}

func NewEncodingError(message string, detail string, err error) *PipelineError {
	return &PipelineError{Kind: EncodingError, Message: message, Detail: detail, Err: err}
}

func NewConfigurationError(message string) *PipelineError {
	return &PipelineError{Kind: ConfigurationError, Message: message}
}

// AsPipelineError unwraps err to the nearest PipelineError, if any.
func AsPipelineError(err error) (*PipelineError, bool) {
	var pErr *PipelineError
	if errors.As(err, &pErr) {
		return pErr, true
	}
	return nil, false
}
