package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors,omitempty"`
}

func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return v.Message
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", v.Message, strings.Join(msgs, "; "))
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type NotFoundError struct {
	Resource string `json:"resource"`
	ID       int64  `json:"id"`
}

func (n *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", n.Resource, n.ID)
}

func (n *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func InvalidField(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Input validation failed",
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

func MemberNotFound(id int64) *NotFoundError {
	return &NotFoundError{Resource: "member", ID: id}
}

func VisitNotFound(id int64) *NotFoundError {
	return &NotFoundError{Resource: "visit", ID: id}
}
