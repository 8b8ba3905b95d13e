package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorCode identifies an entry of the application error taxonomy.
type ErrorCode string

const (
	CodeValidation              ErrorCode = "VALIDATION_ERROR"
	CodeDuplicateEmail          ErrorCode = "DUPLICATE_EMAIL"
	CodeDuplicatePendingRequest ErrorCode = "DUPLICATE_PENDING_REQUEST"
	CodeInvalidCredentials      ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountNotActive        ErrorCode = "ACCOUNT_NOT_ACTIVE"
	CodeForbidden               ErrorCode = "FORBIDDEN"
	CodeNotFound                ErrorCode = "NOT_FOUND"
	CodeInvalidStateTransition  ErrorCode = "INVALID_STATE_TRANSITION"
	CodeInternal                ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewDuplicateEmailError() *AppError {
	return &AppError{Code: CodeDuplicateEmail, Message: "A user with this email already exists"}
}

func NewDuplicatePendingRequestError() *AppError {
	return &AppError{Code: CodeDuplicatePendingRequest, Message: "There is already a pending swap request between you and this user"}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

func NewAccountNotActiveError() *AppError {
	return &AppError{Code: CodeAccountNotActive, Message: "Account is not active"}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewInvalidStateTransitionError(message string) *AppError {
	return &AppError{Code: CodeInvalidStateTransition, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForError maps an error to its HTTP status. Unknown errors are 500s.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation, CodeDuplicateEmail, CodeDuplicatePendingRequest, CodeInvalidStateTransition:
		return fiber.StatusBadRequest
	case CodeInvalidCredentials, CodeAccountNotActive:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response. Internal causes are
// logged upstream but never serialized into 500 bodies.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)

	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
	}

	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(ErrorResponse{
			Error: "Internal server error",
			Code:  CodeInternal,
		})
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}
