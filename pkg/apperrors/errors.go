package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error structure carried across all layers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"` // which subsystem produced the error
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New is the base constructor.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON hides the wrapped error and HTTP code from API responses.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError converts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Constructors for the core taxonomy ---

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError reports bad input caught before any network call.
func ValidationError(message string) *AppError {
	return New(CodeValidationFailed, "validation", message, http.StatusBadRequest)
}

// StorageError reports a failed object store call. op names the sub-step
// (upload, delete, batch delete) so the failure is traceable.
func StorageError(op string, err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", fmt.Sprintf("object store %s failed", op), http.StatusBadGateway)
}

// MetadataError reports a failed relational store call.
func MetadataError(op string, err error) *AppError {
	return Wrap(err, CodeMetadataError, "metadata", fmt.Sprintf("metadata %s failed", op), http.StatusBadGateway)
}

// PartialDeleteError reports a cascading delete that stopped partway.
// stage identifies the step that failed; the remnants need manual reconciliation.
func PartialDeleteError(stage, folderID string, err error) *AppError {
	return Wrap(err, CodePartialDelete, "folders",
		fmt.Sprintf("folder delete stopped at %s, manual reconciliation required", stage),
		http.StatusConflict).WithDetails(map[string]string{"folder_id": folderID, "stage": stage})
}

// BusyError rejects an operation that conflicts with one already in flight.
func BusyError(operation string) *AppError {
	return New(CodeBusy, "gallery", fmt.Sprintf("another %s is already in progress", operation), http.StatusConflict)
}

// NotFoundError reports a missing row in an owner's scope.
func NotFoundError(what string) *AppError {
	return New(CodeNotFound, "metadata", what+" not found", http.StatusNotFound)
}

// NewUnauthorizedError reports a missing or invalid identity.
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

// NewForbiddenError reports an access violation.
func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

// NewBadRequestError reports a malformed request.
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}
