package apperrors

// ErrorCode identifies a class of failure independent of its HTTP mapping.
type ErrorCode string

const (
	// System and unknown failures
	CodeInternalError ErrorCode = "INTERNAL_ERROR"

	// Generic business-logic codes
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Media/folder core codes
	CodeStorageError  ErrorCode = "STORAGE_ERROR"  // object store call failed
	CodeMetadataError ErrorCode = "METADATA_ERROR" // relational store call failed
	CodePartialDelete ErrorCode = "PARTIAL_DELETE" // cascading delete stopped partway
	CodeBusy          ErrorCode = "BUSY"           // conflicting operation in flight on the same scope

	// Authentication and authorization
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
)
