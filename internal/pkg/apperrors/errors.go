package apperrors

import "errors"

// Referential integrity errors: a referenced row is missing, inactive, or a
// delete was attempted against a restrict-on-delete relationship.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentInactive   = errors.New("department is deactivated")
	ErrSchoolNotFound       = errors.New("school not found")
	ErrEncadreurNotFound    = errors.New("encadreur not found")
	ErrInternNotFound       = errors.New("intern not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrEvaluationNotFound   = errors.New("evaluation not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrReferenceInUse       = errors.New("row is referenced by other data and cannot be deleted")
)

// Range validation errors.
var (
	ErrScoreOutOfRange    = errors.New("score is outside the allowed range")
	ErrProgressOutOfRange = errors.New("progress percentage must be between 0 and 100")
	ErrInvalidEnumValue   = errors.New("value is not in the allowed set")
	ErrValidationFailed   = errors.New("validation failed")
)

// Uniqueness violations.
var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrSchoolAlreadyExists     = errors.New("school with this name already exists")
	ErrProfileAlreadyExists    = errors.New("profile for this user already exists")
)

// Business rule errors surfaced by the service layer.
var (
	ErrEncadreurAtCapacity = errors.New("encadreur has reached its intern capacity")
	ErrAccountNotPending   = errors.New("account is not pending activation")
	ErrRoleMismatch        = errors.New("user role does not allow this profile")
)

// CustomError wraps a sentinel error with request-level context.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel for errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
