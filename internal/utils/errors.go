package utils

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrInvalidInput = "INVALID_INPUT"
	ErrConflict     = "CONFLICT"

	// Entity-specific NotFound conditions
	ErrCommunityNotFound = "COMMUNITY_NOT_FOUND"
	ErrPostNotFound      = "POST_NOT_FOUND"
	ErrCommentNotFound   = "COMMENT_NOT_FOUND"
	ErrRequestNotFound   = "REQUEST_NOT_FOUND"
	ErrUserNotFound      = "USER_NOT_FOUND"

	// Actor communication errors
	ErrActorTimeout = "ACTOR_TIMEOUT"

	ErrDatabase = "DATABASE_ERROR"
)

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// Specific error creators for common cases
func NewCommunityNotFoundError(id string) *AppError {
	return &AppError{
		Code:    ErrCommunityNotFound,
		Message: "Community not found: " + id,
	}
}

func NewPostNotFoundError(id string) *AppError {
	return &AppError{
		Code:    ErrPostNotFound,
		Message: "Post not found: " + id,
	}
}

func NewRequestNotFoundError(id string) *AppError {
	return &AppError{
		Code:    ErrRequestNotFound,
		Message: "Join request not found: " + id,
	}
}

func NewValidationError(reason string) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: reason,
	}
}

func NewActorTimeoutError(actorName string) *AppError {
	return &AppError{
		Code:    ErrActorTimeout,
		Message: "Actor communication timeout: " + actorName,
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound reports whether the error is any of the NotFound conditions.
func IsNotFound(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		switch appErr.Code {
		case ErrNotFound, ErrCommunityNotFound, ErrPostNotFound,
			ErrCommentNotFound, ErrRequestNotFound, ErrUserNotFound:
			return true
		}
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound, ErrCommunityNotFound, ErrPostNotFound,
		ErrCommentNotFound, ErrRequestNotFound, ErrUserNotFound:
		return 404 // http.StatusNotFound
	case ErrInvalidInput:
		return 400 // http.StatusBadRequest
	case ErrConflict:
		return 409 // http.StatusConflict
	case ErrDatabase, ErrActorTimeout:
		return 500 // http.StatusInternalServerError
	default:
		return 500 // http.StatusInternalServerError for unknown errors
	}
}
