package errors

import (
	"context"
	"errors"
	"net/http"
)

// MapStatus maps an HTTP status returned by the Shop API to an AppError.
// detail is the API's own message and becomes the AppError message; it may be empty.
//
//   - 400, 422 → Validation
//   - 401 → Unauthorized
//   - 403 → Forbidden
//   - 404 → NotFound
//   - 409 → Conflict
//   - anything else → Upstream
func MapStatus(status int, detail string, cause error) *AppError {
	code := ErrCodeUpstream
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = ErrCodeValidation
	case http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case http.StatusForbidden:
		code = ErrCodeForbidden
	case http.StatusNotFound:
		code = ErrCodeNotFound
	case http.StatusConflict:
		code = ErrCodeConflict
	}
	return &AppError{Code: code, Message: detail, Cause: cause}
}

// MapTransportError maps a failure to reach the Shop API to an AppError.
// Context timeouts and cancellations keep their own codes; everything else is Upstream.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}
	return &AppError{
		Code:  ErrCodeUpstream,
		Cause: err,
	}
}
