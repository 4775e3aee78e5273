package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
)

const errMsgFixBelow = "Please fix the errors below."

// ErrorRenderer is a function that renders a page template with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W           http.ResponseWriter
	R           *http.Request
	Err         error             // optional when only FieldErrors are set
	FieldErrors map[string]string // field name → message
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	// Data is merged into the template data (form values, mode, ...).
	Data map[string]any
	// StatusCode defaults to 200 so htmx swaps the response.
	StatusCode int
	// ShowToast also raises the general message as a showToast event.
	ShowToast bool
	// Message overrides the general message derived from Err.
	Message string
}

// RenderError re-renders a page with a general error and optional field errors.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	general := processError(opts.Err, &opts.FieldErrors)
	if opts.Message != "" {
		general = opts.Message
	}
	if general == "" && len(opts.FieldErrors) > 0 {
		general = errMsgFixBelow
	}

	page := newPage(opts.R, opts.PageMeta).
		fieldErrors(opts.FieldErrors).
		fail(general).
		merge(opts.Data)

	if opts.ShowToast && general != "" {
		triggerToast(opts.W, general, "error")
	}
	if opts.StatusCode != 0 {
		opts.W.WriteHeader(opts.StatusCode)
	}
	opts.Renderer(opts.W, opts.R, page)
}

// processError maps an error to a user-facing message. Validation errors that
// name a field are moved into fieldErrors.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || apperrors.IsTimeout(err) {
		return "Request timed out. Please try again."
	}
	if errors.Is(err, context.Canceled) || apperrors.IsCanceled(err) {
		return "Request was canceled."
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		msg := apperrors.GetMessage(err)
		if field := apperrors.GetField(err); field != "" && fieldErrors != nil {
			if *fieldErrors == nil {
				*fieldErrors = make(map[string]string)
			}
			(*fieldErrors)[field] = msg
			return errMsgFixBelow
		}
		if msg != "" {
			return msg
		}
		return "Invalid data. Please check your input."
	case apperrors.ErrCodeConflict:
		return "This value already exists. Please choose a different one."
	case apperrors.ErrCodeNotFound:
		return "That item no longer exists."
	case apperrors.ErrCodeUnauthorized:
		return msgSessionEnded
	case apperrors.ErrCodeForbidden:
		return "You don't have permission to do that."
	case apperrors.ErrCodeUpstream:
		return "The shop is unavailable right now. Please try again."
	default:
		return "An error occurred. Please try again."
	}
}
