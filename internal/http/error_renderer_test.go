package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRender struct {
	data pageData
}

func (rr *recordedRender) render(w http.ResponseWriter, _ *http.Request, data any) {
	rr.data, _ = data.(pageData)
	_, _ = w.Write([]byte("page"))
}

func TestRenderError_FieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	rr := &recordedRender{}

	RenderError(ErrorOpts{
		W:           rec,
		R:           httptest.NewRequest(http.MethodPost, "/register", nil),
		FieldErrors: map[string]string{"email": "Enter a valid email address."},
		Renderer:    rr.render,
		PageMeta:    registerMeta,
		Data:        map[string]any{"Email": "nope"},
	})

	require.NotNil(t, rr.data)
	assert.Equal(t, errMsgFixBelow, rr.data["ErrorMessage"])
	assert.Equal(t, "nope", rr.data["Email"])
	assert.Equal(t, map[string]string{"email": "Enter a valid email address."}, rr.data["Errors"])
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenderError_MessageOverridesError(t *testing.T) {
	rec := httptest.NewRecorder()
	rr := &recordedRender{}

	RenderError(ErrorOpts{
		W:          rec,
		R:          httptest.NewRequest(http.MethodPost, "/login", nil),
		Err:        apperrors.MapStatus(http.StatusUnauthorized, "Incorrect email or password", nil),
		Message:    "Login failed: Incorrect email or password",
		Renderer:   rr.render,
		PageMeta:   loginMeta,
		StatusCode: http.StatusUnauthorized,
		ShowToast:  true,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Login failed: Incorrect email or password", rr.data["ErrorMessage"])
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Login failed")
}

func TestRenderError_NoRenderer(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(ErrorOpts{W: rec, R: httptest.NewRequest(http.MethodGet, "/", nil)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProcessError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      string
		wantField string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "deadline", err: fmt.Errorf("list: %w", context.DeadlineExceeded), want: "Request timed out. Please try again."},
		{name: "canceled", err: context.Canceled, want: "Request was canceled."},
		{name: "field validation", err: apperrors.ValidationField("price", "Price must be non-negative."), want: errMsgFixBelow, wantField: "price"},
		{name: "validation with message", err: apperrors.Validation("Quantity too large"), want: "Quantity too large"},
		{name: "validation without message", err: apperrors.MapStatus(http.StatusUnprocessableEntity, "", nil), want: "Invalid data. Please check your input."},
		{name: "conflict", err: apperrors.Conflict("dup"), want: "This value already exists. Please choose a different one."},
		{name: "not found", err: apperrors.NotFound("gone"), want: "That item no longer exists."},
		{name: "unauthorized", err: apperrors.Unauthorized(""), want: msgSessionEnded},
		{name: "forbidden", err: apperrors.Forbidden(""), want: "You don't have permission to do that."},
		{name: "upstream", err: apperrors.MapTransportError(errors.New("refused")), want: "The shop is unavailable right now. Please try again."},
		{name: "plain error", err: errors.New("boom"), want: "An error occurred. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields map[string]string
			assert.Equal(t, tt.want, processError(tt.err, &fields))
			if tt.wantField != "" {
				assert.Contains(t, fields, tt.wantField)
			} else {
				assert.Empty(t, fields)
			}
		})
	}
}
