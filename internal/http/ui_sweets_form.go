package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/http/validation"
)

const (
	maxSweetNameLen     = 120
	maxSweetCategoryLen = 80
	maxSweetQuantity    = 1_000_000
)

// sweetForm holds the raw submitted values so the form can be re-rendered as typed.
type sweetForm struct {
	Name     string
	Category string
	Price    string
	Quantity string
}

func sweetFormFrom(in model.SweetInput) sweetForm {
	return sweetForm{
		Name:     in.Name,
		Category: in.Category,
		Price:    strconv.FormatFloat(in.Price, 'f', -1, 64),
		Quantity: strconv.Itoa(in.Quantity),
	}
}

// input converts already validated values.
func (f sweetForm) input() model.SweetInput {
	price, _ := strconv.ParseFloat(f.Price, 64)
	qty, _ := strconv.Atoi(f.Quantity)
	return model.SweetInput{Name: f.Name, Category: f.Category, Price: price, Quantity: qty}
}

func parseSweetForm(r *http.Request) (sweetForm, map[string]string) {
	f := sweetForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Category: strings.TrimSpace(r.PostFormValue("category")),
		Price:    strings.TrimSpace(r.PostFormValue("price")),
		Quantity: strings.TrimSpace(r.PostFormValue("quantity")),
	}
	errs := validation.Errors{}.
		Check("name", f.Name, validation.Text("Name", maxSweetNameLen)).
		Check("category", f.Category, validation.Text("Category", maxSweetCategoryLen)).
		Check("price", f.Price, validation.Amount("Price")).
		Check("quantity", f.Quantity, validation.WholeNumber("Quantity", 0, maxSweetQuantity))
	return f, errs
}

func sweetFormMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Sweet Shop - Edit Sweet", PageTitle: "Edit Sweet", CurrentPage: PageSweetForm}
	}
	return PageMeta{Title: "Sweet Shop - Add Sweet", PageTitle: "Add Sweet", CurrentPage: PageSweetForm}
}

// SweetNew renders an empty create form.
// GET /sweets/new.
func (h *UIHandlers) SweetNew(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, newPage(r, sweetFormMeta(FormModeCreate)).
		set("Mode", FormModeCreate).
		set("FormData", sweetForm{}))
}

// SweetEdit renders the edit form prefilled from the session's mirror.
// GET /sweets/{id}/edit.
func (h *UIHandlers) SweetEdit(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	sweet, err := h.Inventory.Get(r.Context(), *sess, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.forceLogout(w, r, err)
		return
	}

	h.renderPage(w, r, newPage(r, sweetFormMeta(FormModeEdit)).
		set("Mode", FormModeEdit).
		set("SweetID", sweet.ID).
		set("FormData", sweetFormFrom(model.InputFrom(sweet))))
}

// SweetCreate handles the create form.
// POST /sweets.
func (h *UIHandlers) SweetCreate(w http.ResponseWriter, r *http.Request) {
	h.handleSweetForm(w, r, FormModeCreate)
}

// SweetUpdate handles the edit form.
// POST /sweets/{id}.
func (h *UIHandlers) SweetUpdate(w http.ResponseWriter, r *http.Request) {
	h.handleSweetForm(w, r, FormModeEdit)
}

// handleSweetForm validates the submitted sweet and saves it through the API.
// Invalid input is re-rendered without calling the API; a rejected token ends
// the session.
func (h *UIHandlers) handleSweetForm(w http.ResponseWriter, r *http.Request, mode FormMode) {
	sess := CurrentSession(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if mode == FormModeEdit && id == "" {
		h.NotFound(w, r)
		return
	}

	form, fieldErrs := parseSweetForm(r)
	rerender := func(err error, fieldErrs map[string]string, message string) {
		RenderError(ErrorOpts{
			W:           w,
			R:           r,
			Err:         err,
			FieldErrors: fieldErrs,
			Message:     message,
			Renderer:    h.renderPage,
			PageMeta:    sweetFormMeta(mode),
			Data:        map[string]any{"Mode": mode, "SweetID": id, "FormData": form},
			ShowToast:   err != nil,
		})
	}
	if len(fieldErrs) > 0 {
		rerender(nil, fieldErrs, "")
		return
	}

	ctx := r.Context()
	var err error
	if mode == FormModeEdit {
		_, err = h.Inventory.Update(ctx, *sess, id, form.input())
	} else {
		_, err = h.Inventory.Create(ctx, *sess, form.input())
	}

	switch {
	case err == nil:
		redirect(w, r, "/dashboard")
	case apperrors.IsUnauthorized(err):
		h.forceLogout(w, r, err)
	case errors.Is(err, context.Canceled):
		http.Error(w, "request canceled", http.StatusRequestTimeout)
	case apperrors.IsValidation(err):
		rerender(err, nil, "")
	default:
		h.logger().WarnContext(ctx, "save sweet failed", "mode", mode, "sweet_id", id, "error", err)
		rerender(err, nil, msgSaveFailed)
	}
}
