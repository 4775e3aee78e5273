package httpx

import (
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/http/validation"
)

const maxPasswordLen = 256

//nolint:gochecknoglobals // static page metadata
var (
	loginMeta    = PageMeta{Title: "Sweet Shop - Login", PageTitle: "Login", CurrentPage: PageLogin}
	registerMeta = PageMeta{Title: "Sweet Shop - Register", PageTitle: "Register", CurrentPage: PageRegister}
)

// LoginPage renders the login form. Signed-in visitors go straight to the dashboard.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if CurrentSession(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	q := r.URL.Query()
	h.renderPage(w, r, newPage(r, loginMeta).
		notice(q.Get("notice")).
		set("RedirectURI", localRedirect(q.Get("redirect_uri"), "")))
}

// LoginPost exchanges the submitted credentials for a session.
func (h *UIHandlers) LoginPost(w http.ResponseWriter, r *http.Request) {
	creds, fieldErrors := parseCredentials(r)
	redirectURI := localRedirect(r.PostFormValue("redirect_uri"), "")

	rerender := func(msg string, fieldErrors map[string]string) {
		RenderError(ErrorOpts{
			W:           w,
			R:           r,
			FieldErrors: fieldErrors,
			Message:     msg,
			Renderer:    h.renderForm,
			PageMeta:    loginMeta,
			Data:        map[string]any{"Email": creds.Email, "RedirectURI": redirectURI},
		})
	}

	if len(fieldErrors) > 0 {
		rerender("", fieldErrors)
		return
	}

	res, err := h.Auth.Login(r.Context(), creds)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login failed", "email", creds.Email, "error", err)
		if apperrors.IsValidation(err) && apperrors.GetField(err) != "" {
			rerender("", map[string]string{apperrors.GetField(err): apperrors.GetMessage(err)})
			return
		}
		rerender(msgLoginFailed+detailOr(err, msgGenericErrorWord), nil)
		return
	}

	setSessionCookie(w, r, h.CookieDomain, res.Session)
	redirect(w, r, localRedirect(redirectURI, "/dashboard"))
}

// RegisterPage renders the registration form.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if CurrentSession(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, newPage(r, registerMeta))
}

// RegisterPost creates an account and sends the visitor to log in.
func (h *UIHandlers) RegisterPost(w http.ResponseWriter, r *http.Request) {
	creds, fieldErrors := parseCredentials(r)

	rerender := func(msg string, fieldErrors map[string]string) {
		RenderError(ErrorOpts{
			W:           w,
			R:           r,
			FieldErrors: fieldErrors,
			Message:     msg,
			Renderer:    h.renderForm,
			PageMeta:    registerMeta,
			Data:        map[string]any{"Email": creds.Email},
		})
	}

	if len(fieldErrors) > 0 {
		rerender("", fieldErrors)
		return
	}

	if err := h.Auth.Register(r.Context(), creds); err != nil {
		h.logger().InfoContext(r.Context(), "registration failed", "email", creds.Email, "error", err)
		if apperrors.IsValidation(err) && apperrors.GetField(err) != "" {
			rerender("", map[string]string{apperrors.GetField(err): apperrors.GetMessage(err)})
			return
		}
		msg := msgSomethingWrong
		if detail := apperrors.GetMessage(err); detail != "" {
			msg = msgRegisterFailed + detail
		}
		rerender(msg, nil)
		return
	}

	redirect(w, r, "/login?notice="+url.QueryEscape(msgRegistered))
}

// renderForm adapts renderPage to the ErrorRenderer signature.
func (h *UIHandlers) renderForm(w http.ResponseWriter, r *http.Request, data any) {
	h.renderPage(w, r, data)
}

func parseCredentials(r *http.Request) (domainauth.Credentials, map[string]string) {
	creds := domainauth.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	errs := validation.Errors{}.
		Check("email", creds.Email, validation.Email("Email")).
		Check("password", creds.Password, validation.Text("Password", maxPasswordLen))
	return creds, errs
}

// detailOr returns the API's detail message carried by err, or fallback.
func detailOr(err error, fallback string) string {
	if msg := apperrors.GetMessage(err); msg != "" {
		return msg
	}
	return fallback
}
