package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome      = "home"
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
	PageSweetForm = "sweet-form"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Cookie names shared by the auth handlers and guards.
const (
	SessionCookieName = "session_id"
)

// User-facing notices. Failures are deliberately generic; the API's detail is
// only surfaced on the login and register forms.
const (
	msgRegistered       = "Registered! Now login."
	msgLoginFailed      = "Login failed: "
	msgRegisterFailed   = "Error: "
	msgSomethingWrong   = "Something went wrong"
	msgPurchaseOK       = "Purchase successful"
	msgPurchaseFailed   = "Purchase failed"
	msgRestockOK        = "Restocked"
	msgRestockFailed    = "Restock failed"
	msgSaveFailed       = "Save failed"
	msgDeleteOK         = "Deleted"
	msgDeleteFailed     = "Delete failed"
	msgSessionEnded     = "Your session has ended. Please log in again."
	msgGenericErrorWord = "Error"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:      "home-content",
	PageLogin:     "login-content",
	PageRegister:  "register-content",
	PageDashboard: "dashboard-content",
	PageSweetForm: "sweet-form-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}
