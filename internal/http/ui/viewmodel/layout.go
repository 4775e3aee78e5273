// Package viewmodel holds the page chrome shared by every storefront template.
package viewmodel

// User is the signed-in visitor as shown in the navigation bar.
type User struct {
	Email string
	Role  string
}

// Layout is the chrome around a page: titles, navigation and auth state.
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	User            *User
}

// DocumentTitle is the <title> text. Typed page models embedding Layout
// expose it so htmx swaps can keep the browser tab in sync.
func (l Layout) DocumentTitle() string { return l.Title }

// Titled is satisfied by any model embedding Layout.
type Titled interface {
	DocumentTitle() string
}
