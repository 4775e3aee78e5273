// Package sweetshop embeds the storefront's templates and static files so a
// production binary needs nothing beside it. Development builds read the same
// trees from disk instead.
package sweetshop

import "embed"

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
