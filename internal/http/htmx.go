package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// htmx request and response headers, in canonical form.
const (
	hxRequest  = "Hx-Request"
	hxRedirect = "Hx-Redirect"
	hxPushURL  = "Hx-Push-Url"
	hxTrigger  = "Hx-Trigger"
)

// IsHTMX reports whether htmx issued the request. Such requests get fragments
// instead of full pages.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(hxRequest), "true")
}

// redirect navigates the browser to url: an Hx-Redirect with 204 for htmx,
// a 303 otherwise.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set(hxRedirect, url)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// pushURL records url in the browser history after the swap.
func pushURL(w http.ResponseWriter, url string) {
	w.Header().Set(hxPushURL, url)
}

// toast is the showToast event payload read by app.js.
type toast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// triggerToast raises a showToast event. Blank messages are dropped.
func triggerToast(w http.ResponseWriter, message, kind string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	b, err := json.Marshal(map[string]toast{"showToast": {Message: message, Type: kind}})
	if err != nil {
		return
	}
	w.Header().Set(hxTrigger, string(b))
}
