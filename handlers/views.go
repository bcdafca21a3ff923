package handlers

import (
	"net/http"

	"github.com/upb/talent-portal/internal/auth"
	"github.com/upb/talent-portal/middleware"
	"github.com/upb/talent-portal/navigation"
	"github.com/upb/talent-portal/utils"
)

// ViewResponse is the payload served for a page view.
// Page rendering lives in the frontend; the backend only confirms the view
// the guard let through and who is looking at it.
type ViewResponse struct {
	View string     `json:"view"`
	Path string     `json:"path"`
	User *auth.User `json:"user,omitempty"`
}

// Views returns the view factory used to build the navigation table
func Views() navigation.ViewFactory {
	return func(name string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := ViewResponse{View: name, Path: r.URL.Path}
			if loc := middleware.GetLocationFromContext(r.Context()); loc != nil {
				resp.Path = loc.Path
			}
			if h := middleware.GetSessionFromContext(r.Context()); h != nil {
				if u, ok := h.State.User(); ok {
					resp.User = u
				}
			}
			_ = utils.WriteOK(w, resp)
		})
	}
}
