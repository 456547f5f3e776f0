// Package site serves the bundled activities frontend.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

// Register attaches the frontend routes to r.
//
//	GET /           -> redirect to /static/index.html
//	GET /static/*   -> embedded assets
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	root := NewRootHandler()
	r.Get("/", root.HandleRoot)
	r.Get(IndexPath, root.HandleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(FS())))
}

// RootHandler redirects the site root to the frontend.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// HandleIndex writes the index page. http.FileServer would redirect
// /index.html to its directory.
func (h *RootHandler) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}
