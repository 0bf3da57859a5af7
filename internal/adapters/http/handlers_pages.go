package web

import (
	"net/http"

	"symptowise/internal/application/projections"
)

// handleHome renders the landing page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "home.html", page{
		Title:  app.Site.Tagline,
		Active: "home",
		View:   projections.QueryGetHome(app.Site),
	})
}

// handleAbout renders the About page.
func handleAbout(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "about.html", page{
		Title:  "About",
		Active: "about",
		View:   projections.QueryGetAbout(app.Site),
	})
}
