package handlers

import (
	"log/slog"
	"net/http"

	"github.com/myrayzsiza/cse-340/internal/models"
	"github.com/myrayzsiza/cse-340/internal/store"
)

func render(w http.ResponseWriter, tc *TemplateCache, name string, data map[string]interface{}) {
	renderStatus(w, tc, name, http.StatusOK, data)
}

func renderStatus(w http.ResponseWriter, tc *TemplateCache, name string, status int, data map[string]interface{}) {
	tmpl := tc.Get(name)
	if tmpl == nil {
		slog.Error("Template not found", "name", name)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to execute template", "name", name, "error", err)
	}
}

func renderNotFound(w http.ResponseWriter, tc *TemplateCache, nav []models.Classification) {
	renderStatus(w, tc, "404.html", http.StatusNotFound, map[string]interface{}{
		"Title": "Not Found",
		"Nav":   nav,
	})
}

func renderForbidden(w http.ResponseWriter, tc *TemplateCache, nav []models.Classification, message string) {
	renderStatus(w, tc, "error.html", http.StatusForbidden, map[string]interface{}{
		"Title":   "Access Denied",
		"Nav":     nav,
		"Message": message,
	})
}

func renderServerError(w http.ResponseWriter, tc *TemplateCache, nav []models.Classification) {
	renderStatus(w, tc, "error.html", http.StatusInternalServerError, map[string]interface{}{
		"Title":   "Server Error",
		"Nav":     nav,
		"Message": "Something went wrong on our end. Please try again.",
	})
}

// navClassifications loads the classification list driving the site nav;
// a failed read degrades to an empty nav rather than failing the page.
func navClassifications(s *store.Store) []models.Classification {
	nav, err := s.GetClassifications()
	if err != nil {
		slog.Error("Failed to load classifications for nav", "error", err)
		return nil
	}
	return nav
}
