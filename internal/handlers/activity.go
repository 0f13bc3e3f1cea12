package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/store"
)

const activityPageLimit = 50

type ActivityHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Mine shows the logged-in account's recent activity.
func (h *ActivityHandler) Mine(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	entries, err := h.Store.GetActivityByAccountID(claims.AccountID, activityPageLimit)
	if err != nil {
		slog.Error("Failed to load activity", "error", err, "accountID", claims.AccountID)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	render(w, h.Templates, "activity.html", map[string]interface{}{
		"Title":       "My Activity",
		"Nav":         navClassifications(h.Store),
		"AccountData": claims,
		"Entries":     entries,
	})
}

// All is the admin view across every account.
func (h *ActivityHandler) All(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.GetAllActivity(activityPageLimit * 4)
	if err != nil {
		slog.Error("Failed to load activity log", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	render(w, h.Templates, "activity.html", map[string]interface{}{
		"Title":       "Site Activity",
		"Nav":         navClassifications(h.Store),
		"AccountData": AccountFromContext(r.Context()),
		"Entries":     entries,
		"SiteWide":    true,
	})
}
