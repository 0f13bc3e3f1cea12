package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/store"
)

type ProfileHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// View shows the logged-in account's profile, creating an empty one on first
// visit.
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	profile, err := h.Store.GetProfileByAccountID(claims.AccountID)
	if err != nil {
		slog.Error("Failed to load profile", "error", err, "accountID", claims.AccountID)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if profile == nil {
		profile, err = h.Store.CreateProfile(claims.AccountID)
		if err != nil {
			slog.Error("Failed to create profile", "error", err, "accountID", claims.AccountID)
			renderServerError(w, h.Templates, navClassifications(h.Store))
			return
		}
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":       "My Profile",
		"Nav":         navClassifications(h.Store),
		"AccountData": claims,
		"Profile":     profile,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "profile.html", data)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	// Profile rows are keyed by the identity in the cookie, never a posted id.
	if _, err := h.Store.GetProfileByAccountID(claims.AccountID); err != nil {
		slog.Error("Failed to load profile", "error", err, "accountID", claims.AccountID)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	bio := strings.TrimSpace(r.FormValue("bio"))
	if len(bio) > 500 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Bio must be 500 characters or fewer."})
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	err := h.Store.UpdateProfile(claims.AccountID,
		bio,
		strings.TrimSpace(r.FormValue("phone_number")),
		strings.TrimSpace(r.FormValue("address")),
		strings.TrimSpace(r.FormValue("city")),
		strings.TrimSpace(r.FormValue("state")),
		strings.TrimSpace(r.FormValue("zip_code")),
		strings.TrimSpace(r.FormValue("profile_picture")),
	)
	if err != nil {
		slog.Error("Failed to update profile", "error", err, "accountID", claims.AccountID)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving profile."})
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Profile updated."})
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
