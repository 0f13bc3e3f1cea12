package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/store"
)

type HomeHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Guard        *AuthGuard
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	vehicles, err := h.Store.GetAllVehicles()
	if err != nil {
		slog.Error("Failed to load vehicles", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":    "CSE Motors",
		"Nav":      navClassifications(h.Store),
		"Vehicles": vehicles,
		"Flashes":  GetFlash(session),
	}
	if claims := h.Guard.identity(r); claims != nil {
		data["AccountData"] = claims
	}
	session.Save(r, w)
	render(w, h.Templates, "home.html", data)
}
