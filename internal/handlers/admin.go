package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/store"
)

var validAccountTypes = map[string]bool{
	"Client":   true,
	"Employee": true,
	"Admin":    true,
}

type AdminHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *AdminHandler) logActivity(r *http.Request, accountID int, action, description string) {
	if err := h.Store.LogActivity(accountID, action, description, r.RemoteAddr, r.UserAgent()); err != nil {
		slog.Error("Failed to log activity", "action", action, "error", err)
	}
}

// Dashboard renders the back-office landing page; its panels fetch data from
// the /admin/api endpoints.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":       "Admin Dashboard",
		"Nav":         navClassifications(h.Store),
		"AccountData": AccountFromContext(r.Context()),
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "admin_dash.html", data)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		slog.Error("Failed to load dashboard stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error loading stats",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "stats": stats,
	})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.GetAllAccounts()
	if err != nil {
		slog.Error("Failed to load accounts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error loading accounts",
		})
		return
	}
	roles, err := h.Store.GetAllRoles()
	if err != nil {
		slog.Error("Failed to load roles", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error loading accounts",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "accounts": accounts, "roles": roles,
	})
}

// UpdateUserRole changes another account's type. Admins cannot change their
// own type, which would otherwise let the last admin lock everyone out.
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	var req struct {
		AccountID   int    `json:"account_id"`
		AccountType string `json:"account_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Invalid request body",
		})
		return
	}

	if !validAccountTypes[req.AccountType] {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Invalid account type",
		})
		return
	}
	if req.AccountID == claims.AccountID {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "You cannot change your own account type",
		})
		return
	}

	target, err := h.Store.GetAccountByID(req.AccountID)
	if err != nil {
		slog.Error("Failed to load account", "error", err, "accountID", req.AccountID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error updating account",
		})
		return
	}
	if target == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "Account not found",
		})
		return
	}

	if err := h.Store.UpdateAccountType(req.AccountID, req.AccountType); err != nil {
		slog.Error("Failed to update account type", "error", err, "accountID", req.AccountID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error updating account",
		})
		return
	}

	h.logActivity(r, claims.AccountID, "role_changed",
		fmt.Sprintf("Changed %s to %s", target.Email, req.AccountType))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "Account type updated",
	})
}

// DeleteUser removes an account and its dependent rows. Self-deletion is
// rejected for the same reason self-demotion is.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	accountID, err := strconv.Atoi(r.PathValue("accountId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Invalid account ID",
		})
		return
	}
	if accountID == claims.AccountID {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "You cannot delete your own account",
		})
		return
	}

	target, err := h.Store.GetAccountByID(accountID)
	if err != nil {
		slog.Error("Failed to load account", "error", err, "accountID", accountID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error deleting account",
		})
		return
	}
	if target == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "Account not found",
		})
		return
	}

	if err := h.Store.DeleteAccount(accountID); err != nil {
		slog.Error("Failed to delete account", "error", err, "accountID", accountID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error deleting account",
		})
		return
	}

	h.logActivity(r, claims.AccountID, "account_deleted",
		fmt.Sprintf("Deleted account %s", target.Email))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "Account deleted",
	})
}
