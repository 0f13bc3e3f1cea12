package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/auth"
	"github.com/myrayzsiza/cse-340/internal/store"
	"github.com/myrayzsiza/cse-340/internal/validate"
)

type AccountHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	JWTSecret    []byte
	JWTTTL       time.Duration
	CookieSecure bool
}

func (h *AccountHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.JWTTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AccountHandler) logActivity(r *http.Request, accountID int, action, description string) {
	if err := h.Store.LogActivity(accountID, action, description, r.RemoteAddr, r.UserAgent()); err != nil {
		slog.Error("Failed to log activity", "action", action, "error", err)
	}
}

func (h *AccountHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":     "Login",
		"Nav":       navClassifications(h.Store),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "login.html", data)
}

// LoginPost re-renders the form with a generic message on any failure;
// whether the email exists is never revealed.
func (h *AccountHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("account_email"))
	password := r.FormValue("account_password")

	fail := func() {
		renderStatus(w, h.Templates, "login.html", http.StatusUnauthorized, map[string]interface{}{
			"Title":     "Login",
			"Nav":       navClassifications(h.Store),
			"CsrfField": csrf.TemplateField(r),
			"Errors":    []string{"Invalid email or password"},
			"Email":     email,
		})
	}

	account, err := h.Store.GetAccountByEmail(email)
	if err != nil {
		slog.Error("Login lookup failed", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if account == nil || !auth.CheckPassword(account.Password, password) {
		fail()
		return
	}

	token, err := auth.GenerateToken(account, h.JWTSecret, h.JWTTTL)
	if err != nil {
		slog.Error("Failed to sign token", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	h.setAuthCookie(w, token)
	h.logActivity(r, account.ID, "login", "Logged in")

	session, _ := h.SessionStore.Get(r, SessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back, " + account.FirstName + "!"})
	session.Save(r, w)
	http.Redirect(w, r, "/account/management", http.StatusSeeOther)
}

func (h *AccountHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":     "Register",
		"Nav":       navClassifications(h.Store),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "register.html", data)
}

func (h *AccountHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	firstName := strings.TrimSpace(r.FormValue("account_firstname"))
	lastName := strings.TrimSpace(r.FormValue("account_lastname"))
	email := strings.TrimSpace(r.FormValue("account_email"))
	password := r.FormValue("account_password")

	var errs []string
	if firstName == "" {
		errs = append(errs, "First name is required.")
	}
	if lastName == "" {
		errs = append(errs, "Last name is required.")
	}
	if email == "" {
		errs = append(errs, "Email is required.")
	} else if !validate.IsValidEmail(email) {
		errs = append(errs, "Valid email is required.")
	}
	errs = append(errs, validate.PasswordIssues(password)...)

	if len(errs) == 0 {
		existing, err := h.Store.GetAccountByEmail(email)
		if err != nil {
			slog.Error("Registration lookup failed", "error", err)
			renderServerError(w, h.Templates, navClassifications(h.Store))
			return
		}
		if existing != nil {
			errs = append(errs, "An account with that email already exists.")
		}
	}

	if len(errs) > 0 {
		renderStatus(w, h.Templates, "register.html", http.StatusBadRequest, map[string]interface{}{
			"Title":     "Register",
			"Nav":       navClassifications(h.Store),
			"CsrfField": csrf.TemplateField(r),
			"Errors":    errs,
			"FirstName": firstName,
			"LastName":  lastName,
			"Email":     email,
		})
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	accountID, err := h.Store.RegisterAccount(firstName, lastName, email, hashed)
	if err != nil {
		slog.Error("Failed to register account", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if _, err := h.Store.CreateProfile(accountID); err != nil {
		slog.Error("Failed to create profile", "account_id", accountID, "error", err)
	}
	h.logActivity(r, accountID, "register", "Account created")

	session, _ := h.SessionStore.Get(r, SessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: "Registration complete. Please log in."})
	session.Save(r, w)
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

func (h *AccountHandler) Management(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":       "Account Management",
		"Nav":         navClassifications(h.Store),
		"AccountData": claims,
		"IsStaff":     auth.IsStaff(claims.AccountType),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "management.html", data)
}

func (h *AccountHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	account, err := h.Store.GetAccountByID(claims.AccountID)
	if err != nil {
		slog.Error("Failed to load account", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if account == nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":     "Update Account",
		"Nav":       navClassifications(h.Store),
		"Account":   account,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "account_update.html", data)
}

// UpdateInfo re-checks that the posted account id matches the
// authenticated identity; the cookie alone is not trusted for mutations.
func (h *AccountHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)

	accountID, err := strconv.Atoi(r.FormValue("account_id"))
	if err != nil || accountID != claims.AccountID {
		session.AddFlash(FlashMessage{Type: "error", Message: "You can only update your own account."})
		session.Save(r, w)
		http.Redirect(w, r, "/account/management", http.StatusSeeOther)
		return
	}

	firstName := strings.TrimSpace(r.FormValue("account_firstname"))
	lastName := strings.TrimSpace(r.FormValue("account_lastname"))
	email := strings.TrimSpace(r.FormValue("account_email"))

	var errs []string
	if firstName == "" {
		errs = append(errs, "First name is required.")
	}
	if lastName == "" {
		errs = append(errs, "Last name is required.")
	}
	if email == "" {
		errs = append(errs, "Email is required.")
	} else if !validate.IsValidEmail(email) {
		errs = append(errs, "Valid email is required.")
	}

	if len(errs) > 0 {
		account, _ := h.Store.GetAccountByID(accountID)
		renderStatus(w, h.Templates, "account_update.html", http.StatusBadRequest, map[string]interface{}{
			"Title":     "Update Account",
			"Nav":       navClassifications(h.Store),
			"Account":   account,
			"CsrfField": csrf.TemplateField(r),
			"Errors":    errs,
			"FirstName": firstName,
			"LastName":  lastName,
			"Email":     email,
		})
		return
	}

	if err := h.Store.UpdateAccountInfo(accountID, firstName, lastName, email); err != nil {
		slog.Error("Failed to update account", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	// Claims carry the name and email; refresh the cookie so pages show
	// the new values without a re-login.
	if account, err := h.Store.GetAccountByID(accountID); err == nil && account != nil {
		if token, err := auth.GenerateToken(account, h.JWTSecret, h.JWTTTL); err == nil {
			h.setAuthCookie(w, token)
		}
	}
	h.logActivity(r, accountID, "account_update", "Account information updated")

	session.AddFlash(FlashMessage{Type: "success", Message: "Account information updated successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/account/management", http.StatusSeeOther)
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)

	accountID, err := strconv.Atoi(r.FormValue("account_id"))
	if err != nil || accountID != claims.AccountID {
		session.AddFlash(FlashMessage{Type: "error", Message: "You can only change your own password."})
		session.Save(r, w)
		http.Redirect(w, r, "/account/management", http.StatusSeeOther)
		return
	}

	password := r.FormValue("account_password")
	confirm := r.FormValue("account_password_confirm")

	errs := validate.PasswordIssues(password)
	if confirm == "" {
		errs = append(errs, "Please confirm your password.")
	} else if password != confirm {
		errs = append(errs, "Passwords do not match.")
	}

	if len(errs) > 0 {
		account, _ := h.Store.GetAccountByID(accountID)
		renderStatus(w, h.Templates, "account_update.html", http.StatusBadRequest, map[string]interface{}{
			"Title":     "Update Account",
			"Nav":       navClassifications(h.Store),
			"Account":   account,
			"CsrfField": csrf.TemplateField(r),
			"Errors":    errs,
		})
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if err := h.Store.UpdatePassword(accountID, hashed); err != nil {
		slog.Error("Failed to update password", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	h.logActivity(r, accountID, "password_change", "Password changed")

	session.AddFlash(FlashMessage{Type: "success", Message: "Password changed successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/account/management", http.StatusSeeOther)
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	session, _ := h.SessionStore.Get(r, SessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: "You have been logged out."})
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccountHandler) ForgotPasswordGet(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":     "Forgot Password",
		"Nav":       navClassifications(h.Store),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "forgot_password.html", data)
}

// ForgotPasswordPost answers identically whether or not the email exists.
func (h *AccountHandler) ForgotPasswordPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	email := strings.TrimSpace(r.FormValue("account_email"))

	account, err := h.Store.GetAccountByEmail(email)
	if err != nil {
		slog.Error("Reset lookup failed", "error", err)
	}
	if account != nil {
		token := uuid.New().String()
		if err := h.Store.SaveResetToken(email, token, time.Now().Add(time.Hour)); err != nil {
			slog.Error("Failed to save reset token", "error", err)
		} else {
			// MOCK EMAIL SENDING
			slog.Info("==========================================")
			slog.Info("EMAIL SENT TO: " + email)
			slog.Info("Subject: Password Reset - CSE Motors")
			slog.Info("Reset Link: /account/reset-password/" + token)
			slog.Info("==========================================")
		}
	} else {
		slog.Info("Password reset requested for unknown email", "email", email)
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "If an account with that email exists, a reset link has been sent."})
	http.Redirect(w, r, "/account/forgot-password", http.StatusSeeOther)
}

func (h *AccountHandler) ResetPasswordGet(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	account, err := h.Store.GetAccountByResetToken(token)
	if err != nil {
		slog.Error("Reset token lookup failed", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	session, _ := h.SessionStore.Get(r, SessionName)
	if account == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "That reset link is invalid or has expired."})
		session.Save(r, w)
		http.Redirect(w, r, "/account/forgot-password", http.StatusSeeOther)
		return
	}
	data := map[string]interface{}{
		"Title":     "Reset Password",
		"Nav":       navClassifications(h.Store),
		"CsrfField": csrf.TemplateField(r),
		"Token":     token,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "reset_password.html", data)
}

func (h *AccountHandler) ResetPasswordPost(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	session, _ := h.SessionStore.Get(r, SessionName)

	account, err := h.Store.GetAccountByResetToken(token)
	if err != nil {
		slog.Error("Reset token lookup failed", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if account == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "That reset link is invalid or has expired."})
		session.Save(r, w)
		http.Redirect(w, r, "/account/forgot-password", http.StatusSeeOther)
		return
	}

	password := r.FormValue("account_password")
	confirm := r.FormValue("account_password_confirm")
	errs := validate.PasswordIssues(password)
	if password != confirm {
		errs = append(errs, "Passwords do not match.")
	}
	if len(errs) > 0 {
		renderStatus(w, h.Templates, "reset_password.html", http.StatusBadRequest, map[string]interface{}{
			"Title":     "Reset Password",
			"Nav":       navClassifications(h.Store),
			"CsrfField": csrf.TemplateField(r),
			"Token":     token,
			"Errors":    errs,
		})
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if err := h.Store.UpdatePassword(account.ID, hashed); err != nil {
		slog.Error("Failed to update password", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if err := h.Store.ClearResetToken(account.ID); err != nil {
		slog.Error("Failed to clear reset token", "error", err)
	}
	h.logActivity(r, account.ID, "password_reset", "Password reset via email link")

	session.AddFlash(FlashMessage{Type: "success", Message: "Password reset. Please log in."})
	session.Save(r, w)
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}
