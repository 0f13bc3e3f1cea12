package handlers

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/auth"
	"github.com/myrayzsiza/cse-340/internal/models"
)

// SessionName is the single cookie session holding flashes and the
// pending-order snapshot.
const SessionName = "cse-session"

// Register types stored in sessions for gob encoding
func init() {
	gob.Register(FlashMessage{})
	gob.Register(models.PendingOrder{})
	gob.Register([]models.CartItem{})
}

type contextKey string

const accountContextKey contextKey = "accountData"

// AccountFromContext returns the decoded identity attached by the auth
// guard, or nil on unauthenticated requests.
func AccountFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(accountContextKey).(*auth.Claims)
	return claims
}

// FlashMessage structure
type FlashMessage struct {
	Type    string
	Message string
}

// GetFlash retrieves flash messages from the session
func GetFlash(session *sessions.Session) []FlashMessage {
	flashes := session.Flashes()
	var messages []FlashMessage
	for _, f := range flashes {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

// AuthGuard decodes the signed auth cookie and gates routes by login state
// or account type. Page routes fail soft (flash + redirect); API routes
// fail hard (401/403 JSON).
type AuthGuard struct {
	SessionStore *sessions.CookieStore
	JWTSecret    []byte
}

func (g *AuthGuard) identity(r *http.Request) *auth.Claims {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := auth.ValidateToken(cookie.Value, g.JWTSecret)
	if err != nil {
		return nil
	}
	return claims
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// RequireLogin redirects unauthenticated requests to the login page with a
// notice and clears any stale cookie.
func (g *AuthGuard) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := g.identity(r)
		if claims == nil {
			clearAuthCookie(w)
			session, _ := g.SessionStore.Get(r, SessionName)
			session.AddFlash(FlashMessage{Type: "notice", Message: "Please log in to continue."})
			session.Save(r, w)
			http.Redirect(w, r, "/account/login", http.StatusSeeOther)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), accountContextKey, claims)))
	}
}

// RequireStaff gates page routes behind the Employee/Admin account types.
// Authorization failure is soft: notice + redirect to account management.
func (g *AuthGuard) RequireStaff(next http.HandlerFunc) http.HandlerFunc {
	return g.RequireLogin(func(w http.ResponseWriter, r *http.Request) {
		claims := AccountFromContext(r.Context())
		if !auth.IsStaff(claims.AccountType) {
			session, _ := g.SessionStore.Get(r, SessionName)
			session.AddFlash(FlashMessage{Type: "notice", Message: "You do not have permission to access that page."})
			session.Save(r, w)
			http.Redirect(w, r, "/account/management", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

// RequireAdminAPI gates JSON routes: 401 when not logged in, 403 when the
// account type is not Admin.
func (g *AuthGuard) RequireAdminAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := g.identity(r)
		if claims == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "message": "Please log in",
			})
			return
		}
		if !auth.IsAdmin(claims.AccountType) {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"success": false, "message": "Access denied",
			})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), accountContextKey, claims)))
	}
}

// RequireLoginAPI is the hard variant of RequireLogin for AJAX routes.
func (g *AuthGuard) RequireLoginAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := g.identity(r)
		if claims == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "message": "Please log in",
			})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), accountContextKey, claims)))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// LoggingMiddleware logs the details of each HTTP request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)
		slog.Info("HTTP Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
			"ip", r.RemoteAddr,
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SecurityHeadersMiddleware adds standard security headers
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; script-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// RateLimiter throttles a route to one request per window per client IP.
// Stale entries are swept inline on request handling, so constructing a
// limiter starts no goroutine.
type RateLimiter struct {
	visitors  sync.Map
	window    time.Duration
	lastSweep atomic.Int64
}

const rateLimiterSweepInterval = time.Minute

func NewRateLimiter(window time.Duration) *RateLimiter {
	rl := &RateLimiter{window: window}
	rl.lastSweep.Store(time.Now().UnixNano())
	return rl
}

// sweep drops entries older than the window, at most once per interval.
// The CAS keeps concurrent requests from sweeping twice.
func (rl *RateLimiter) sweep(now time.Time) {
	last := rl.lastSweep.Load()
	if now.UnixNano()-last < int64(rateLimiterSweepInterval) {
		return
	}
	if !rl.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	rl.visitors.Range(func(key, value interface{}) bool {
		if now.Sub(value.(time.Time)) > rl.window {
			rl.visitors.Delete(key)
		}
		return true
	})
}

func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		rl.sweep(now)
		ip := r.RemoteAddr
		if lastSeen, ok := rl.visitors.Load(ip); ok {
			if now.Sub(lastSeen.(time.Time)) < rl.window {
				slog.Warn("Rate limit exceeded", "ip", ip)
				http.Error(w, "Too Many Requests. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}
		rl.visitors.Store(ip, now)
		next(w, r)
	}
}
