package handlers

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/myrayzsiza/cse-340/internal/auth"
	"github.com/myrayzsiza/cse-340/internal/store"
)

var testJWTSecret = []byte("0123456789abcdef0123456789abcdef")

type testApp struct {
	Server   *httptest.Server
	Store    *store.Store
	Registry *Registry
}

// newTestApp wires the full route table against a throwaway database. The
// CSRF wrapper lives in main, not here, so form posts need no token.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	t.Cleanup(func() { st.Close() })

	templates := NewTemplateCache()
	require.NoError(t, templates.Load(filepath.Join("..", "..", "templates")))

	sessionStore := sessions.NewCookieStore([]byte("session-test-key-32-bytes-long!!"))
	guard := &AuthGuard{SessionStore: sessionStore, JWTSecret: testJWTSecret}

	reg := &Registry{
		Home: &HomeHandler{Store: st, Templates: templates, SessionStore: sessionStore, Guard: guard},
		Account: &AccountHandler{
			Store: st, Templates: templates, SessionStore: sessionStore,
			JWTSecret: testJWTSecret, JWTTTL: time.Hour,
		},
		Inventory: &InventoryHandler{Store: st, Templates: templates, SessionStore: sessionStore, UploadDir: t.TempDir()},
		Cart:      &CartHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Orders:    &OrderHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Reviews:   &ReviewHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Search:    &SearchHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Profile:   &ProfileHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Activity:  &ActivityHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Admin:     &AdminHandler{Store: st, Templates: templates, SessionStore: sessionStore},
		Guard:     guard,
	}

	ts := httptest.NewServer(reg.Routes())
	t.Cleanup(ts.Close)
	return &testApp{Server: ts, Store: st, Registry: reg}
}

// newClient returns a cookie-carrying client that does not follow redirects
// and opens a fresh connection per request, so the per-IP rate limiter sees
// distinct clients.
func (app *testApp) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Transport: &http.Transport{DisableKeepAlives: true},
	}
}

// createAccount registers directly through the store and returns the id.
func (app *testApp) createAccount(t *testing.T, email, password, accountType string) int {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	id, err := app.Store.RegisterAccount("Test", "User", email, hash)
	require.NoError(t, err)
	if accountType != "Client" {
		require.NoError(t, app.Store.UpdateAccountType(id, accountType))
	}
	return id
}

// loginAs plants a valid auth cookie in the client's jar without going
// through the login form.
func (app *testApp) loginAs(t *testing.T, client *http.Client, accountID int) {
	t.Helper()
	account, err := app.Store.GetAccountByID(accountID)
	require.NoError(t, err)
	require.NotNil(t, account)

	token, err := auth.GenerateToken(account, testJWTSecret, time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(app.Server.URL)
	require.NoError(t, err)
	client.Jar.SetCookies(u, []*http.Cookie{{Name: auth.CookieName, Value: token}})
}

func (app *testApp) get(t *testing.T, client *http.Client, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(app.Server.URL + path)
	require.NoError(t, err)
	return resp
}

func (app *testApp) postForm(t *testing.T, client *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(app.Server.URL+path, form)
	require.NoError(t, err)
	return resp
}
