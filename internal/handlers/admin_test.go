package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAPIUnauthenticatedIs401(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)

	resp := app.get(t, client, "/admin/api/stats")
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
}

func TestAdminAPINonAdminIs403(t *testing.T) {
	app := newTestApp(t)
	for _, accountType := range []string{"Client", "Employee"} {
		client := app.newClient(t)
		id := app.createAccount(t, accountType+"@test.com", "Password1234!", accountType)
		app.loginAs(t, client, id)

		resp := app.get(t, client, "/admin/api/stats")
		require.Equal(t, http.StatusForbidden, resp.StatusCode,
			"%s must not reach the admin API", accountType)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, false, body["success"], "hard failures are JSON, not redirects")
	}
}

func TestAdminDashNonStaffRedirectsSoftly(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	id := app.createAccount(t, "client@test.com", "Password1234!", "Client")
	app.loginAs(t, client, id)

	resp := app.get(t, client, "/admin/dash")
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "page routes fail soft")
	assert.Equal(t, "/account/management", resp.Header.Get("Location"))
}

func TestAdminStats(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	admin := app.createAccount(t, "admin@test.com", "Password1234!", "Admin")
	app.loginAs(t, client, admin)
	seedTestVehicle(t, app, "Honda", "Accord", 20000)

	resp := app.get(t, client, "/admin/api/stats")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool `json:"success"`
		Stats   struct {
			TotalAccounts int
			TotalVehicles int
		} `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Stats.TotalAccounts)
	assert.Equal(t, 1, body.Stats.TotalVehicles)
}

func TestAdminCannotChangeOwnRole(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	admin := app.createAccount(t, "admin@test.com", "Password1234!", "Admin")
	app.loginAs(t, client, admin)

	payload, _ := json.Marshal(map[string]interface{}{
		"account_id":   admin,
		"account_type": "Client",
	})
	req, err := http.NewRequest(http.MethodPut, app.Server.URL+"/admin/api/users/role", bytes.NewReader(payload))
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	account, err := app.Store.GetAccountByID(admin)
	require.NoError(t, err)
	assert.Equal(t, "Admin", account.Type)
}

func TestAdminChangesOtherRole(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	admin := app.createAccount(t, "admin@test.com", "Password1234!", "Admin")
	target := app.createAccount(t, "clerk@test.com", "Password1234!", "Client")
	app.loginAs(t, client, admin)

	payload, _ := json.Marshal(map[string]interface{}{
		"account_id":   target,
		"account_type": "Employee",
	})
	req, err := http.NewRequest(http.MethodPut, app.Server.URL+"/admin/api/users/role", bytes.NewReader(payload))
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	account, err := app.Store.GetAccountByID(target)
	require.NoError(t, err)
	assert.Equal(t, "Employee", account.Type)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	admin := app.createAccount(t, "admin@test.com", "Password1234!", "Admin")
	app.loginAs(t, client, admin)

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/admin/api/users/%d", app.Server.URL, admin), nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	account, err := app.Store.GetAccountByID(admin)
	require.NoError(t, err)
	assert.NotNil(t, account, "the admin account survives")
}

func TestAdminDeletesOtherAccount(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	admin := app.createAccount(t, "admin@test.com", "Password1234!", "Admin")
	target := app.createAccount(t, "gone@test.com", "Password1234!", "Client")
	app.loginAs(t, client, admin)

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/admin/api/users/%d", app.Server.URL, target), nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	account, err := app.Store.GetAccountByID(target)
	require.NoError(t, err)
	assert.Nil(t, account)
}
