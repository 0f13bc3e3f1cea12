package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func seedTestVehicle(t *testing.T, app *testApp, make, model string, price float64) int {
	t.Helper()
	id, err := app.Store.AddVehicle(&models.Vehicle{
		Make: make, Model: model, Year: 2021,
		Description: "test vehicle", Price: price,
		Image:     "/images/vehicles/no-image.png",
		Thumbnail: "/images/vehicles/no-image-tn.png",
		Miles:     10000, Color: "Red", ClassificationID: 1,
	})
	require.NoError(t, err)
	return id
}

var shippingForm = url.Values{
	"phone":           {"555-0100"},
	"address":         {"123 Main St"},
	"city":            {"Rexburg"},
	"state":           {"ID"},
	"zip":             {"83440"},
	"payment_account": {"4111111111111111"},
}

func TestCartAddReturnsBadgeCount(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)
	inv := seedTestVehicle(t, app, "Honda", "Accord", 20000)

	resp := app.postForm(t, client, fmt.Sprintf("/cart/add/%d", inv), url.Values{"quantity": {"2"}})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success   bool    `json:"success"`
		CartCount float64 `json:"cartCount"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 1.0, body.CartCount, "badge counts rows, not quantities")
}

func TestCartAddRejectsZeroQuantity(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)
	inv := seedTestVehicle(t, app, "Honda", "Accord", 20000)

	resp := app.postForm(t, client, fmt.Sprintf("/cart/add/%d", inv), url.Values{"quantity": {"0"}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartAddUnknownVehicleIs404(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)

	resp := app.postForm(t, client, "/cart/add/9999", url.Values{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartAddRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)

	resp := app.postForm(t, client, "/cart/add/1", url.Values{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "AJAX routes fail hard, not with a redirect")
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)

	resp := app.get(t, client, "/cart/checkout")
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart/view", resp.Header.Get("Location"))
}

func TestProcessOrderMissingFieldsStaySticky(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)
	inv := seedTestVehicle(t, app, "Honda", "Accord", 20000)
	require.NoError(t, app.Store.AddToCart(acct, inv, 1))

	form := url.Values{}
	for k, v := range shippingForm {
		form[k] = v
	}
	form.Del("phone")

	resp := app.postForm(t, client, "/cart/process-order", form)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Phone number is required")
	assert.Contains(t, string(body), "123 Main St", "valid fields stay filled in")
}

func TestConfirmWithoutSnapshotPlacesNothing(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)

	resp := app.get(t, client, "/cart/confirm-order")
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart/view", resp.Header.Get("Location"))

	count, err := app.Store.GetTotalOrdersCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConfirmForeignSnapshotPlacesNothing(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	buyer := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	intruder := app.createAccount(t, "intruder@test.com", "Password1234!", "Client")
	app.loginAs(t, client, buyer)
	inv := seedTestVehicle(t, app, "Honda", "Accord", 20000)
	require.NoError(t, app.Store.AddToCart(buyer, inv, 1))

	resp := app.postForm(t, client, "/cart/process-order", shippingForm)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// Same browser session, different signed-in account: the snapshot no
	// longer belongs to the requester and must not materialize.
	app.loginAs(t, client, intruder)
	resp = app.get(t, client, "/cart/confirm-order")
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart/view", resp.Header.Get("Location"))

	count, err := app.Store.GetTotalOrdersCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	items, err := app.Store.GetCartByAccountID(buyer)
	require.NoError(t, err)
	assert.Len(t, items, 1, "the owner's cart is left alone")
}

func TestConfirmStaleSnapshotExpires(t *testing.T) {
	app := newTestApp(t)
	app.Registry.Cart.PendingTTL = time.Nanosecond
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)
	inv := seedTestVehicle(t, app, "Honda", "Accord", 20000)
	require.NoError(t, app.Store.AddToCart(acct, inv, 1))

	resp := app.postForm(t, client, "/cart/process-order", shippingForm)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = app.get(t, client, "/cart/confirm-order")
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart/view", resp.Header.Get("Location"))

	count, err := app.Store.GetTotalOrdersCount()
	require.NoError(t, err)
	assert.Zero(t, count, "a stale snapshot never places orders")

	items, err := app.Store.GetCartByAccountID(acct)
	require.NoError(t, err)
	assert.Len(t, items, 1, "the cart survives an expired checkout")
}

// placeOrder runs checkout end to end for the logged-in client and returns
// the new order ids parsed from the confirmation redirect.
func placeOrder(t *testing.T, app *testApp, client *http.Client) []int {
	t.Helper()

	resp := app.postForm(t, client, "/cart/process-order", shippingForm)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/cart/confirm-order", resp.Header.Get("Location"))

	resp = app.get(t, client, "/cart/confirm-order")
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/cart/order-confirmation", loc.Path)

	var ids []int
	for _, part := range strings.Split(loc.Query().Get("orders"), ",") {
		id, err := strconv.Atoi(part)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestCheckoutFlowPlacesOrdersAndClearsCart(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)

	sedan := seedTestVehicle(t, app, "Honda", "Accord", 20000)
	truck := seedTestVehicle(t, app, "Ford", "F-150", 25000)
	require.NoError(t, app.Store.AddToCart(acct, sedan, 1))
	require.NoError(t, app.Store.AddToCart(acct, truck, 1))

	ids := placeOrder(t, app, client)
	require.Len(t, ids, 2, "one order row per cart line")

	items, err := app.Store.GetCartByAccountID(acct)
	require.NoError(t, err)
	assert.Empty(t, items, "cart is cleared after confirmation")

	for _, id := range ids {
		order, err := app.Store.GetOrderByID(id)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, acct, order.AccountID)
		assert.Equal(t, "123 Main St", order.Address)
	}
}

func TestConfirmSnapshotIsSingleUse(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)
	acct := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	app.loginAs(t, client, acct)
	inv := seedTestVehicle(t, app, "Honda", "Accord", 20000)
	require.NoError(t, app.Store.AddToCart(acct, inv, 1))

	placeOrder(t, app, client)

	// A replayed confirm finds no snapshot and must not place anything.
	resp := app.get(t, client, "/cart/confirm-order")
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart/view", resp.Header.Get("Location"))

	count, err := app.Store.GetTotalOrdersCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConfirmationOwnershipFiltering(t *testing.T) {
	app := newTestApp(t)
	buyer := app.createAccount(t, "buyer@test.com", "Password1234!", "Client")
	other := app.createAccount(t, "other@test.com", "Password1234!", "Client")

	buyerClient := app.newClient(t)
	app.loginAs(t, buyerClient, buyer)
	inv := seedTestVehicle(t, app, "Honda", "Accord", 45000)
	require.NoError(t, app.Store.AddToCart(buyer, inv, 1))
	ids := placeOrder(t, app, buyerClient)
	require.Len(t, ids, 1)

	// Owner sees the order even with a bogus extra id tacked on.
	resp := app.get(t, buyerClient, fmt.Sprintf("/cart/order-confirmation?orders=%d,9999", ids[0]))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Accord")
	assert.Contains(t, string(body), "45,000")

	// Another account asking for the same ids gets an explicit denial.
	otherClient := app.newClient(t)
	app.loginAs(t, otherClient, other)
	resp = app.get(t, otherClient, fmt.Sprintf("/cart/order-confirmation?orders=%d", ids[0]))
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "You do not have permission to view this order")

	// No parseable ids at all is not-found, not denial.
	resp = app.get(t, buyerClient, "/cart/order-confirmation?orders=abc")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = app.get(t, buyerClient, "/cart/order-confirmation")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
