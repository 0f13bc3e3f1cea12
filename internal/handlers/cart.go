package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/models"
	"github.com/myrayzsiza/cse-340/internal/store"
	"github.com/myrayzsiza/cse-340/internal/validate"
)

// pendingOrderKey is the single session key holding the checkout snapshot.
const pendingOrderKey = "pendingOrder"

// defaultPendingOrderTTL bounds how long a snapshot stays confirmable.
const defaultPendingOrderTTL = 30 * time.Minute

type CartHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	// PendingTTL overrides the snapshot lifetime; zero means the default.
	PendingTTL time.Duration
}

func (h *CartHandler) pendingTTL() time.Duration {
	if h.PendingTTL > 0 {
		return h.PendingTTL
	}
	return defaultPendingOrderTTL
}

// Add is an AJAX endpoint: upserts the (account, vehicle) cart row and
// returns the distinct-row count for the cart badge.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	invID, err := strconv.Atoi(r.PathValue("invId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid vehicle ID"})
		return
	}

	quantity := 1
	if q := r.FormValue("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid quantity"})
			return
		}
	}
	if quantity < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid quantity"})
		return
	}

	vehicle, err := h.Store.GetVehicleByID(invID)
	if err != nil {
		slog.Error("Failed to load vehicle", "inv_id", invID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Error adding to cart"})
		return
	}
	if vehicle == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "Vehicle not found"})
		return
	}

	if err := h.Store.AddToCart(claims.AccountID, invID, quantity); err != nil {
		slog.Error("Failed to add to cart", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Error adding to cart"})
		return
	}

	count, err := h.Store.GetCartItemCount(claims.AccountID)
	if err != nil {
		slog.Error("Failed to count cart items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Error adding to cart"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Vehicle added to cart",
		"cartCount": count,
	})
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	items, err := h.Store.GetCartByAccountID(claims.AccountID)
	if err != nil {
		slog.Error("Failed to load cart", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	total, err := h.Store.GetCartTotal(claims.AccountID)
	if err != nil {
		slog.Error("Failed to total cart", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":     "Shopping Cart",
		"Nav":       navClassifications(h.Store),
		"CartItems": items,
		"CartTotal": total,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "cart.html", data)
}

// UpdateQuantity is an AJAX endpoint. Ownership is checked here; the store
// layer does not enforce it.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	cartID, err := strconv.Atoi(r.PathValue("cartId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid cart item"})
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid quantity"})
		return
	}

	item, err := h.Store.GetCartItemByID(cartID)
	if err != nil {
		slog.Error("Failed to load cart item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Error updating quantity"})
		return
	}
	if item == nil || item.AccountID != claims.AccountID {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{"success": false, "message": "Unauthorized"})
		return
	}

	if err := h.Store.UpdateCartQuantity(cartID, quantity); err != nil {
		slog.Error("Failed to update quantity", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Error updating quantity"})
		return
	}

	total, err := h.Store.GetCartTotal(claims.AccountID)
	if err != nil {
		slog.Error("Failed to total cart", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Error updating quantity"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Quantity updated",
		"newTotal": total,
	})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	cartID, err := strconv.Atoi(r.PathValue("cartId"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid cart item."})
		http.Redirect(w, r, "/cart/view", http.StatusSeeOther)
		return
	}

	item, err := h.Store.GetCartItemByID(cartID)
	if err != nil {
		slog.Error("Failed to load cart item", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if item == nil || item.AccountID != claims.AccountID {
		session.AddFlash(FlashMessage{Type: "error", Message: "Item not found in your cart."})
		http.Redirect(w, r, "/cart/view", http.StatusSeeOther)
		return
	}

	if err := h.Store.RemoveFromCart(cartID); err != nil {
		slog.Error("Failed to remove cart item", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "Item removed from cart."})
	http.Redirect(w, r, "/cart/view", http.StatusSeeOther)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	if _, err := h.Store.ClearCart(claims.AccountID); err != nil {
		slog.Error("Failed to clear cart", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "Cart cleared."})
	http.Redirect(w, r, "/cart/view", http.StatusSeeOther)
}

// Checkout renders the shipping form; an empty cart bounces straight back
// to the cart view.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)

	items, err := h.Store.GetCartByAccountID(claims.AccountID)
	if err != nil {
		slog.Error("Failed to load cart", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if len(items) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart/view", http.StatusSeeOther)
		return
	}

	account, err := h.Store.GetAccountByID(claims.AccountID)
	if err != nil {
		slog.Error("Failed to load account", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	total, err := h.Store.GetCartTotal(claims.AccountID)
	if err != nil {
		slog.Error("Failed to total cart", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	data := map[string]interface{}{
		"Title":     "Checkout",
		"Nav":       navClassifications(h.Store),
		"CartItems": items,
		"CartTotal": total,
		"Account":   account,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "checkout.html", data)
}

// Process validates the shipping form and, on success, snapshots the cart
// plus shipping details into the session as the pending order. The
// snapshot, not a later cart re-read, is what confirmation materializes.
func (h *CartHandler) Process(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)

	items, err := h.Store.GetCartByAccountID(claims.AccountID)
	if err != nil {
		slog.Error("Failed to load cart", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if len(items) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart/view", http.StatusSeeOther)
		return
	}

	phone := strings.TrimSpace(r.FormValue("phone"))
	address := strings.TrimSpace(r.FormValue("address"))
	city := strings.TrimSpace(r.FormValue("city"))
	state := strings.TrimSpace(r.FormValue("state"))
	zip := strings.TrimSpace(r.FormValue("zip"))
	paymentAccount := strings.TrimSpace(r.FormValue("payment_account"))

	var errs []string
	if !validate.Required(phone) {
		errs = append(errs, "Phone number is required")
	}
	if !validate.Required(address) {
		errs = append(errs, "Address is required")
	}
	if !validate.Required(city) {
		errs = append(errs, "City is required")
	}
	if !validate.Required(state) {
		errs = append(errs, "State is required")
	}
	if !validate.Required(zip) {
		errs = append(errs, "Zip code is required")
	}
	if !validate.Required(paymentAccount) {
		errs = append(errs, "Payment account number is required")
	}

	if len(errs) > 0 {
		account, _ := h.Store.GetAccountByID(claims.AccountID)
		total, _ := h.Store.GetCartTotal(claims.AccountID)
		renderStatus(w, h.Templates, "checkout.html", http.StatusBadRequest, map[string]interface{}{
			"Title":          "Checkout",
			"Nav":            navClassifications(h.Store),
			"CartItems":      items,
			"CartTotal":      total,
			"Account":        account,
			"CsrfField":      csrf.TemplateField(r),
			"Errors":         errs,
			"Phone":          phone,
			"Address":        address,
			"City":           city,
			"State":          state,
			"Zip":            zip,
			"PaymentAccount": paymentAccount,
		})
		return
	}

	total, err := h.Store.GetCartTotal(claims.AccountID)
	if err != nil {
		slog.Error("Failed to total cart", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	session.Values[pendingOrderKey] = models.PendingOrder{
		AccountID:      claims.AccountID,
		Items:          items,
		Phone:          phone,
		Address:        address,
		City:           city,
		State:          state,
		Zip:            zip,
		PaymentAccount: paymentAccount,
		Total:          total,
		CreatedAt:      time.Now(),
	}
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	http.Redirect(w, r, "/cart/confirm-order", http.StatusSeeOther)
}

// Confirm materializes the pending order. The snapshot must be present,
// owned by the requester, and fresh; anything else is treated as an
// expired session and no order rows are created.
func (h *CartHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)

	expired := func() {
		delete(session.Values, pendingOrderKey)
		session.AddFlash(FlashMessage{Type: "error", Message: "Session expired, please checkout again."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart/view", http.StatusSeeOther)
	}

	pending, ok := session.Values[pendingOrderKey].(models.PendingOrder)
	if !ok || pending.AccountID != claims.AccountID || time.Since(pending.CreatedAt) > h.pendingTTL() {
		expired()
		return
	}

	orderIDs, err := h.Store.PlaceOrdersFromSnapshot(pending)
	if err != nil {
		slog.Error("Failed to place orders", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	// Totals come from the snapshot's unit prices and quantities.
	totalItems := 0
	totalPrice := 0.0
	for _, item := range pending.Items {
		totalItems += item.Quantity
		totalPrice += item.Price * float64(item.Quantity)
	}

	if err := h.Store.LogActivity(claims.AccountID, "order_placed",
		fmt.Sprintf("Placed %d order(s) totaling $%.2f", len(orderIDs), totalPrice),
		r.RemoteAddr, r.UserAgent()); err != nil {
		slog.Error("Failed to log activity", "error", err)
	}

	delete(session.Values, pendingOrderKey)
	session.AddFlash(FlashMessage{Type: "success", Message: fmt.Sprintf("Order placed successfully! %d vehicle(s) ordered.", totalItems)})
	session.Save(r, w)

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = strconv.Itoa(id)
	}
	http.Redirect(w, r, "/cart/order-confirmation?orders="+strings.Join(ids, ","), http.StatusSeeOther)
}

// Confirmation shows the orders named in the query string, filtered to
// those owned by the requester. No ids at all is a 404; ids present but
// none owned is an explicit access-denied, distinct from not-found.
func (h *CartHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	// Unparseable ids are dropped here, so a query carrying only junk ids
	// reads the same as one carrying none: not-found, not access-denied.
	raw := r.URL.Query().Get("orders")
	var orderIDs []int
	if raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				orderIDs = append(orderIDs, id)
			}
		}
	}
	if len(orderIDs) == 0 {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	var orders []models.Order
	totalPrice := 0.0
	for _, id := range orderIDs {
		order, err := h.Store.GetOrderByID(id)
		if err != nil {
			slog.Error("Failed to load order", "order_id", id, "error", err)
			renderServerError(w, h.Templates, navClassifications(h.Store))
			return
		}
		if order != nil && order.AccountID == claims.AccountID {
			orders = append(orders, *order)
			totalPrice += order.Price
		}
	}
	if len(orders) == 0 {
		renderForbidden(w, h.Templates, navClassifications(h.Store), "You do not have permission to view this order")
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":      "Order Confirmation",
		"Nav":        navClassifications(h.Store),
		"Orders":     orders,
		"TotalPrice": totalPrice,
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "order_confirmation.html", data)
}
