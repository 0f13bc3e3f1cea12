package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/store"
)

const ordersPerPage = 20

var validOrderStatuses = map[string]bool{
	"Pending":    true,
	"Processing": true,
	"Shipped":    true,
	"Delivered":  true,
	"Cancelled":  true,
}

type OrderHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// History shows the logged-in account's own orders, newest first.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	orders, err := h.Store.GetOrdersByAccountID(claims.AccountID)
	if err != nil {
		slog.Error("Failed to load order history", "error", err, "accountID", claims.AccountID)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":       "My Orders",
		"Nav":         navClassifications(h.Store),
		"AccountData": claims,
		"Orders":      orders,
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "order_history.html", data)
}

// AdminList shows all orders across accounts, paginated.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	total, err := h.Store.GetTotalOrdersCount()
	if err != nil {
		slog.Error("Failed to count orders", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	totalPages := (total + ordersPerPage - 1) / ordersPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	orders, err := h.Store.GetAllOrders(ordersPerPage, (page-1)*ordersPerPage)
	if err != nil {
		slog.Error("Failed to load orders", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":       "Manage Orders",
		"Nav":         navClassifications(h.Store),
		"AccountData": AccountFromContext(r.Context()),
		"Orders":      orders,
		"Page":        page,
		"TotalPages":  totalPages,
		"TotalOrders": total,
		"Statuses":    []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"},
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "admin_orders.html", data)
}

// UpdateStatus moves an order to a new status from the admin order list.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	orderID, err := strconv.Atoi(r.FormValue("order_id"))
	status := r.FormValue("order_status")
	if err != nil || !validOrderStatuses[status] {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid order update."})
		http.Redirect(w, r, "/orders/admin", http.StatusSeeOther)
		return
	}

	order, err := h.Store.GetOrderByID(orderID)
	if err != nil {
		slog.Error("Failed to load order", "error", err, "orderID", orderID)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if order == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Order not found."})
		http.Redirect(w, r, "/orders/admin", http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateOrderStatus(orderID, status); err != nil {
		slog.Error("Failed to update order status", "error", err, "orderID", orderID)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating order status."})
		http.Redirect(w, r, "/orders/admin", http.StatusSeeOther)
		return
	}

	slog.Info("Order status updated",
		"orderID", orderID,
		"status", status,
		"by", AccountFromContext(r.Context()).AccountID,
	)
	session.AddFlash(FlashMessage{Type: "success", Message: "Order status updated."})
	http.Redirect(w, r, "/orders/admin", http.StatusSeeOther)
}
