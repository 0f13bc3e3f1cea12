package handlers

import (
	"net/http"
	"time"
)

// Registry bundles the handler set and the guards that gate them.
type Registry struct {
	Home      *HomeHandler
	Account   *AccountHandler
	Inventory *InventoryHandler
	Cart      *CartHandler
	Orders    *OrderHandler
	Reviews   *ReviewHandler
	Search    *SearchHandler
	Profile   *ProfileHandler
	Activity  *ActivityHandler
	Admin     *AdminHandler
	Guard     *AuthGuard
}

// Routes builds the site mux. Page routes fail soft through the guard
// (flash + redirect); /admin/api and the AJAX cart/review routes fail hard
// with JSON status codes.
func (reg *Registry) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	g := reg.Guard
	loginLimiter := NewRateLimiter(2 * time.Second)
	resetLimiter := NewRateLimiter(30 * time.Second)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir("images"))))

	mux.HandleFunc("GET /", reg.Home.Index)

	// Inventory browsing
	mux.HandleFunc("GET /inv/type/{classificationId}", reg.Inventory.ByClassification)
	mux.HandleFunc("GET /inv/detail/{invId}", reg.Inventory.Detail)

	// Inventory management (staff)
	mux.HandleFunc("GET /inv/add-classification", g.RequireStaff(reg.Inventory.AddClassificationForm))
	mux.HandleFunc("POST /inv/add-classification", g.RequireStaff(reg.Inventory.AddClassification))
	mux.HandleFunc("GET /inv/add-inventory", g.RequireStaff(reg.Inventory.AddVehicleForm))
	mux.HandleFunc("POST /inv/add-inventory", g.RequireStaff(reg.Inventory.AddVehicle))
	mux.HandleFunc("GET /inv/edit/{invId}", g.RequireStaff(reg.Inventory.EditVehicleForm))
	mux.HandleFunc("POST /inv/update", g.RequireStaff(reg.Inventory.UpdateVehicle))
	mux.HandleFunc("POST /inv/delete", g.RequireStaff(reg.Inventory.DeleteVehicle))

	// Accounts
	mux.HandleFunc("GET /account/login", reg.Account.LoginGet)
	mux.HandleFunc("POST /account/login", loginLimiter.Middleware(reg.Account.LoginPost))
	mux.HandleFunc("GET /account/register", reg.Account.RegisterGet)
	mux.HandleFunc("POST /account/register", reg.Account.RegisterPost)
	mux.HandleFunc("GET /account/logout", reg.Account.Logout)
	mux.HandleFunc("GET /account/management", g.RequireLogin(reg.Account.Management))
	mux.HandleFunc("GET /account/update", g.RequireLogin(reg.Account.UpdateView))
	mux.HandleFunc("POST /account/update", g.RequireLogin(reg.Account.UpdateInfo))
	mux.HandleFunc("POST /account/change-password", g.RequireLogin(reg.Account.ChangePassword))
	mux.HandleFunc("GET /account/forgot-password", reg.Account.ForgotPasswordGet)
	mux.HandleFunc("POST /account/forgot-password", resetLimiter.Middleware(reg.Account.ForgotPasswordPost))
	mux.HandleFunc("GET /account/reset-password/{token}", reg.Account.ResetPasswordGet)
	mux.HandleFunc("POST /account/reset-password/{token}", reg.Account.ResetPasswordPost)

	// Cart and checkout
	mux.HandleFunc("POST /cart/add/{invId}", g.RequireLoginAPI(reg.Cart.Add))
	mux.HandleFunc("GET /cart/view", g.RequireLogin(reg.Cart.View))
	mux.HandleFunc("POST /cart/update/{cartId}", g.RequireLoginAPI(reg.Cart.UpdateQuantity))
	mux.HandleFunc("POST /cart/remove/{cartId}", g.RequireLogin(reg.Cart.Remove))
	mux.HandleFunc("POST /cart/clear", g.RequireLogin(reg.Cart.Clear))
	mux.HandleFunc("GET /cart/checkout", g.RequireLogin(reg.Cart.Checkout))
	mux.HandleFunc("POST /cart/process-order", g.RequireLogin(reg.Cart.Process))
	mux.HandleFunc("GET /cart/confirm-order", g.RequireLogin(reg.Cart.Confirm))
	mux.HandleFunc("GET /cart/order-confirmation", g.RequireLogin(reg.Cart.Confirmation))

	// Orders
	mux.HandleFunc("GET /orders", g.RequireLogin(reg.Orders.History))
	mux.HandleFunc("GET /orders/admin", g.RequireStaff(reg.Orders.AdminList))
	mux.HandleFunc("POST /orders/update-status", g.RequireStaff(reg.Orders.UpdateStatus))

	// Reviews
	mux.HandleFunc("GET /reviews/api/{invId}", reg.Reviews.ListJSON)
	mux.HandleFunc("POST /reviews/submit", g.RequireLogin(reg.Reviews.Submit))
	mux.HandleFunc("POST /reviews/delete", g.RequireLoginAPI(reg.Reviews.Delete))
	mux.HandleFunc("GET /reviews/moderation", g.RequireStaff(reg.Reviews.Moderation))
	mux.HandleFunc("POST /reviews/approve", g.RequireStaff(reg.Reviews.Approve))
	mux.HandleFunc("POST /reviews/reject", g.RequireStaff(reg.Reviews.Reject))

	// Search
	mux.HandleFunc("GET /search", reg.Search.Search)
	mux.HandleFunc("GET /search/api/makes", reg.Search.MakesJSON)

	// Profiles and activity
	mux.HandleFunc("GET /profile", g.RequireLogin(reg.Profile.View))
	mux.HandleFunc("POST /profile", g.RequireLogin(reg.Profile.Update))
	mux.HandleFunc("GET /activity", g.RequireLogin(reg.Activity.Mine))
	mux.HandleFunc("GET /activity/all", g.RequireStaff(reg.Activity.All))

	// Admin back office
	mux.HandleFunc("GET /admin/dash", g.RequireStaff(reg.Admin.Dashboard))
	mux.HandleFunc("GET /admin/api/stats", g.RequireAdminAPI(reg.Admin.Stats))
	mux.HandleFunc("GET /admin/api/users", g.RequireAdminAPI(reg.Admin.ListUsers))
	mux.HandleFunc("PUT /admin/api/users/role", g.RequireAdminAPI(reg.Admin.UpdateUserRole))
	mux.HandleFunc("DELETE /admin/api/users/{accountId}", g.RequireAdminAPI(reg.Admin.DeleteUser))

	return mux
}
