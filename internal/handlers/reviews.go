package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/auth"
	"github.com/myrayzsiza/cse-340/internal/store"
)

type ReviewHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ReviewHandler) logActivity(r *http.Request, accountID int, action, description string) {
	if err := h.Store.LogActivity(accountID, action, description, r.RemoteAddr, r.UserAgent()); err != nil {
		slog.Error("Failed to log activity", "action", action, "error", err)
	}
}

// ListJSON returns the approved reviews and rating summary for a vehicle.
func (h *ReviewHandler) ListJSON(w http.ResponseWriter, r *http.Request) {
	invID, err := strconv.Atoi(r.PathValue("invId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Invalid vehicle ID",
		})
		return
	}

	reviews, err := h.Store.GetApprovedReviews(invID)
	if err != nil {
		slog.Error("Failed to load reviews", "error", err, "invID", invID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error loading reviews",
		})
		return
	}
	avg, total, err := h.Store.GetRatingSummary(invID)
	if err != nil {
		slog.Error("Failed to load rating summary", "error", err, "invID", invID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error loading reviews",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"reviews":       reviews,
		"averageRating": avg,
		"totalReviews":  total,
	})
}

// Submit creates the account's review for a vehicle, or rewrites the existing
// one. Either way the review lands unapproved and waits for moderation.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	invID, err := strconv.Atoi(r.FormValue("inv_id"))
	if err != nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}
	detailURL := "/inv/detail/" + strconv.Itoa(invID)

	vehicle, err := h.Store.GetVehicleByID(invID)
	if err != nil {
		slog.Error("Failed to load vehicle", "error", err, "invID", invID)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if vehicle == nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	text := strings.TrimSpace(r.FormValue("review_text"))
	if err != nil || rating < 1 || rating > 5 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Rating must be between 1 and 5."})
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}
	if len(text) < 10 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Review text must be at least 10 characters."})
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	existing, err := h.Store.GetReviewByAccountAndInventory(invID, claims.AccountID)
	if err != nil {
		slog.Error("Failed to look up review", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	if existing != nil {
		if err := h.Store.UpdateReview(existing.ID, rating, text); err != nil {
			slog.Error("Failed to update review", "error", err, "reviewID", existing.ID)
			renderServerError(w, h.Templates, navClassifications(h.Store))
			return
		}
		h.logActivity(r, claims.AccountID, "review_updated",
			fmt.Sprintf("Updated review for %s %s", vehicle.Make, vehicle.Model))
		session.AddFlash(FlashMessage{Type: "success", Message: "Your review was updated and is pending approval."})
	} else {
		if _, err := h.Store.AddReview(invID, claims.AccountID, rating, text); err != nil {
			slog.Error("Failed to add review", "error", err)
			renderServerError(w, h.Templates, navClassifications(h.Store))
			return
		}
		h.logActivity(r, claims.AccountID, "review_submitted",
			fmt.Sprintf("Reviewed %s %s", vehicle.Make, vehicle.Model))
		session.AddFlash(FlashMessage{Type: "success", Message: "Thank you! Your review is pending approval."})
	}

	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}

// Delete removes a review. Owners can delete their own; staff can delete any.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := AccountFromContext(r.Context())

	reviewID, err := strconv.Atoi(r.FormValue("review_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Invalid review ID",
		})
		return
	}

	review, err := h.Store.GetReviewByID(reviewID)
	if err != nil {
		slog.Error("Failed to load review", "error", err, "reviewID", reviewID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error deleting review",
		})
		return
	}
	if review == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "Review not found",
		})
		return
	}
	if review.AccountID != claims.AccountID && !auth.IsStaff(claims.AccountType) {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"success": false, "message": "Access denied",
		})
		return
	}

	if err := h.Store.DeleteReview(reviewID); err != nil {
		slog.Error("Failed to delete review", "error", err, "reviewID", reviewID)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error deleting review",
		})
		return
	}

	h.logActivity(r, claims.AccountID, "review_deleted",
		fmt.Sprintf("Deleted review %d", reviewID))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "message": "Review deleted",
	})
}

// Moderation lists the unapproved reviews for staff.
func (h *ReviewHandler) Moderation(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Store.GetPendingReviews()
	if err != nil {
		slog.Error("Failed to load pending reviews", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":       "Review Moderation",
		"Nav":         navClassifications(h.Store),
		"AccountData": AccountFromContext(r.Context()),
		"Pending":     pending,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "admin_reviews.html", data)
}

func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, true)
}

func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, false)
}

func (h *ReviewHandler) moderate(w http.ResponseWriter, r *http.Request, approve bool) {
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	reviewID, err := strconv.Atoi(r.FormValue("review_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid review ID."})
		http.Redirect(w, r, "/reviews/moderation", http.StatusSeeOther)
		return
	}

	if approve {
		err = h.Store.ApproveReview(reviewID)
	} else {
		err = h.Store.DeleteReview(reviewID)
	}
	if err != nil {
		slog.Error("Failed to moderate review", "error", err, "reviewID", reviewID, "approve", approve)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating review."})
		http.Redirect(w, r, "/reviews/moderation", http.StatusSeeOther)
		return
	}

	msg := "Review approved."
	if !approve {
		msg = "Review rejected and removed."
	}
	session.AddFlash(FlashMessage{Type: "success", Message: msg})
	http.Redirect(w, r, "/reviews/moderation", http.StatusSeeOther)
}
