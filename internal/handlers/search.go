package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/myrayzsiza/cse-340/internal/store"
)

type SearchHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Search handles both the simple term search (?q=) and the advanced filter
// form; a blank query renders the empty search page.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := strings.TrimSpace(q.Get("q"))

	data := map[string]interface{}{
		"Title": "Search Inventory",
		"Nav":   navClassifications(h.Store),
		"Query": term,
	}

	makes, err := h.Store.GetDistinctMakes()
	if err != nil {
		slog.Error("Failed to load makes", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	data["Makes"] = makes

	filters := store.SearchFilters{
		Make:     strings.TrimSpace(q.Get("make")),
		Model:    strings.TrimSpace(q.Get("model")),
		MinYear:  atoiOrZero(q.Get("min_year")),
		MaxYear:  atoiOrZero(q.Get("max_year")),
		MinPrice: atofOrZero(q.Get("min_price")),
		MaxPrice: atofOrZero(q.Get("max_price")),
	}
	advanced := filters != (store.SearchFilters{})

	switch {
	case term != "":
		vehicles, err := h.Store.SearchInventory(term)
		if err != nil {
			slog.Error("Search failed", "error", err, "term", term)
			renderServerError(w, h.Templates, navClassifications(h.Store))
			return
		}
		data["Vehicles"] = vehicles
		data["Searched"] = true
	case advanced:
		vehicles, err := h.Store.AdvancedSearch(filters)
		if err != nil {
			slog.Error("Advanced search failed", "error", err)
			renderServerError(w, h.Templates, navClassifications(h.Store))
			return
		}
		data["Vehicles"] = vehicles
		data["Searched"] = true
		data["Filters"] = filters
	}

	render(w, h.Templates, "search.html", data)
}

// MakesJSON feeds the advanced-search make dropdown.
func (h *SearchHandler) MakesJSON(w http.ResponseWriter, r *http.Request) {
	makes, err := h.Store.GetDistinctMakes()
	if err != nil {
		slog.Error("Failed to load makes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Error loading makes",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true, "makes": makes,
	})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
