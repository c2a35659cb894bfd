package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/screener/internal/catalog"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/external/yahoo"
	"github.com/wonny/screener/internal/fields"
	"github.com/wonny/screener/pkg/logger"
)

// CatalogHandler serves the predefined screeners and the field catalog
// ⭐ SSOT: 카탈로그 조회 API는 이 구조체에서만
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		logger:  log,
	}
}

// ScreenerSummary is one catalog listing item
type ScreenerSummary struct {
	Name      string              `json:"name"`
	Title     string              `json:"title"`
	QuoteType contracts.QuoteType `json:"quote_type"`
}

// ScreenerDetail is a catalog entry with its encoded wire query
type ScreenerDetail struct {
	ScreenerSummary
	SortField     string          `json:"sort_field"`
	SortAscending bool            `json:"sort_ascending"`
	Query         *yahoo.WireNode `json:"query"`
}

// ListScreeners returns every predefined screener
// GET /api/screeners
func (h *CatalogHandler) ListScreeners(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.Entries()

	items := make([]ScreenerSummary, 0, len(entries))
	for _, e := range entries {
		items = append(items, summarize(e))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(items),
		"screeners": items,
	})
}

// GetScreener returns one predefined screener with its query tree
// GET /api/screeners/{name}
func (h *CatalogHandler) GetScreener(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	entry, err := h.catalog.Lookup(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	query, err := yahoo.Encode(entry.Query)
	if err != nil {
		h.logger.WithError(err).WithField("screener", entry.Name).Error("Failed to encode screener query")
		respondError(w, http.StatusInternalServerError, "Failed to encode screener query")
		return
	}

	respondJSON(w, http.StatusOK, ScreenerDetail{
		ScreenerSummary: summarize(entry),
		SortField:       entry.SortField,
		SortAscending:   entry.SortAscending,
		Query:           query,
	})
}

// ListFields returns the screenable fields of a mode
// GET /api/fields/{mode}
func (h *CatalogHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	mode, err := contracts.ParseMode(mux.Vars(r)["mode"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := fields.ForMode(mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mode":   mode,
		"count":  len(list),
		"fields": list,
	})
}

func summarize(e catalog.Entry) ScreenerSummary {
	return ScreenerSummary{
		Name:      e.Name,
		Title:     e.Title,
		QuoteType: e.QuoteType,
	}
}
