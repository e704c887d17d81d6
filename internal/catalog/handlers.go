package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-mandi/internal/common"
)

// Handler exposes read-only catalog endpoints.
type Handler struct {
	Svc *Service
}

// Categories lists the distinct commodity categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	categories, err := h.Svc.Categories(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load catalog", nil)
		return
	}
	common.JSONData(w, http.StatusOK, categories)
}

// Products lists commodity listings, optionally filtered by category.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	products, err := h.Svc.Products(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load catalog", nil)
		return
	}
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	common.JSONData(w, http.StatusOK, products)
}

// ProductDetail returns a single listing by id.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	product, err := h.Svc.ProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load catalog", nil)
		return
	}
	common.JSONData(w, http.StatusOK, product)
}

// AdminReload drops the cached catalog so the next read reloads from disk.
func (h *Handler) AdminReload(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	if err := h.Svc.Reset(r.Context()); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to invalidate catalog", nil)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]string{"status": "invalidated"})
}
