package rating

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-mandi/internal/common"
	"github.com/noah-isme/backend-mandi/internal/obs"
)

// Handler exposes the rating engine over HTTP for the storefront.
type Handler struct {
	Engine   *Engine
	Validate *validator.Validate
}

type quoteRequest struct {
	Weight    float64 `json:"weight" validate:"required"`
	Unit      string  `json:"unit" validate:"required"`
	FromState string  `json:"fromState"`
	ToState   string  `json:"toState"`
	Category  string  `json:"category"`
}

// Quote calculates a shipping charge with a full breakdown. Input-shape
// problems surface inside the quote body rather than as HTTP errors so the
// storefront can show them inline.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Engine == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "rating engine not configured", nil)
		return
	}
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid quote request", err.Error())
			return
		}
	}

	quote := h.Engine.Calculate(req.Weight, req.Unit, req.FromState, req.ToState, req.Category)
	result := "ok"
	if !quote.Success {
		result = "rejected"
	}
	if obs.ShippingQuoteTotal != nil {
		obs.ShippingQuoteTotal.WithLabelValues(result).Inc()
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"quote":   quote,
		"display": FormatBreakdown(quote),
	})
}

type minOrderRequest struct {
	ProductPrice   float64 `json:"productPrice" validate:"gte=0"`
	ShippingCharge float64 `json:"shippingCharge" validate:"gte=0"`
}

// ValidateMinimum checks an order total against the minimum order value.
func (h *Handler) ValidateMinimum(w http.ResponseWriter, r *http.Request) {
	if h.Engine == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "rating engine not configured", nil)
		return
	}
	var req minOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid order values", err.Error())
			return
		}
	}

	check := h.Engine.ValidateMinimumOrder(req.ProductPrice, req.ShippingCharge)
	result := "valid"
	if !check.IsValid {
		result = "below_minimum"
	}
	if obs.MinOrderCheckTotal != nil {
		obs.MinOrderCheckTotal.WithLabelValues(result).Inc()
	}
	common.JSONData(w, http.StatusOK, check)
}
