package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-mandi/internal/common"
	"github.com/noah-isme/backend-mandi/internal/pricing"
	"github.com/noah-isme/backend-mandi/internal/rating"
)

// Handler exposes the checkout preview endpoint.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type previewLine struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Unit      string  `json:"unit" validate:"required"`
	UnitPrice int64   `json:"unitPrice" validate:"gte=0"`
	FromState string  `json:"fromState"`
}

type previewRequest struct {
	ToState string        `json:"toState" validate:"required"`
	Items   []previewLine `json:"items" validate:"required,min=1,dive"`
}

type lineQuoteResponse struct {
	ProductID string       `json:"productId"`
	Title     string       `json:"title"`
	Quote     rating.Quote `json:"quote"`
	Display   string       `json:"display"`
}

type previewResponse struct {
	Lines    []lineQuoteResponse      `json:"lines"`
	Subtotal int64                    `json:"subtotal"`
	Tax      int64                    `json:"tax"`
	Shipping int64                    `json:"shipping"`
	Total    int64                    `json:"total"`
	MinOrder rating.MinimumOrderCheck `json:"minOrder"`
}

// Preview rates the cart's shipping and returns totals plus the
// minimum-order gate.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid preview request", err.Error())
			return
		}
	}

	lines := make([]Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, Line{
			ProductID: item.ProductID,
			Title:     item.Title,
			Category:  item.Category,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: pricing.Money(item.UnitPrice),
			FromState: item.FromState,
		})
	}

	preview, err := h.Svc.Preview(lines, req.ToState)
	if errors.Is(err, ErrEmptyCart) {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", ErrEmptyCart.Error(), nil)
		return
	}
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not build preview", nil)
		return
	}

	out := previewResponse{
		Lines:    make([]lineQuoteResponse, 0, len(preview.Lines)),
		Subtotal: preview.Summary.Subtotal,
		Tax:      preview.Summary.Tax,
		Shipping: preview.Summary.Shipping,
		Total:    preview.Summary.Total,
		MinOrder: preview.MinOrder,
	}
	for _, lq := range preview.Lines {
		out.Lines = append(out.Lines, lineQuoteResponse{
			ProductID: lq.ProductID,
			Title:     lq.Title,
			Quote:     lq.Quote,
			Display:   lq.Display,
		})
	}
	common.JSONData(w, http.StatusOK, out)
}
