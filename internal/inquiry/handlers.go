package inquiry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-mandi/internal/common"
	"github.com/noah-isme/backend-mandi/internal/rating"
)

// Handler exposes the inquiry lifecycle over HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type createRequest struct {
	ProductID      string  `json:"productId" validate:"required"`
	ProductTitle   string  `json:"productTitle" validate:"required"`
	Category       string  `json:"category"`
	Quantity       float64 `json:"quantity" validate:"required,gt=0"`
	Unit           string  `json:"unit" validate:"required"`
	BuyerName      string  `json:"buyerName" validate:"required"`
	BuyerEmail     string  `json:"buyerEmail" validate:"required,email"`
	FromState      string  `json:"fromState"`
	ToState        string  `json:"toState"`
	EstimatedPrice float64 `json:"estimatedPrice" validate:"gte=0"`
}

type inquiryResponse struct {
	ID                string   `json:"id"`
	ProductID         string   `json:"productId"`
	ProductTitle      string   `json:"productTitle"`
	Category          string   `json:"category"`
	Quantity          float64  `json:"quantity"`
	Unit              string   `json:"unit"`
	BuyerName         string   `json:"buyerName"`
	FromState         string   `json:"fromState"`
	ToState           string   `json:"toState"`
	EstimatedPrice    float64  `json:"estimatedPrice"`
	Status            string   `json:"status"`
	PricingPath       *string  `json:"pricingPath,omitempty"`
	ShippingRatePerKg *float64 `json:"shippingRatePerKg,omitempty"`
	ShippingCharge    *float64 `json:"shippingCharge,omitempty"`
	FinalTotal        *float64 `json:"finalTotal,omitempty"`
}

func toResponse(inq Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:                inq.ID,
		ProductID:         inq.ProductID,
		ProductTitle:      inq.ProductTitle,
		Category:          inq.Category,
		Quantity:          inq.Quantity,
		Unit:              inq.Unit,
		BuyerName:         inq.BuyerName,
		FromState:         inq.FromState,
		ToState:           inq.ToState,
		EstimatedPrice:    inq.EstimatedPrice,
		Status:            inq.Status,
		PricingPath:       inq.PricingPath,
		ShippingRatePerKg: inq.ShippingRatePerKg,
		ShippingCharge:    inq.ShippingCharge,
		FinalTotal:        inq.FinalTotal,
	}
}

// Create opens a pending inquiry for a catalog product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid inquiry", err.Error())
			return
		}
	}

	inq, err := h.Svc.Create(r.Context(), CreateParams{
		ProductID:      req.ProductID,
		ProductTitle:   req.ProductTitle,
		Category:       req.Category,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		BuyerName:      req.BuyerName,
		BuyerEmail:     req.BuyerEmail,
		FromState:      req.FromState,
		ToState:        req.ToState,
		EstimatedPrice: req.EstimatedPrice,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not create inquiry", nil)
		return
	}
	common.JSONData(w, http.StatusCreated, toResponse(inq))
}

// List returns inquiries, optionally filtered with ?status=PENDING.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not list inquiries", nil)
		return
	}
	out := make([]inquiryResponse, 0, len(items))
	for _, inq := range items {
		out = append(out, toResponse(inq))
	}
	common.JSONData(w, http.StatusOK, out)
}

// Detail returns one inquiry.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	inq, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, toResponse(inq))
}

// Quote rates the inquiry's shipment without changing its state.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.Svc.Quote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"quote":   quote,
		"display": rating.FormatBreakdown(quote),
	})
}

// Approve approves the inquiry using the rating engine.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.ApproveWithEngine(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeApproval(w, res)
}

type sellerRateRequest struct {
	RatePerKg float64 `json:"ratePerKg" validate:"required"`
}

// ApproveWithRate approves the inquiry with a seller-entered rate per kg.
func (h *Handler) ApproveWithRate(w http.ResponseWriter, r *http.Request) {
	var req sellerRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid rate", err.Error())
			return
		}
	}

	res, err := h.Svc.ApproveWithSellerRate(r.Context(), chi.URLParam(r, "id"), req.RatePerKg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeApproval(w, res)
}

// Reject rejects a pending inquiry.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	inq, err := h.Svc.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, toResponse(inq))
}

func (h *Handler) writeApproval(w http.ResponseWriter, res ApprovalResult) {
	common.JSONData(w, http.StatusOK, map[string]any{
		"inquiry":  toResponse(res.Inquiry),
		"minOrder": res.MinOrder,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInquiryNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "inquiry not found", nil)
	case errors.Is(err, ErrInquiryNotPending):
		common.JSONError(w, http.StatusConflict, "CONFLICT", "inquiry already decided", nil)
	case errors.Is(err, ErrInvalidSellerRate):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", ErrInvalidSellerRate.Error(), nil)
	case errors.Is(err, ErrQuoteFailed):
		common.JSONError(w, http.StatusUnprocessableEntity, "QUOTE_FAILED", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inquiry operation failed", nil)
	}
}
