package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-mandi/internal/common"
	"github.com/noah-isme/backend-mandi/internal/inquiry"
	"github.com/noah-isme/backend-mandi/internal/obs"
)

// ErrNotPayable is returned when the inquiry is not approved or has no
// final total to collect.
var ErrNotPayable = errors.New("inquiry is not payable")

// InquirySource loads inquiries for payment initiation.
type InquirySource interface {
	Get(ctx context.Context, id string) (inquiry.Inquiry, error)
}

// Handler exposes payment initiation.
type Handler struct {
	Registry  *Registry
	Inquiries InquirySource
	Default   string
	Currency  string
	Validate  *validator.Validate
}

type initiateRequest struct {
	InquiryID string `json:"inquiryId" validate:"required"`
	Provider  string `json:"provider"`
}

// Initiate builds a gateway redirect for an approved inquiry's final total.
func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid payment request", err.Error())
			return
		}
	}

	name := req.Provider
	if name == "" {
		name = h.Default
	}
	provider, err := h.Registry.Get(name)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	inq, err := h.Inquiries.Get(r.Context(), req.InquiryID)
	if errors.Is(err, inquiry.ErrInquiryNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "inquiry not found", nil)
		return
	}
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not load inquiry", nil)
		return
	}
	if inq.Status != inquiry.StatusApproved || inq.FinalTotal == nil {
		countRedirect(name, "not_payable")
		common.JSONError(w, http.StatusConflict, "CONFLICT", ErrNotPayable.Error(), nil)
		return
	}

	redirect, err := provider.CreateRedirect(r.Context(), Order{
		InquiryID:  inq.ID,
		BuyerName:  inq.BuyerName,
		BuyerEmail: inq.BuyerEmail,
		Amount:     *inq.FinalTotal,
		Currency:   h.Currency,
	})
	if err != nil {
		countRedirect(name, "error")
		common.JSONError(w, http.StatusBadGateway, "GATEWAY", "payment provider failed", nil)
		return
	}
	countRedirect(name, "ok")
	common.JSONData(w, http.StatusOK, redirect)
}

func countRedirect(provider, result string) {
	if obs.PaymentRedirectTotal != nil {
		obs.PaymentRedirectTotal.WithLabelValues(provider, result).Inc()
	}
}
