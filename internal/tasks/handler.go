package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-mandi/internal/common"
	"github.com/noah-isme/backend-mandi/internal/rating"
)

// Handler processes background tasks in the worker process.
type Handler struct {
	Mail   common.EmailSender
	From   string
	Logger zerolog.Logger
}

// Register attaches all task handlers to the mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeInquiryApproved, h.HandleInquiryApproved)
}

// HandleInquiryApproved emails the buyer that their inquiry was approved,
// including the shipping charge and final total.
func (h *Handler) HandleInquiryApproved(ctx context.Context, t *asynq.Task) error {
	var p InquiryApproved
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s payload: %w", TypeInquiryApproved, err)
	}
	if h.Mail == nil || p.BuyerEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Inquiry approved: %s", p.ProductTitle)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your inquiry for %s has been approved.</p><p>Shipping: ₹%s<br>Final total: ₹%s</p>",
		p.BuyerName,
		p.ProductTitle,
		rating.FormatINR(p.ShippingCharge),
		rating.FormatINR(p.FinalTotal),
	)
	if err := h.Mail.Send(p.BuyerEmail, subject, body); err != nil {
		return err
	}
	h.Logger.Info().
		Str("inquiry_id", p.InquiryID).
		Str("pricing_path", p.PricingPath).
		Str("from", h.From).
		Msg("inquiry approval notification sent")
	return nil
}
