package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MockProvider simulates a hosted payment page. It is the default in
// development and in environments without gateway credentials.
type MockProvider struct {
	BaseURL         string
	CallbackBaseURL string
}

// Name implements Provider.
func (m *MockProvider) Name() string { return "mock" }

// CreateRedirect builds a form post to the simulated payment page. The
// transaction reference is minted here so retries produce distinct
// references.
func (m *MockProvider) CreateRedirect(_ context.Context, order Order) (Redirect, error) {
	base := m.BaseURL
	if base == "" {
		base = "https://pay.example.test/checkout"
	}
	callback := strings.TrimRight(m.CallbackBaseURL, "/")

	return Redirect{
		URL: base,
		Fields: map[string]string{
			"txn_ref":     uuid.NewString(),
			"inquiry_id":  order.InquiryID,
			"buyer_name":  order.BuyerName,
			"buyer_email": order.BuyerEmail,
			"amount":      fmt.Sprintf("%.2f", order.Amount),
			"currency":    order.Currency,
			"return_url":  callback + "/payments/return",
			"cancel_url":  callback + "/payments/cancel",
		},
	}, nil
}
