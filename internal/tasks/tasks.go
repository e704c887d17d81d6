package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeInquiryApproved identifies buyer notification tasks enqueued when a
// seller or admin approves an inquiry.
const TypeInquiryApproved = "inquiry:approved"

// InquiryApproved is the payload carried by TypeInquiryApproved tasks.
type InquiryApproved struct {
	InquiryID      string  `json:"inquiryId"`
	BuyerName      string  `json:"buyerName"`
	BuyerEmail     string  `json:"buyerEmail"`
	ProductTitle   string  `json:"productTitle"`
	ShippingCharge float64 `json:"shippingCharge"`
	FinalTotal     float64 `json:"finalTotal"`
	PricingPath    string  `json:"pricingPath"`
}

// NewInquiryApprovedTask serialises the payload into an asynq task.
func NewInquiryApprovedTask(p InquiryApproved) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInquiryApproved, payload), nil
}
