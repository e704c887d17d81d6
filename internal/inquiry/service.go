package inquiry

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-mandi/internal/obs"
	"github.com/noah-isme/backend-mandi/internal/rating"
	"github.com/noah-isme/backend-mandi/internal/tasks"
)

var (
	// ErrInquiryNotFound is returned when the inquiry id does not exist.
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrInquiryNotPending is returned when approving or rejecting an
	// inquiry that has already been decided.
	ErrInquiryNotPending = errors.New("inquiry is not pending")
	// ErrInvalidSellerRate is returned for non-positive seller rates.
	ErrInvalidSellerRate = errors.New("seller rate must be greater than 0")
	// ErrQuoteFailed wraps engine calculation failures during approval.
	ErrQuoteFailed = errors.New("shipping quote failed")
)

// Storage is the persistence surface the service needs.
type Storage interface {
	CreateInquiry(ctx context.Context, arg CreateParams) (Inquiry, error)
	GetInquiryByID(ctx context.Context, id string) (Inquiry, error)
	ListInquiries(ctx context.Context, status string) ([]Inquiry, error)
	ApproveInquiry(ctx context.Context, arg ApproveParams) (Inquiry, error)
	RejectInquiry(ctx context.Context, id string) (Inquiry, error)
}

// Enqueuer schedules buyer notifications after approval.
type Enqueuer interface {
	EnqueueInquiryApproved(ctx context.Context, p tasks.InquiryApproved) error
}

// Service owns the inquiry lifecycle. Approval carries two pricing paths
// that are never reconciled: the engine path rates the shipment itself,
// the seller path trusts a hand-entered per-kilogram rate and skips the
// tier discount entirely.
type Service struct {
	Store  Storage
	Engine *rating.Engine
	Tasks  Enqueuer
	Notify bool
	Logger zerolog.Logger
}

// ApprovalResult is what approval returns to handlers: the updated record
// plus the minimum-order check run against the final total.
type ApprovalResult struct {
	Inquiry  Inquiry
	MinOrder rating.MinimumOrderCheck
}

// Create opens a pending inquiry.
func (s *Service) Create(ctx context.Context, arg CreateParams) (Inquiry, error) {
	return s.Store.CreateInquiry(ctx, arg)
}

// Get loads one inquiry.
func (s *Service) Get(ctx context.Context, id string) (Inquiry, error) {
	inq, err := s.Store.GetInquiryByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Inquiry{}, ErrInquiryNotFound
	}
	return inq, err
}

// List returns inquiries, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]Inquiry, error) {
	return s.Store.ListInquiries(ctx, status)
}

// Quote rates an inquiry's shipment without changing its state. Invalid
// inputs surface inside the quote, not as a Go error.
func (s *Service) Quote(ctx context.Context, id string) (rating.Quote, error) {
	inq, err := s.Get(ctx, id)
	if err != nil {
		return rating.Quote{}, err
	}
	return s.Engine.Calculate(inq.Quantity, inq.Unit, inq.FromState, inq.ToState, inq.Category), nil
}

// ApproveWithEngine approves a pending inquiry using the rating engine.
// The shipping charge comes from the engine quote and the final total is
// the estimated price plus that charge.
func (s *Service) ApproveWithEngine(ctx context.Context, id string) (ApprovalResult, error) {
	inq, err := s.Get(ctx, id)
	if err != nil {
		return ApprovalResult{}, err
	}
	if inq.Status != StatusPending {
		return ApprovalResult{}, ErrInquiryNotPending
	}

	quote := s.Engine.Calculate(inq.Quantity, inq.Unit, inq.FromState, inq.ToState, inq.Category)
	if !quote.Success {
		countApproval(PathEngine, "quote_failed")
		return ApprovalResult{}, errors.Join(ErrQuoteFailed, errors.New(quote.Error))
	}

	charge := float64(quote.Charge)
	finalTotal := inq.EstimatedPrice + charge
	return s.finishApproval(ctx, ApproveParams{
		ID:             id,
		PricingPath:    PathEngine,
		ShippingCharge: charge,
		FinalTotal:     finalTotal,
	})
}

// ApproveWithSellerRate approves a pending inquiry with a seller-entered
// per-kilogram rate. The charge is the normalised weight times the rate,
// rounded to the nearest rupee. The engine's tier discount and minimum
// charge do not apply on this path.
func (s *Service) ApproveWithSellerRate(ctx context.Context, id string, ratePerKg float64) (ApprovalResult, error) {
	if ratePerKg <= 0 {
		return ApprovalResult{}, ErrInvalidSellerRate
	}
	inq, err := s.Get(ctx, id)
	if err != nil {
		return ApprovalResult{}, err
	}
	if inq.Status != StatusPending {
		return ApprovalResult{}, ErrInquiryNotPending
	}

	weightInKg := rating.ToKilograms(inq.Quantity, inq.Unit)
	charge := math.Round(weightInKg * ratePerKg)
	finalTotal := inq.EstimatedPrice + charge
	return s.finishApproval(ctx, ApproveParams{
		ID:                id,
		PricingPath:       PathSellerRate,
		ShippingRatePerKg: &ratePerKg,
		ShippingCharge:    charge,
		FinalTotal:        finalTotal,
	})
}

// Reject marks a pending inquiry as rejected.
func (s *Service) Reject(ctx context.Context, id string) (Inquiry, error) {
	inq, err := s.Store.RejectInquiry(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Inquiry{}, s.pendingConflict(ctx, id)
	}
	return inq, err
}

func (s *Service) finishApproval(ctx context.Context, arg ApproveParams) (ApprovalResult, error) {
	updated, err := s.Store.ApproveInquiry(ctx, arg)
	if errors.Is(err, pgx.ErrNoRows) {
		return ApprovalResult{}, s.pendingConflict(ctx, arg.ID)
	}
	if err != nil {
		countApproval(arg.PricingPath, "error")
		return ApprovalResult{}, err
	}
	countApproval(arg.PricingPath, "ok")

	minOrder := s.Engine.ValidateMinimumOrder(updated.EstimatedPrice, arg.ShippingCharge)

	if s.Notify && s.Tasks != nil {
		payload := tasks.InquiryApproved{
			InquiryID:      updated.ID,
			BuyerName:      updated.BuyerName,
			BuyerEmail:     updated.BuyerEmail,
			ProductTitle:   updated.ProductTitle,
			ShippingCharge: arg.ShippingCharge,
			FinalTotal:     arg.FinalTotal,
			PricingPath:    arg.PricingPath,
		}
		if err := s.Tasks.EnqueueInquiryApproved(ctx, payload); err != nil {
			// Approval already committed; notification failure is logged
			// and retried by the next manual nudge, not rolled back.
			s.Logger.Error().Err(err).Str("inquiry_id", updated.ID).Msg("enqueue approval notification failed")
		}
	}

	return ApprovalResult{Inquiry: updated, MinOrder: minOrder}, nil
}

// pendingConflict distinguishes a missing inquiry from a decided one after
// a guarded update matched no rows.
func (s *Service) pendingConflict(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return ErrInquiryNotPending
}

func countApproval(path, result string) {
	if obs.InquiryApprovalTotal != nil {
		obs.InquiryApprovalTotal.WithLabelValues(path, result).Inc()
	}
}
