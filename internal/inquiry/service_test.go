package inquiry_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-mandi/internal/inquiry"
	"github.com/noah-isme/backend-mandi/internal/rating"
	"github.com/noah-isme/backend-mandi/internal/tasks"
)

type fakeStore struct {
	byID     map[string]inquiry.Inquiry
	approved []inquiry.ApproveParams
}

func newFakeStore(items ...inquiry.Inquiry) *fakeStore {
	s := &fakeStore{byID: map[string]inquiry.Inquiry{}}
	for _, inq := range items {
		s.byID[inq.ID] = inq
	}
	return s
}

func (s *fakeStore) CreateInquiry(_ context.Context, arg inquiry.CreateParams) (inquiry.Inquiry, error) {
	inq := inquiry.Inquiry{
		ID:             "generated",
		ProductID:      arg.ProductID,
		ProductTitle:   arg.ProductTitle,
		Category:       arg.Category,
		Quantity:       arg.Quantity,
		Unit:           arg.Unit,
		BuyerName:      arg.BuyerName,
		BuyerEmail:     arg.BuyerEmail,
		FromState:      arg.FromState,
		ToState:        arg.ToState,
		EstimatedPrice: arg.EstimatedPrice,
		Status:         inquiry.StatusPending,
	}
	s.byID[inq.ID] = inq
	return inq, nil
}

func (s *fakeStore) GetInquiryByID(_ context.Context, id string) (inquiry.Inquiry, error) {
	inq, ok := s.byID[id]
	if !ok {
		return inquiry.Inquiry{}, pgx.ErrNoRows
	}
	return inq, nil
}

func (s *fakeStore) ListInquiries(_ context.Context, status string) ([]inquiry.Inquiry, error) {
	var out []inquiry.Inquiry
	for _, inq := range s.byID {
		if status == "" || inq.Status == status {
			out = append(out, inq)
		}
	}
	return out, nil
}

func (s *fakeStore) ApproveInquiry(_ context.Context, arg inquiry.ApproveParams) (inquiry.Inquiry, error) {
	inq, ok := s.byID[arg.ID]
	if !ok || inq.Status != inquiry.StatusPending {
		return inquiry.Inquiry{}, pgx.ErrNoRows
	}
	path := arg.PricingPath
	charge := arg.ShippingCharge
	total := arg.FinalTotal
	inq.Status = inquiry.StatusApproved
	inq.PricingPath = &path
	inq.ShippingRatePerKg = arg.ShippingRatePerKg
	inq.ShippingCharge = &charge
	inq.FinalTotal = &total
	s.byID[arg.ID] = inq
	s.approved = append(s.approved, arg)
	return inq, nil
}

func (s *fakeStore) RejectInquiry(_ context.Context, id string) (inquiry.Inquiry, error) {
	inq, ok := s.byID[id]
	if !ok || inq.Status != inquiry.StatusPending {
		return inquiry.Inquiry{}, pgx.ErrNoRows
	}
	inq.Status = inquiry.StatusRejected
	s.byID[id] = inq
	return inq, nil
}

type fakeEnqueuer struct {
	payloads []tasks.InquiryApproved
}

func (f *fakeEnqueuer) EnqueueInquiryApproved(_ context.Context, p tasks.InquiryApproved) error {
	f.payloads = append(f.payloads, p)
	return nil
}

func pendingWheat() inquiry.Inquiry {
	return inquiry.Inquiry{
		ID:             "inq-1",
		ProductID:      "prod-1",
		ProductTitle:   "Sharbati Wheat",
		Category:       "Grains",
		Quantity:       500,
		Unit:           "kg",
		BuyerName:      "Ravi",
		BuyerEmail:     "ravi@example.com",
		FromState:      "Maharashtra",
		ToState:        "Delhi",
		EstimatedPrice: 12500,
		Status:         inquiry.StatusPending,
	}
}

func newService(store inquiry.Storage, enq inquiry.Enqueuer) *inquiry.Service {
	return &inquiry.Service{
		Store:  store,
		Engine: rating.NewEngine(rating.DefaultProfile()),
		Tasks:  enq,
		Notify: enq != nil,
		Logger: zerolog.Nop(),
	}
}

func TestApproveWithEngine(t *testing.T) {
	store := newFakeStore(pendingWheat())
	enq := &fakeEnqueuer{}
	svc := newService(store, enq)

	res, err := svc.ApproveWithEngine(context.Background(), "inq-1")
	require.NoError(t, err)

	// 500kg inter-state non-perishable: 500 * 1.965 * 0.85 rounded.
	require.NotNil(t, res.Inquiry.ShippingCharge)
	require.Equal(t, float64(835), *res.Inquiry.ShippingCharge)
	require.NotNil(t, res.Inquiry.FinalTotal)
	require.Equal(t, float64(13335), *res.Inquiry.FinalTotal)
	require.Equal(t, inquiry.StatusApproved, res.Inquiry.Status)
	require.NotNil(t, res.Inquiry.PricingPath)
	require.Equal(t, inquiry.PathEngine, *res.Inquiry.PricingPath)
	require.Nil(t, res.Inquiry.ShippingRatePerKg)

	require.True(t, res.MinOrder.IsValid)
	require.Equal(t, float64(13335), res.MinOrder.TotalValue)

	require.Len(t, enq.payloads, 1)
	require.Equal(t, "ravi@example.com", enq.payloads[0].BuyerEmail)
	require.Equal(t, inquiry.PathEngine, enq.payloads[0].PricingPath)
}

func TestApproveWithEngineQuoteFailure(t *testing.T) {
	inq := pendingWheat()
	inq.ToState = ""
	store := newFakeStore(inq)
	svc := newService(store, nil)

	_, err := svc.ApproveWithEngine(context.Background(), "inq-1")
	require.ErrorIs(t, err, inquiry.ErrQuoteFailed)
	require.Contains(t, err.Error(), "Missing location information")
	require.Empty(t, store.approved)
}

func TestApproveWithSellerRate(t *testing.T) {
	store := newFakeStore(pendingWheat())
	enq := &fakeEnqueuer{}
	svc := newService(store, enq)

	res, err := svc.ApproveWithSellerRate(context.Background(), "inq-1", 2.5)
	require.NoError(t, err)

	// 500kg at 2.50/kg, no tier discount and no minimum charge floor.
	require.NotNil(t, res.Inquiry.ShippingCharge)
	require.Equal(t, float64(1250), *res.Inquiry.ShippingCharge)
	require.NotNil(t, res.Inquiry.FinalTotal)
	require.Equal(t, float64(13750), *res.Inquiry.FinalTotal)
	require.NotNil(t, res.Inquiry.PricingPath)
	require.Equal(t, inquiry.PathSellerRate, *res.Inquiry.PricingPath)
	require.NotNil(t, res.Inquiry.ShippingRatePerKg)
	require.Equal(t, 2.5, *res.Inquiry.ShippingRatePerKg)

	require.Len(t, enq.payloads, 1)
}

func TestApproveWithSellerRateNormalisesUnits(t *testing.T) {
	inq := pendingWheat()
	inq.Quantity = 5
	inq.Unit = "quintal"
	store := newFakeStore(inq)
	svc := newService(store, nil)

	res, err := svc.ApproveWithSellerRate(context.Background(), "inq-1", 2)
	require.NoError(t, err)

	// 5 quintal = 500kg.
	require.Equal(t, float64(1000), *res.Inquiry.ShippingCharge)
}

func TestApproveWithSellerRateRejectsNonPositive(t *testing.T) {
	svc := newService(newFakeStore(pendingWheat()), nil)

	_, err := svc.ApproveWithSellerRate(context.Background(), "inq-1", 0)
	require.ErrorIs(t, err, inquiry.ErrInvalidSellerRate)

	_, err = svc.ApproveWithSellerRate(context.Background(), "inq-1", -3)
	require.ErrorIs(t, err, inquiry.ErrInvalidSellerRate)
}

func TestApproveRequiresPending(t *testing.T) {
	inq := pendingWheat()
	inq.Status = inquiry.StatusApproved
	svc := newService(newFakeStore(inq), nil)

	_, err := svc.ApproveWithEngine(context.Background(), "inq-1")
	require.ErrorIs(t, err, inquiry.ErrInquiryNotPending)

	_, err = svc.ApproveWithSellerRate(context.Background(), "inq-1", 2)
	require.ErrorIs(t, err, inquiry.ErrInquiryNotPending)
}

func TestApproveMinOrderShortfall(t *testing.T) {
	inq := pendingWheat()
	inq.Quantity = 100
	inq.EstimatedPrice = 2500
	svc := newService(newFakeStore(inq), nil)

	res, err := svc.ApproveWithEngine(context.Background(), "inq-1")
	require.NoError(t, err)

	// 100kg inter-state exceeds the 50 kg breakpoint:
	// 100 * 1.965 * 0.85 = 167.025 -> 167. Total 2667, short by 333.
	require.Equal(t, float64(167), *res.Inquiry.ShippingCharge)
	require.False(t, res.MinOrder.IsValid)
	require.Contains(t, res.MinOrder.Message, "₹3,000")
	require.Contains(t, res.MinOrder.Message, "₹333")
}

func TestRejectAndNotFound(t *testing.T) {
	store := newFakeStore(pendingWheat())
	svc := newService(store, nil)

	inq, err := svc.Reject(context.Background(), "inq-1")
	require.NoError(t, err)
	require.Equal(t, inquiry.StatusRejected, inq.Status)

	_, err = svc.Reject(context.Background(), "inq-1")
	require.ErrorIs(t, err, inquiry.ErrInquiryNotPending)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, inquiry.ErrInquiryNotFound)
}

func TestQuoteDoesNotMutate(t *testing.T) {
	store := newFakeStore(pendingWheat())
	svc := newService(store, nil)

	quote, err := svc.Quote(context.Background(), "inq-1")
	require.NoError(t, err)
	require.True(t, quote.Success)
	require.Equal(t, int64(835), quote.Charge)

	got, err := svc.Get(context.Background(), "inq-1")
	require.NoError(t, err)
	require.Equal(t, inquiry.StatusPending, got.Status)
}
