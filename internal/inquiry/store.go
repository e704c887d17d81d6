package inquiry

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Inquiry statuses. Inquiries move PENDING -> APPROVED or PENDING -> REJECTED.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Pricing paths recorded on approval. The seller-rate path deliberately
// bypasses the rating engine and the two are kept separate on the record.
const (
	PathEngine     = "engine"
	PathSellerRate = "seller_rate"
)

// Inquiry is a buyer's request for a commodity that a seller or admin
// approves with a shipping charge attached.
type Inquiry struct {
	ID                string
	ProductID         string
	ProductTitle      string
	Category          string
	Quantity          float64
	Unit              string
	BuyerName         string
	BuyerEmail        string
	FromState         string
	ToState           string
	EstimatedPrice    float64
	Status            string
	PricingPath       *string
	ShippingRatePerKg *float64
	ShippingCharge    *float64
	FinalTotal        *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreateParams carries the fields required to open an inquiry.
type CreateParams struct {
	ProductID      string
	ProductTitle   string
	Category       string
	Quantity       float64
	Unit           string
	BuyerName      string
	BuyerEmail     string
	FromState      string
	ToState        string
	EstimatedPrice float64
}

// ApproveParams records the approval outcome against a pending inquiry.
type ApproveParams struct {
	ID                string
	PricingPath       string
	ShippingRatePerKg *float64
	ShippingCharge    float64
	FinalTotal        float64
}

const inquiryColumns = `id::text, product_id, product_title, category, quantity, unit,
	buyer_name, buyer_email, from_state, to_state, estimated_price, status,
	pricing_path, shipping_rate_per_kg, shipping_charge, final_total, created_at, updated_at`

// Store persists inquiries in postgres.
type Store struct {
	Pool *pgxpool.Pool
}

// NewStore constructs an inquiry store over the connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// CreateInquiry opens a new pending inquiry.
func (s *Store) CreateInquiry(ctx context.Context, arg CreateParams) (Inquiry, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO inquiries (
			product_id, product_title, category, quantity, unit,
			buyer_name, buyer_email, from_state, to_state, estimated_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+inquiryColumns,
		arg.ProductID, arg.ProductTitle, arg.Category, arg.Quantity, arg.Unit,
		arg.BuyerName, arg.BuyerEmail, arg.FromState, arg.ToState, arg.EstimatedPrice,
	)
	return scanInquiry(row)
}

// GetInquiryByID loads a single inquiry.
func (s *Store) GetInquiryByID(ctx context.Context, id string) (Inquiry, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1::uuid`, id)
	return scanInquiry(row)
}

// ListInquiries returns inquiries filtered by status, newest first. An empty
// status returns everything.
func (s *Store) ListInquiries(ctx context.Context, status string) ([]Inquiry, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+inquiryColumns+` FROM inquiries
		WHERE $1 = '' OR status = $1
		ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	return out, rows.Err()
}

// ApproveInquiry records the approval outcome. Only pending inquiries are
// updated; approving anything else returns pgx.ErrNoRows.
func (s *Store) ApproveInquiry(ctx context.Context, arg ApproveParams) (Inquiry, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE inquiries SET
			status = 'APPROVED',
			pricing_path = $2,
			shipping_rate_per_kg = $3,
			shipping_charge = $4,
			final_total = $5,
			updated_at = now()
		WHERE id = $1::uuid AND status = 'PENDING'
		RETURNING `+inquiryColumns,
		arg.ID, arg.PricingPath, arg.ShippingRatePerKg, arg.ShippingCharge, arg.FinalTotal,
	)
	return scanInquiry(row)
}

// RejectInquiry marks a pending inquiry as rejected.
func (s *Store) RejectInquiry(ctx context.Context, id string) (Inquiry, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE inquiries SET status = 'REJECTED', updated_at = now()
		WHERE id = $1::uuid AND status = 'PENDING'
		RETURNING `+inquiryColumns, id)
	return scanInquiry(row)
}

func scanInquiry(row pgx.Row) (Inquiry, error) {
	var inq Inquiry
	err := row.Scan(
		&inq.ID, &inq.ProductID, &inq.ProductTitle, &inq.Category, &inq.Quantity, &inq.Unit,
		&inq.BuyerName, &inq.BuyerEmail, &inq.FromState, &inq.ToState, &inq.EstimatedPrice, &inq.Status,
		&inq.PricingPath, &inq.ShippingRatePerKg, &inq.ShippingCharge, &inq.FinalTotal,
		&inq.CreatedAt, &inq.UpdatedAt,
	)
	return inq, err
}
