package rating_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-mandi/internal/rating"
)

func newHandler() *rating.Handler {
	return &rating.Handler{
		Engine:   rating.NewEngine(rating.DefaultProfile()),
		Validate: validator.New(),
	}
}

func TestQuoteEndpoint(t *testing.T) {
	h := newHandler()

	body := `{"weight":500,"unit":"kg","fromState":"Maharashtra","toState":"Delhi","category":"Wheat"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Data struct {
			Quote   rating.Quote `json:"quote"`
			Display string       `json:"display"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.True(t, payload.Data.Quote.Success)
	require.Equal(t, int64(835), payload.Data.Quote.Charge)
	require.NotNil(t, payload.Data.Quote.Breakdown)
	require.False(t, payload.Data.Quote.Breakdown.IsIntraState)
	require.Contains(t, payload.Data.Display, "Road/Rail Mix")
}

func TestQuoteEndpointReportsEngineErrors(t *testing.T) {
	h := newHandler()

	body := `{"weight":120,"unit":"kg","fromState":"","toState":"Delhi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Data struct {
			Quote rating.Quote `json:"quote"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.False(t, payload.Data.Quote.Success)
	require.Equal(t, "Missing location information", payload.Data.Quote.Error)
	require.Zero(t, payload.Data.Quote.Charge)
}

func TestQuoteEndpointRejectsMalformedPayload(t *testing.T) {
	h := newHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateMinimumEndpoint(t *testing.T) {
	h := newHandler()

	body := `{"productPrice":2500,"shippingCharge":400}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/validate-minimum", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ValidateMinimum(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Data rating.MinimumOrderCheck `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.False(t, payload.Data.IsValid)
	require.Equal(t, 100.0, payload.Data.Shortfall)
	require.Contains(t, payload.Data.Message, "₹3,000")
}
