package payment

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned when no provider matches the requested name.
var ErrUnknownProvider = errors.New("unknown payment provider")

// Order is the subset of an approved inquiry a provider needs to start a
// payment.
type Order struct {
	InquiryID  string
	BuyerName  string
	BuyerEmail string
	Amount     float64
	Currency   string
}

// Redirect tells the storefront where to send the buyer. Fields are posted
// as a hidden form when the gateway expects a form submission; a plain
// gateway gets just the URL.
type Redirect struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Provider builds gateway redirects for orders.
type Provider interface {
	Name() string
	CreateRedirect(ctx context.Context, order Order) (Redirect, error)
}

// Registry resolves providers by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry indexes the given providers by their names.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the named provider.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}
