package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ShippingQuoteTotal counts shipping quote calculations by outcome.
	ShippingQuoteTotal *prometheus.CounterVec
	// MinOrderCheckTotal counts minimum order validations by result.
	MinOrderCheckTotal *prometheus.CounterVec
	// InquiryApprovalTotal counts inquiry approvals by pricing path and outcome.
	InquiryApprovalTotal *prometheus.CounterVec
	// PaymentRedirectTotal counts payment redirect constructions by provider and outcome.
	PaymentRedirectTotal *prometheus.CounterVec
	// CatalogReloadTotal counts catalog loads from the backing file.
	CatalogReloadTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ShippingQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipping_quote_total",
			Help:      "Count of shipping quote calculations by outcome.",
		}, []string{"result"})
		MinOrderCheckTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "min_order_check_total",
			Help:      "Count of minimum order validations by result.",
		}, []string{"result"})
		InquiryApprovalTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inquiry_approval_total",
			Help:      "Count of inquiry approvals by pricing path and outcome.",
		}, []string{"path", "result"})
		PaymentRedirectTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_redirect_total",
			Help:      "Count of payment redirect constructions by provider and outcome.",
		}, []string{"provider", "result"})
		CatalogReloadTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reload_total",
			Help:      "Number of times the commodity catalog was loaded from disk.",
		})

		mustRegisterCollector(reg, ShippingQuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ShippingQuoteTotal = v
			}
		})
		mustRegisterCollector(reg, MinOrderCheckTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				MinOrderCheckTotal = v
			}
		})
		mustRegisterCollector(reg, InquiryApprovalTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InquiryApprovalTotal = v
			}
		})
		mustRegisterCollector(reg, PaymentRedirectTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PaymentRedirectTotal = v
			}
		})
		mustRegisterCollector(reg, CatalogReloadTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CatalogReloadTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
