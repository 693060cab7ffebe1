package metrics

import "github.com/prometheus/client_golang/prometheus"

// InventoryMetrics exposes the alert counts the dashboard surfaces so the
// same numbers can be scraped and alerted on.
type InventoryMetrics struct {
	lots     prometheus.Gauge
	doses    prometheus.Gauge
	expired  prometheus.Gauge
	expiring prometheus.Gauge
	lowStock prometheus.Gauge
}

// NewInventoryMetrics registers the inventory gauges on the provided
// registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	m := &InventoryMetrics{
		lots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_lots",
			Help: "Total vaccine lots on record.",
		}),
		doses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_doses",
			Help: "Total doses on hand across all lots.",
		}),
		expired: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_expired_lots",
			Help: "Lots past their expiration date.",
		}),
		expiring: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_expiring_lots",
			Help: "Lots inside the expiring-soon window.",
		}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_low_stock_lots",
			Help: "Lots at or below the low-stock threshold.",
		}),
	}
	reg.MustRegister(m.lots, m.doses, m.expired, m.expiring, m.lowStock)
	return m
}

// Record publishes one aggregation snapshot.
func (m *InventoryMetrics) Record(lots int, doses int64, expired, expiring, lowStock int) {
	if m == nil || m.lots == nil {
		return
	}
	m.lots.Set(float64(lots))
	m.doses.Set(float64(doses))
	m.expired.Set(float64(expired))
	m.expiring.Set(float64(expiring))
	m.lowStock.Set(float64(lowStock))
}
