package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several apps (tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	http     *fiberprometheus.FiberPrometheus

	Registrations   prometheus.Counter
	LoginFailures   prometheus.Counter
	MealItemsLogged prometheus.Counter
	GoalsActivated  prometheus.Counter
}

// NewMetrics registers HTTP and domain collectors for serviceName.
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		http:     fiberprometheus.NewWithRegistry(reg, serviceName, "", "", nil),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_user_registrations_total",
			Help: "Total number of successful user registrations",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_login_failures_total",
			Help: "Total number of rejected login attempts",
		}),
		MealItemsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_meal_items_logged_total",
			Help: "Total number of food lines added to meals",
		}),
		GoalsActivated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fittrack_nutrition_goals_activated_total",
			Help: "Total number of nutrition goals activated",
		}),
	}
	reg.MustRegister(m.Registrations, m.LoginFailures, m.MealItemsLogged, m.GoalsActivated)
	return m
}

// Middleware records request counts and latencies.
func (m *Metrics) Middleware() fiber.Handler {
	return m.http.Middleware
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The Record helpers are no-ops on a nil *Metrics.

func (m *Metrics) RecordRegistration() {
	if m != nil {
		m.Registrations.Inc()
	}
}

func (m *Metrics) RecordLoginFailure() {
	if m != nil {
		m.LoginFailures.Inc()
	}
}

func (m *Metrics) RecordMealItem() {
	if m != nil {
		m.MealItemsLogged.Inc()
	}
}

func (m *Metrics) RecordGoalActivated() {
	if m != nil {
		m.GoalsActivated.Inc()
	}
}
