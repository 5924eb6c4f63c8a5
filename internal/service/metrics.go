package service

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics holds the domain counters exported on /metrics
type Metrics struct {
	logins           metric.Int64Counter
	registrations    metric.Int64Counter
	donationRequests metric.Int64Counter
	statusUpdates    metric.Int64Counter
}

// NewMetrics registers the service counters on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.logins, err = meter.Int64Counter("donor_logins_total",
		metric.WithDescription("Login attempts by outcome")); err != nil {
		return nil, fmt.Errorf("failed to create logins counter: %w", err)
	}
	if m.registrations, err = meter.Int64Counter("donor_registrations_total",
		metric.WithDescription("Accounts registered")); err != nil {
		return nil, fmt.Errorf("failed to create registrations counter: %w", err)
	}
	if m.donationRequests, err = meter.Int64Counter("donation_requests_created_total",
		metric.WithDescription("Donation requests created")); err != nil {
		return nil, fmt.Errorf("failed to create donation requests counter: %w", err)
	}
	if m.statusUpdates, err = meter.Int64Counter("donation_request_status_updates_total",
		metric.WithDescription("Donation request status changes by new status")); err != nil {
		return nil, fmt.Errorf("failed to create status updates counter: %w", err)
	}

	return &m, nil
}

// NopMetrics returns counters that record nothing
func NopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}

func (m *Metrics) login(ctx context.Context, outcome string) {
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) registered(ctx context.Context) {
	m.registrations.Add(ctx, 1)
}

func (m *Metrics) requestCreated(ctx context.Context) {
	m.donationRequests.Add(ctx, 1)
}

// statusLabels bounds the status attribute; request statuses are free-form
var statusLabels = map[string]string{
	"PENDING":   "pending",
	"ACCEPTED":  "accepted",
	"APPROVED":  "approved",
	"REJECTED":  "rejected",
	"DECLINED":  "declined",
	"COMPLETED": "completed",
	"CANCELLED": "cancelled",
}

func statusLabel(status string) string {
	if label, ok := statusLabels[strings.ToUpper(strings.TrimSpace(status))]; ok {
		return label
	}
	return "other"
}

func (m *Metrics) statusUpdated(ctx context.Context, status string) {
	m.statusUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("status", statusLabel(status))))
}
