package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

const tracerName = "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/observability/service"

// Service decorates the donation pipeline with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core donation service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) RecordDonation(ctx context.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	attrs := []attribute.KeyValue{attribute.Bool("idempotency.key_present", input.IdempotencyKey != "")}
	if input.UserID != nil {
		attrs = append(attrs, attribute.Int64("user.id", *input.UserID))
	}
	if input.PetID != nil {
		attrs = append(attrs, attribute.Int64("pet.id", *input.PetID))
	}
	ctx, span := s.tracer.Start(ctx, "DonationService.RecordDonation", trace.WithAttributes(attrs...))
	defer span.End()

	result, err := s.inner.RecordDonation(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to record donation")
	}
	span.SetAttributes(attribute.Int64("donation.id", result.ID))
	s.metrics.recordDonation(ctx, result)
	s.logInfo(ctx, "donation recorded",
		slog.Int64("donation.id", result.ID),
		slog.Int64("user.id", result.UserID),
		slog.String("amount", result.Amount.String()),
		slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Donation, error) {
	ctx, span := s.tracer.Start(ctx, "DonationService.Get", trace.WithAttributes(attribute.Int64("donation.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load donation", slog.Int64("donation.id", id))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]ports.DonationDetails, error) {
	ctx, span := s.tracer.Start(ctx, "DonationService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list donations")
	}
	span.SetAttributes(attribute.Int("donations.count", len(result)))
	return result, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Donation, error) {
	ctx, span := s.tracer.Start(ctx, "DonationService.ListByUser", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	result, err := s.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list donations by user", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("donations.count", len(result)))
	return result, nil
}

func (s *Service) ListHistory(ctx context.Context, donationID int64) ([]*domain.HistoryEntry, error) {
	ctx, span := s.tracer.Start(ctx, "DonationService.ListHistory", trace.WithAttributes(attribute.Int64("donation.id", donationID)))
	defer span.End()

	result, err := s.inner.ListHistory(ctx, donationID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list donation history", slog.Int64("donation.id", donationID))
	}
	return result, nil
}

func (s *Service) GetReceipt(ctx context.Context, donationID int64) (*domain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "DonationService.GetReceipt", trace.WithAttributes(attribute.Int64("donation.id", donationID)))
	defer span.End()

	result, err := s.inner.GetReceipt(ctx, donationID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load donation receipt", slog.Int64("donation.id", donationID))
	}
	span.SetAttributes(attribute.String("receipt.number", result.ReceiptNumber))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// logError logs caller mistakes at warn and everything else at error.
func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	level := slog.LevelError
	kind := sharederrors.KindOf(err)
	switch kind {
	case sharederrors.KindInvalidInput, sharederrors.KindNotFound, sharederrors.KindConflict:
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()), slog.String("error.kind", string(kind)))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	recorded metric.Int64Counter
	receipts metric.Int64Counter
	amount   metric.Float64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	recorded, _ := m.Int64Counter("donations.service.donations_recorded", metric.WithDescription("Number of donations recorded"))
	receipts, _ := m.Int64Counter("donations.service.receipts_issued", metric.WithDescription("Number of donation receipts issued"))
	amount, _ := m.Float64Counter("donations.service.amount_total", metric.WithDescription("Sum of recorded donation amounts"))
	return serviceMetrics{recorded: recorded, receipts: receipts, amount: amount}
}

// recordDonation counts a successful intake. Replayed idempotent requests are counted again.
func (m serviceMetrics) recordDonation(ctx context.Context, d *domain.Donation) {
	opts := metric.WithAttributes(attribute.String("donation.status", string(d.Status)), attribute.String("payment.method", d.PaymentMethod))
	if m.recorded != nil {
		m.recorded.Add(ctx, 1, opts)
	}
	if m.receipts != nil {
		m.receipts.Add(ctx, 1)
	}
	if m.amount != nil {
		value, _ := d.Amount.Float64()
		m.amount.Add(ctx, value, opts)
	}
}

var _ ports.Service = (*Service)(nil)
