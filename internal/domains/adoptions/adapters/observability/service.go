package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

const tracerName = "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption workflow with tracing, logging, and metrics.
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

// New wraps the core adoption service.
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

func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Application, error) {
	attrs := []attribute.KeyValue{}
	if input.PetID != nil {
		attrs = append(attrs, attribute.Int64("pet.id", *input.PetID))
	}
	if input.UserID != nil {
		attrs = append(attrs, attribute.Int64("user.id", *input.UserID))
	}
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Submit", trace.WithAttributes(attrs...))
	defer span.End()

	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit adoption application")
	}
	span.SetAttributes(attribute.Int64("application.id", result.ID))
	s.metrics.recordSubmitted(ctx, result.Status)
	s.logInfo(ctx, "adoption application submitted",
		slog.Int64("application.id", result.ID), slog.Int64("pet.id", result.PetID), slog.Int64("user.id", result.UserID))
	return result, nil
}

func (s *Service) Review(ctx context.Context, input ports.ReviewInput) (*domain.Application, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Review", trace.WithAttributes(attribute.Int64("application.id", input.ApplicationID)))
	defer span.End()

	s.logInfo(ctx, "reviewing adoption application", slog.Int64("application.id", input.ApplicationID))
	result, err := s.inner.Review(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to review adoption application", slog.Int64("application.id", input.ApplicationID))
	}
	span.SetAttributes(attribute.String("application.status", string(result.Status)))
	s.metrics.recordReviewed(ctx, result.Status)
	attrs := []slog.Attr{slog.Int64("application.id", result.ID), slog.String("status", string(result.Status))}
	if result.Approved() {
		attrs = append(attrs, slog.Int64("pet.id", result.PetID))
	}
	s.logInfo(ctx, "adoption application reviewed", attrs...)
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Application, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Get", trace.WithAttributes(attribute.Int64("application.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load adoption application", slog.Int64("application.id", id))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Application, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adoption applications")
	}
	span.SetAttributes(attribute.Int("applications.count", len(result)))
	return result, nil
}

func (s *Service) ListByApplicant(ctx context.Context, userID int64) ([]*domain.Application, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.ListByApplicant", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	result, err := s.inner.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list applications by applicant", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("applications.count", len(result)))
	return result, nil
}

func (s *Service) ListByPet(ctx context.Context, petID int64) ([]*domain.Application, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.ListByPet", trace.WithAttributes(attribute.Int64("pet.id", petID)))
	defer span.End()

	result, err := s.inner.ListByPet(ctx, petID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list applications by pet", slog.Int64("pet.id", petID))
	}
	span.SetAttributes(attribute.Int("applications.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()), slog.String("error.kind", string(sharederrors.KindOf(err))))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
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
	submitted metric.Int64Counter
	reviewed  metric.Int64Counter
	approved  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("adoptions.service.applications_submitted", metric.WithDescription("Number of adoption applications submitted"))
	reviewed, _ := m.Int64Counter("adoptions.service.applications_reviewed", metric.WithDescription("Number of adoption reviews applied"))
	approved, _ := m.Int64Counter("adoptions.service.applications_approved", metric.WithDescription("Number of approvals that marked a pet adopted"))
	return serviceMetrics{submitted: submitted, reviewed: reviewed, approved: approved}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, status domain.Status) {
	if m.submitted != nil {
		m.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("application.status", string(status))))
	}
}

func (m serviceMetrics) recordReviewed(ctx context.Context, status domain.Status) {
	if m.reviewed != nil {
		m.reviewed.Add(ctx, 1, metric.WithAttributes(attribute.String("application.status", string(status))))
	}
	if status == domain.StatusApproved && m.approved != nil {
		m.approved.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
