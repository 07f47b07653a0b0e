package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

const tracerName = "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/observability/service"

// Service decorates the registry service with tracing, logging, and metrics.
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

// New wraps the core registry service.
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

func (s *Service) RegisterUser(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.RegisterUser", trace.WithAttributes(attribute.String("role.name", input.RoleName)))
	defer span.End()

	result, err := s.inner.RegisterUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	span.SetAttributes(attribute.Int64("user.id", result.ID))
	s.metrics.recordRegistered(ctx, result.Status)
	s.logInfo(ctx, "user registered", slog.Int64("user.id", result.ID), slog.Int64("role.id", result.RoleID))
	return result, nil
}

func (s *Service) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.UpdateUser", trace.WithAttributes(attribute.Int64("user.id", input.ID)))
	defer span.End()

	result, err := s.inner.UpdateUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update user", slog.Int64("user.id", input.ID))
	}
	s.logInfo(ctx, "user updated", slog.Int64("user.id", result.ID))
	return result, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.GetUser", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	result, err := s.inner.GetUser(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.Int64("user.id", id))
	}
	return result, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.ListUsers")
	defer span.End()

	result, err := s.inner.ListUsers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("users.count", len(result)))
	return result, nil
}

func (s *Service) AddPet(ctx context.Context, input ports.AddPetInput) (*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.AddPet", trace.WithAttributes(attribute.String("pet.species", input.Species)))
	defer span.End()

	result, err := s.inner.AddPet(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add pet")
	}
	span.SetAttributes(attribute.Int64("pet.id", result.ID))
	s.metrics.recordPetAdded(ctx, result.Species)
	s.logInfo(ctx, "pet added", slog.Int64("pet.id", result.ID), slog.Int64("pet.added_by", result.AddedBy))
	return result, nil
}

func (s *Service) GetPet(ctx context.Context, id int64) (*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.GetPet", trace.WithAttributes(attribute.Int64("pet.id", id)))
	defer span.End()

	result, err := s.inner.GetPet(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", id))
	}
	return result, nil
}

func (s *Service) ListPets(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.ListPets",
		trace.WithAttributes(attribute.String("filter.species", filter.Species), attribute.String("filter.status", filter.Status)))
	defer span.End()

	result, err := s.inner.ListPets(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pets.count", len(result)))
	return result, nil
}

func (s *Service) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.CreateRole", trace.WithAttributes(attribute.String("role.name", name)))
	defer span.End()

	result, err := s.inner.CreateRole(ctx, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create role", slog.String("role.name", name))
	}
	s.logInfo(ctx, "role created", slog.Int64("role.id", result.ID), slog.String("role.name", result.Name))
	return result, nil
}

func (s *Service) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.ListRoles")
	defer span.End()

	result, err := s.inner.ListRoles(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list roles")
	}
	return result, nil
}

func (s *Service) SeedRoles(ctx context.Context) ([]*domain.Role, error) {
	ctx, span := s.tracer.Start(ctx, "RegistryService.SeedRoles")
	defer span.End()

	s.logInfo(ctx, "seeding required roles")
	result, err := s.inner.SeedRoles(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to seed roles")
	}
	s.logInfo(ctx, "required roles present", slog.Int("roles.count", len(result)))
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
	level := slog.LevelError
	if kind := sharederrors.KindOf(err); kind != sharederrors.KindInternal && kind != sharederrors.KindTransient {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()), slog.String("error.kind", string(sharederrors.KindOf(err))))
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
	usersRegistered metric.Int64Counter
	petsAdded       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	usersRegistered, _ := m.Int64Counter("registry.service.users_registered", metric.WithDescription("Number of users registered"))
	petsAdded, _ := m.Int64Counter("registry.service.pets_added", metric.WithDescription("Number of pets listed"))
	return serviceMetrics{usersRegistered: usersRegistered, petsAdded: petsAdded}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, status domain.UserStatus) {
	if m.usersRegistered != nil {
		m.usersRegistered.Add(ctx, 1, metric.WithAttributes(attribute.String("user.status", string(status))))
	}
}

func (m serviceMetrics) recordPetAdded(ctx context.Context, species string) {
	if m.petsAdded != nil {
		m.petsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("pet.species", species)))
	}
}

var _ ports.Service = (*Service)(nil)
