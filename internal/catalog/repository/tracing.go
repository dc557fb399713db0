package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/starwars-api/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingCatalogRepository decorates a CatalogRepository with spans
type TracingCatalogRepository struct {
	next domain.CatalogRepository
}

// NewTracingCatalogRepository wraps next with tracing
func NewTracingCatalogRepository(next domain.CatalogRepository) *TracingCatalogRepository {
	return &TracingCatalogRepository{next: next}
}

func startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *TracingCatalogRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := startSpan(ctx, "ListUsers")
	users, err := r.next.ListUsers(ctx)
	span.SetAttributes(attribute.Int("result.count", len(users)))
	endSpan(span, err)
	return users, err
}

func (r *TracingCatalogRepository) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := startSpan(ctx, "FindUser", attribute.Int("user.id", int(id)))
	user, err := r.next.FindUser(ctx, id)
	endSpan(span, err)
	return user, err
}

func (r *TracingCatalogRepository) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, span := startSpan(ctx, "CreateUser", attribute.String("user.email", user.Email))
	err := r.next.CreateUser(ctx, user)
	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	endSpan(span, err)
	return err
}

func (r *TracingCatalogRepository) ListPeople(ctx context.Context) ([]domain.Person, error) {
	ctx, span := startSpan(ctx, "ListPeople")
	people, err := r.next.ListPeople(ctx)
	span.SetAttributes(attribute.Int("result.count", len(people)))
	endSpan(span, err)
	return people, err
}

func (r *TracingCatalogRepository) FindPerson(ctx context.Context, id uint) (*domain.Person, error) {
	ctx, span := startSpan(ctx, "FindPerson", attribute.Int("person.id", int(id)))
	person, err := r.next.FindPerson(ctx, id)
	endSpan(span, err)
	return person, err
}

func (r *TracingCatalogRepository) CreatePerson(ctx context.Context, person *domain.Person) error {
	ctx, span := startSpan(ctx, "CreatePerson", attribute.String("person.name", person.Name))
	err := r.next.CreatePerson(ctx, person)
	endSpan(span, err)
	return err
}

func (r *TracingCatalogRepository) ListPlanets(ctx context.Context) ([]domain.Planet, error) {
	ctx, span := startSpan(ctx, "ListPlanets")
	planets, err := r.next.ListPlanets(ctx)
	span.SetAttributes(attribute.Int("result.count", len(planets)))
	endSpan(span, err)
	return planets, err
}

func (r *TracingCatalogRepository) FindPlanet(ctx context.Context, id uint) (*domain.Planet, error) {
	ctx, span := startSpan(ctx, "FindPlanet", attribute.Int("planet.id", int(id)))
	planet, err := r.next.FindPlanet(ctx, id)
	endSpan(span, err)
	return planet, err
}

func (r *TracingCatalogRepository) FindPlanetByName(ctx context.Context, name string) (*domain.Planet, error) {
	ctx, span := startSpan(ctx, "FindPlanetByName", attribute.String("planet.name", name))
	planet, err := r.next.FindPlanetByName(ctx, name)
	endSpan(span, err)
	return planet, err
}

func (r *TracingCatalogRepository) CreatePlanet(ctx context.Context, planet *domain.Planet) error {
	ctx, span := startSpan(ctx, "CreatePlanet", attribute.String("planet.name", planet.Name))
	err := r.next.CreatePlanet(ctx, planet)
	endSpan(span, err)
	return err
}

func (r *TracingCatalogRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	ctx, span := startSpan(ctx, "ListVehicles")
	vehicles, err := r.next.ListVehicles(ctx)
	span.SetAttributes(attribute.Int("result.count", len(vehicles)))
	endSpan(span, err)
	return vehicles, err
}

func (r *TracingCatalogRepository) FindVehicle(ctx context.Context, id uint) (*domain.Vehicle, error) {
	ctx, span := startSpan(ctx, "FindVehicle", attribute.Int("vehicle.id", int(id)))
	vehicle, err := r.next.FindVehicle(ctx, id)
	endSpan(span, err)
	return vehicle, err
}

func (r *TracingCatalogRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	ctx, span := startSpan(ctx, "CreateVehicle", attribute.String("vehicle.name", vehicle.Name))
	err := r.next.CreateVehicle(ctx, vehicle)
	endSpan(span, err)
	return err
}

func (r *TracingCatalogRepository) ListPilots(ctx context.Context, vehicleID uint) ([]domain.VehiclePilot, error) {
	ctx, span := startSpan(ctx, "ListPilots", attribute.Int("vehicle.id", int(vehicleID)))
	pilots, err := r.next.ListPilots(ctx, vehicleID)
	span.SetAttributes(attribute.Int("result.count", len(pilots)))
	endSpan(span, err)
	return pilots, err
}

func (r *TracingCatalogRepository) CreatePilot(ctx context.Context, pilot *domain.VehiclePilot) error {
	ctx, span := startSpan(ctx, "CreatePilot",
		attribute.Int("person.id", int(pilot.PeopleID)),
		attribute.Int("vehicle.id", int(pilot.VehicleID)),
	)
	err := r.next.CreatePilot(ctx, pilot)
	endSpan(span, err)
	return err
}

// WithinTx traces the transaction and every call made inside it
func (r *TracingCatalogRepository) WithinTx(ctx context.Context, fn func(repo domain.CatalogRepository) error) error {
	ctx, span := startSpan(ctx, "WithinTx")
	err := r.next.WithinTx(ctx, func(tx domain.CatalogRepository) error {
		return fn(NewTracingCatalogRepository(tx))
	})
	endSpan(span, err)
	return err
}
