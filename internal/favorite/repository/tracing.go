package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	catalog "github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

// TracingFavoriteRepository decorates a FavoriteRepository with spans
type TracingFavoriteRepository struct {
	next domain.FavoriteRepository
}

// NewTracingFavoriteRepository wraps next with tracing
func NewTracingFavoriteRepository(next domain.FavoriteRepository) *TracingFavoriteRepository {
	return &TracingFavoriteRepository{next: next}
}

func favoriteAttrs(kind domain.Kind, userID, targetID uint) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("favorite.kind", string(kind)),
		attribute.Int("user.id", int(userID)),
		attribute.Int("target.id", int(targetID)),
	)
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *TracingFavoriteRepository) FindUser(ctx context.Context, userID uint) (*catalog.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindUser", trace.WithAttributes(attribute.Int("user.id", int(userID))))
	user, err := r.next.FindUser(ctx, userID)
	end(span, err)
	return user, err
}

func (r *TracingFavoriteRepository) TargetExists(ctx context.Context, kind domain.Kind, targetID uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.TargetExists", favoriteAttrs(kind, 0, targetID))
	ok, err := r.next.TargetExists(ctx, kind, targetID)
	span.SetAttributes(attribute.Bool("exists", ok))
	end(span, err)
	return ok, err
}

func (r *TracingFavoriteRepository) Exists(ctx context.Context, kind domain.Kind, userID, targetID uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.Exists", favoriteAttrs(kind, userID, targetID))
	ok, err := r.next.Exists(ctx, kind, userID, targetID)
	span.SetAttributes(attribute.Bool("exists", ok))
	end(span, err)
	return ok, err
}

func (r *TracingFavoriteRepository) Add(ctx context.Context, kind domain.Kind, userID, targetID uint) error {
	ctx, span := tracer.Start(ctx, "repository.Add", favoriteAttrs(kind, userID, targetID))
	err := r.next.Add(ctx, kind, userID, targetID)
	end(span, err)
	return err
}

func (r *TracingFavoriteRepository) Remove(ctx context.Context, kind domain.Kind, userID, targetID uint) error {
	ctx, span := tracer.Start(ctx, "repository.Remove", favoriteAttrs(kind, userID, targetID))
	err := r.next.Remove(ctx, kind, userID, targetID)
	end(span, err)
	return err
}

func (r *TracingFavoriteRepository) ListByUser(ctx context.Context, userID uint) (*domain.UserFavorites, error) {
	ctx, span := tracer.Start(ctx, "repository.ListByUser", trace.WithAttributes(attribute.Int("user.id", int(userID))))
	favs, err := r.next.ListByUser(ctx, userID)
	span.SetAttributes(attribute.Int("result.count", favs.Total()))
	end(span, err)
	return favs, err
}

func (r *TracingFavoriteRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	count, err := r.next.Count(ctx)
	span.SetAttributes(attribute.Int64("result.count", count))
	end(span, err)
	return count, err
}

// WithinTx traces the transaction and every call made inside it
func (r *TracingFavoriteRepository) WithinTx(ctx context.Context, fn func(repo domain.FavoriteRepository) error) error {
	ctx, span := tracer.Start(ctx, "repository.WithinTx")
	err := r.next.WithinTx(ctx, func(tx domain.FavoriteRepository) error {
		return fn(NewTracingFavoriteRepository(tx))
	})
	end(span, err)
	return err
}
