package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"vietour/infras/otel"
	"vietour/infras/postgres"
	"vietour/internal/domains/tourguide/model"
	"vietour/shared"
	"vietour/shared/constant"
	"vietour/shared/failure"
	gRepo "vietour/shared/repository"
)

type TourGuide interface {
	Get(ctx context.Context, id string) (model.TourGuide, error)
	GetByUserID(ctx context.Context, userID string) (model.TourGuide, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.TourGuide]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) TourGuide {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.TourGuide](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.TourGuide, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tour_guide.GetByID")
	defer scope.End()

	return r.getBy(ctx, model.FieldID, id)
}

func (r *repositoryImpl) GetByUserID(ctx context.Context, userID string) (model.TourGuide, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tour_guide.GetByUserID")
	defer scope.End()

	return r.getBy(ctx, model.FieldUserID, userID)
}

func (r *repositoryImpl) getBy(ctx context.Context, field, value string) (model.TourGuide, error) {
	guide, err := r.Repository.Get(ctx, shared.FilterByField(field, value, model.TableName))
	if err != nil {
		return guide, fmt.Errorf("failed to get tour guide: %w", err)
	}

	if guide.ID == constant.Empty {
		return guide, failure.NotFound("tour guide not found") //nolint:wrapcheck
	}

	return guide, nil
}
