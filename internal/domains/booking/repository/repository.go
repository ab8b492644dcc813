package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"vietour/infras/otel"
	"vietour/infras/postgres"
	"vietour/internal/domains/booking/model"
	"vietour/shared"
	"vietour/shared/constant"
	gDto "vietour/shared/dto"
	"vietour/shared/failure"
	gRepo "vietour/shared/repository"
	"vietour/shared/timezone"

	"github.com/lib/pq"
)

const argCurrentStatus = "current_status"

// Booking is the booking store. Overlapping Pending or Confirmed bookings of one guide are
// rejected by the database.
type Booking interface {
	Create(ctx context.Context, booking model.Booking) (model.Booking, error)
	Get(ctx context.Context, id string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateStatus(ctx context.Context, id string, from, to model.Status) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) Create(ctx context.Context, booking model.Booking) (created model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	created, err = r.InsertReturning(ctx, booking)
	if err != nil {
		return created, translate(err)
	}

	return created, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetByID")
	defer scope.End()

	booking, err := r.Repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error) {
	return r.Repository.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// UpdateStatus moves the booking only if it is still in status from.
func (r *repositoryImpl) UpdateStatus(ctx context.Context, id string, from, to model.Status) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Add(gDto.Filter{
		ArgName:  argCurrentStatus,
		Field:    model.FieldStatus,
		Value:    from,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	affected, err := r.Update(ctx, map[string]any{
		model.FieldStatus:        to,
		constant.FieldUpdatedAt: timezone.Now(),
	}, filter)
	if err != nil {
		return translate(err)
	}

	if affected == 0 {
		return failure.InvalidTransition("booking status changed concurrently") //nolint:wrapcheck
	}

	return nil
}

// translate maps constraint violations to failures that carry a status code and a message.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeExclusionViolation:
		return failure.Conflict("tour guide is already booked for this time slot") //nolint:wrapcheck
	case constant.PqErrorCodeFkViolation:
		return failure.NotFound("tour guide not found") //nolint:wrapcheck
	case constant.PqErrorCodeCheckViolation, constant.PqErrorCodeNotNullViolation:
		return failure.New(http.StatusBadRequest, fmt.Sprintf("booking rejected by store: %s", pqErr.Message)) //nolint:wrapcheck
	default:
		return err
	}
}
