package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"vietour/config"
	"vietour/infras/kafka"
	"vietour/infras/metrics"
	"vietour/infras/otel"
	"vietour/internal/domains/booking/classifier"
	"vietour/internal/domains/booking/model"
	"vietour/internal/domains/booking/model/dto"
	"vietour/internal/domains/booking/pricing"
	"vietour/internal/domains/booking/repository"
	guideRepo "vietour/internal/domains/tourguide/repository"
	"vietour/shared"
	"vietour/shared/cache"
	"vietour/shared/constant"
	gDto "vietour/shared/dto"
	"vietour/shared/failure"
	"vietour/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetByTourGuide(ctx context.Context, tourGuideID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, id string, status model.Status, actor model.ActorRole) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	guideRepo guideRepo.TourGuide
	events    kafka.Client
	cfg       *config.Config
	cache     cache.Cache
	otel      otel.Otel
	policy    model.Policy
}

func New(repo repository.Booking, guideRepo guideRepo.TourGuide, events kafka.Client, cfg *config.Config, cache cache.Cache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		guideRepo: guideRepo,
		events:    events,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		policy: model.Policy{
			AllowConfirmedCancellation: cfg.App.Booking.AllowConfirmedCancellation,
		},
	}
}

// Create validates the requested window, prices it from the guide's hourly rate and hands it to
// the store. Store rejections are reported either as an availability conflict or a persistence failure.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("login required to book a tour guide") //nolint:wrapcheck
	}

	start, end, err := req.Window(timezone.Now())
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	guide, err := s.guideRepo.Get(ctx, req.TourGuideID)
	if err != nil {
		log.Error().Err(err).Str("tourGuideID", req.TourGuideID).Msg("failed to load tour guide")

		if failure.IsKind(err, failure.KindNotFound) {
			return res, err //nolint:wrapcheck
		}

		return res, failure.Persistence(err) //nolint:wrapcheck
	}

	booking := req.ToModel(uuid.NewString(), userID, start, end)
	booking.TotalPrice = pricing.TotalPrice(start, end, guide.HourlyRate)
	booking.Currency = shared.NormalizeCurrency(guide.CurrencyOr(""), s.cfg.App.Booking.DefaultCurrency)

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		err = classifier.Wrap(err)

		if failure.IsKind(err, failure.KindAvailabilityConflict) {
			metrics.BookingConflictsTotal.Inc()
			log.Warn().Str("tourGuideID", booking.TourGuideID).Msg("tour guide not available for requested window")
		} else {
			log.Error().Err(err).Msg("failed to create booking")
		}

		return res, err
	}

	res.Booking.FromModel(created)
	res.Payment = dto.NewPaymentInstruction(created)

	s.invalidateLists(ctx)
	s.publish(ctx, model.Event{
		Type:        model.EventCreated,
		BookingID:   created.ID,
		TourGuideID: created.TourGuideID,
		UserID:      created.UserID,
		To:          created.Status,
		Actor:       model.ActorClient,
		OccurredAt:  timezone.Now(),
	})

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := cache.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err != nil {
		booking, getErr := s.load(ctx, id)
		if getErr != nil {
			return res, getErr
		}

		res.FromModel(booking)

		go func(fill dto.BookingResponse) {
			c := context.WithoutCancel(ctx)

			if _, err := s.cache.SaveIfAbsent(c, cacheKey, fill, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}(res)
	} else {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")
	}

	err = s.authorize(ctx, res.UserID, res.TourGuideID)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.SortableFields...)

	cacheKey := cache.BuildQueryCacheKey(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.Persistence(err) //nolint:wrapcheck
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// GetMine lists the bookings made by the calling client, or the bookings of the calling guide.
func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if userID == constant.Empty {
		return res, failure.Unauthorized("login required") //nolint:wrapcheck
	}

	if role != constant.RoleGuide {
		return s.GetAll(ctx, params, shared.FilterByField(model.FieldUserID, userID, model.TableName))
	}

	guide, err := s.guideRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to load tour guide profile")

		return res, err //nolint:wrapcheck
	}

	return s.GetAll(ctx, params, shared.FilterByField(model.FieldTourGuideID, guide.ID, model.TableName))
}

func (s *serviceImpl) GetByTourGuide(ctx context.Context, tourGuideID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByTourGuide")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.authorize(ctx, constant.Empty, tourGuideID)
	if err != nil {
		return res, err
	}

	return s.GetAll(ctx, params, shared.FilterByField(model.FieldTourGuideID, tourGuideID, model.TableName))
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, status model.Status, actor model.ActorRole) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	return s.transition(ctx, booking, status, actor)
}

// Cancel is the client's cancellation of a booking that has not been confirmed yet.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusPending {
		return res, failure.InvalidTransition(fmt.Sprintf("only pending bookings can be cancelled, booking is %s", booking.Status)) //nolint:wrapcheck
	}

	return s.transition(ctx, booking, model.StatusCancelled, model.ActorClient)
}

// transition checks the state machine and ownership, then lets the store apply the change.
// The returned booking carries the new status only once the store has confirmed it.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, to model.Status, actor model.ActorRole) (res dto.BookingResponse, err error) {
	from := booking.Status

	if !s.policy.CanTransition(from, to, actor) {
		return res, failure.InvalidTransition(fmt.Sprintf("cannot change booking status from %s to %s as %s", from, to, actor)) //nolint:wrapcheck
	}

	err = s.authorizeActor(ctx, booking, actor)
	if err != nil {
		return res, err
	}

	err = s.repo.UpdateStatus(ctx, booking.ID, from, to)
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to update booking status")

		if failure.IsKind(err, failure.KindInvalidTransition) {
			return res, err //nolint:wrapcheck
		}

		return res, failure.Persistence(err) //nolint:wrapcheck
	}

	booking.Status = to
	booking.UpdatedAt = timezone.Now()

	metrics.BookingTransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()

	res.FromModel(booking)

	s.refresh(ctx, res)
	s.publish(ctx, model.Event{
		Type:        model.EventStatusChanged,
		BookingID:   booking.ID,
		TourGuideID: booking.TourGuideID,
		UserID:      booking.UserID,
		From:        from,
		To:          to,
		Actor:       actor,
		OccurredAt:  booking.UpdatedAt,
	})

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return booking, err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		return booking, failure.Persistence(err) //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := cache.BuildQueryCacheKey(cacheCountBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, failure.Persistence(err) //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		cache.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		cache.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// refresh overwrites the cached booking with its post-transition state before the caller
// sees the result. Read-through fills only write absent keys, so they cannot undo this.
func (s *serviceImpl) refresh(ctx context.Context, res dto.BookingResponse) {
	c := context.WithoutCancel(ctx)
	cacheKey := cache.BuildCacheKey(cacheGetBooking, res.ID)

	if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to refresh booking cache, evicting")

		if err := s.cache.Delete(c, cacheKey); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to delete booking from cache")
		}
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.events.SendMessages(c, kafka.Message{Key: event.BookingID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("bookingID", event.BookingID).Str("type", string(event.Type)).Msg("failed to publish booking event")
		}
	}()
}
