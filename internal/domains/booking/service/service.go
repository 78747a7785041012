package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"gearshare/config"
	"gearshare/infras/otel"
	"gearshare/internal/domains/booking/model"
	"gearshare/internal/domains/booking/model/dto"
	"gearshare/internal/domains/booking/repository"
	itemModel "gearshare/internal/domains/item/model"
	itemRepo "gearshare/internal/domains/item/repository"
	userModel "gearshare/internal/domains/user/model"
	userRepo "gearshare/internal/domains/user/repository"
	"gearshare/internal/events"
	"gearshare/shared"
	"gearshare/shared/clock"
	"gearshare/shared/constant"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, bookerID int64) (dto.BookingResponse, error)
	Approve(ctx context.Context, bookingID, callerID int64, approved bool) (dto.BookingResponse, error)
	Get(ctx context.Context, bookingID, callerID int64) (dto.BookingResponse, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.StateFilter, page gDto.PageRequest) ([]dto.BookingResponse, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.StateFilter, page gDto.PageRequest) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	userRepo  userRepo.User
	itemRepo  itemRepo.Item
	cfg       *config.Config
	clock     clock.Clock
	publisher events.Publisher
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	userRepo userRepo.User,
	itemRepo itemRepo.Item,
	cfg *config.Config,
	clock clock.Clock,
	publisher events.Publisher,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		userRepo:  userRepo,
		itemRepo:  itemRepo,
		cfg:       cfg,
		clock:     clock,
		publisher: publisher,
		otel:      otel,
	}
}

// Create books an item for the caller. The booking starts out WAITING and
// overlapping bookings are allowed, the owner arbitrates them on approval.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, bookerID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booker, found, err := s.userRepo.Get(ctx, shared.FilterByID(bookerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booker")

		return res, fmt.Errorf("failed to get booker: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("user %d not found", bookerID) //nolint:wrapcheck
	}

	item, found, err := s.itemRepo.Get(ctx, shared.FilterByID(req.ItemID, itemModel.FieldID, itemModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("item %d not found", req.ItemID) //nolint:wrapcheck
	}

	if !item.Available {
		return res, failure.Validationf("item %d is not available", req.ItemID) //nolint:wrapcheck
	}

	// Owners answer bookings, they do not place them. A 404 here keeps the
	// response identical to a booking for somebody else's missing item.
	if item.OwnerID == bookerID {
		return res, failure.NotFound("owner cannot book own item") //nolint:wrapcheck
	}

	if err = s.checkPeriod(req.Start, req.End); err != nil {
		return res, err
	}

	booking := req.ToModel(bookerID)

	id, err := s.repo.Insert(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = id
	booking.ItemName = item.Name
	booking.ItemAvailable = item.Available
	booking.ItemOwnerID = item.OwnerID
	booking.BookerName = booker.Name
	booking.BookerEmail = booker.Email

	res.FromModel(booking)

	s.publisher.PublishBookingEvent(ctx, events.TypeBookingCreated, s.buildEvent(booking))

	return res, nil
}

// checkPeriod enforces the booking time sanity rules in a fixed order:
// start not in the past, end not in the past, start strictly before end.
func (s *serviceImpl) checkPeriod(start, end time.Time) error {
	now := s.clock.Now()

	if start.Before(now) {
		return failure.Validation("start must not be in the past") //nolint:wrapcheck
	}

	if end.Before(now) {
		return failure.Validation("end must not be in the past") //nolint:wrapcheck
	}

	if !end.After(start) {
		return failure.Validation("end must be after start") //nolint:wrapcheck
	}

	return nil
}

// Approve settles a WAITING booking. Only the item owner may answer, and a
// booking already settled cannot be flipped back.
func (s *serviceImpl) Approve(ctx context.Context, bookingID, callerID int64, approved bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(bookingID, model.FieldID, model.TableName)

	booking, found, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("booking %d not found", bookingID) //nolint:wrapcheck
	}

	// Non-owners get the same 404 as a missing booking so they cannot
	// probe for booking ids.
	if booking.ItemOwnerID != callerID {
		return res, failure.NotFoundf("booking %d not found", bookingID) //nolint:wrapcheck
	}

	if booking.Status != model.StatusWaiting {
		return res, failure.Validationf("booking %d is not waiting for approval", bookingID) //nolint:wrapcheck
	}

	status := model.StatusRejected
	eventType := events.TypeBookingRejected

	if approved {
		status = model.StatusApproved
		eventType = events.TypeBookingApproved
	}

	err = s.repo.Update(ctx, map[string]any{model.FieldStatus: string(status)}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status
	res.FromModel(booking)

	s.publisher.PublishBookingEvent(ctx, eventType, s.buildEvent(booking))

	return res, nil
}

// Get returns a booking to its booker or the item owner; anyone else sees
// a 404.
func (s *serviceImpl) Get(ctx context.Context, bookingID, callerID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("booking %d not found", bookingID) //nolint:wrapcheck
	}

	if booking.BookerID != callerID && booking.ItemOwnerID != callerID {
		return res, failure.NotFoundf("booking %d not found", bookingID) //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ListByBooker(ctx context.Context, bookerID int64, state model.StateFilter, page gDto.PageRequest) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooker")
	defer scope.End()
	defer scope.TraceIfError(err)

	perspective := gDto.Filter{
		Field:    model.FieldBookerID,
		Operator: gDto.FilterOperatorEq,
		Value:    bookerID,
		Table:    model.TableName,
	}

	return s.list(ctx, bookerID, perspective, state, page)
}

func (s *serviceImpl) ListByOwner(ctx context.Context, ownerID int64, state model.StateFilter, page gDto.PageRequest) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	perspective := gDto.Filter{
		Field:    itemModel.FieldOwnerID,
		Operator: gDto.FilterOperatorEq,
		Value:    ownerID,
		Table:    itemModel.TableName,
	}

	return s.list(ctx, ownerID, perspective, state, page)
}

// list runs a booking listing from either perspective: newest start first,
// optionally paginated, narrowed by the state filter.
func (s *serviceImpl) list(ctx context.Context, callerID int64, perspective gDto.Filter, state model.StateFilter, page gDto.PageRequest) ([]dto.BookingResponse, error) {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(callerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return nil, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return nil, failure.NotFoundf("user %d not found", callerID) //nolint:wrapcheck
	}

	filter := s.stateFilter(perspective, state)
	pageable := page.Pageable(model.SortFieldStartAt, gDto.SortDirDesc)

	models, err := s.repo.GetAll(ctx, pageable, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.FromModels(models), nil
}

// stateFilter translates a listing state into row predicates. CURRENT, PAST
// and FUTURE compare the booking period against the clock; WAITING and
// REJECTED match the stored status; ALL adds nothing.
func (s *serviceImpl) stateFilter(perspective gDto.Filter, state model.StateFilter) gDto.FilterGroup {
	now := s.clock.Now()
	filters := []any{perspective}

	switch state {
	case model.StateCurrent:
		filters = append(filters,
			gDto.Filter{
				Field:    model.FieldStartAt,
				Operator: gDto.FilterOperatorLessThan,
				Value:    now,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndAt,
				Operator: gDto.FilterOperatorGreaterThan,
				Value:    now,
				Table:    model.TableName,
			},
		)
	case model.StatePast:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldEndAt,
			Operator: gDto.FilterOperatorLessThan,
			Value:    now,
			Table:    model.TableName,
		})
	case model.StateFuture:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStartAt,
			Operator: gDto.FilterOperatorGreaterThan,
			Value:    now,
			Table:    model.TableName,
		})
	case model.StateWaiting:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    string(model.StatusWaiting),
			Table:    model.TableName,
		})
	case model.StateRejected:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    string(model.StatusRejected),
			Table:    model.TableName,
		})
	case model.StateAll:
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func (s *serviceImpl) buildEvent(booking model.Booking) events.BookingEvent {
	return events.BookingEvent{
		BookingID:  booking.ID,
		ItemID:     booking.ItemID,
		BookerID:   booking.BookerID,
		OwnerID:    booking.ItemOwnerID,
		Status:     string(booking.Status),
		Start:      booking.StartAt,
		End:        booking.EndAt,
		OccurredAt: s.clock.Now(),
	}
}
