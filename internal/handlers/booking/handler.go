package booking

import (
	"gearshare/infras/otel"
	"gearshare/internal/domains/booking/model"
	"gearshare/internal/domains/booking/model/dto"
	"gearshare/internal/domains/booking/service"
	"gearshare/shared/constant"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"
	"gearshare/shared/validator"
	"gearshare/transport/http/middleware"
	"gearshare/transport/http/response"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookingsByBooker)
		routerGroup.Get("/owner", handler.GetBookingsByOwner)
		routerGroup.Get("/{bookingId}", handler.GetBookingByID)
		routerGroup.Patch("/{bookingId}", handler.ApproveBooking)
	})
}

// CreateBooking places a new booking for the calling user.
// @Summary Book an item
// @Description Place a booking for an item owned by another user. The booking starts out WAITING.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingResponse "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, booking)
}

// ApproveBooking lets the item owner answer a waiting booking.
// @Summary Approve or reject a booking
// @Description Approve or reject a WAITING booking. Only the owner of the booked item may answer.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param bookingId path int true "Booking ID"
// @Param approved query bool true "Approve (true) or reject (false)"
// @Success 200 {object} dto.BookingResponse "Booking settled"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{bookingId} [patch]
func (handler *Handler) ApproveBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	bookingID, err := pathID(request, constant.RequestParamBookingID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	rawApproved := request.URL.Query().Get(constant.RequestParamApproved)

	approved, err := strconv.ParseBool(rawApproved)
	if err != nil {
		response.WithError(writer, failure.Validationf("invalid approved parameter: %s", rawApproved))

		return
	}

	booking, err := handler.service.Approve(ctx, bookingID, middleware.UserID(ctx), approved)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking settled successfully")

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking. Only the booker and the item owner can see it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param bookingId path int true "Booking ID"
// @Success 200 {object} dto.BookingResponse "Booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{bookingId} [get]
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	bookingID, err := pathID(request, constant.RequestParamBookingID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Get(ctx, bookingID, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookingsByBooker lists the calling user's bookings.
// @Summary List own bookings
// @Description List the caller's bookings, newest start first, narrowed by state.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param state query string false "Listing state (ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED)"
// @Param from query int false "Index of the first result"
// @Param size query int false "Page size"
// @Success 200 {array} dto.BookingResponse "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [get]
func (handler *Handler) GetBookingsByBooker(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByBooker")
	defer scope.End()

	state, page, err := listingParams(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.ListByBooker(ctx, middleware.UserID(ctx), state, page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetBookingsByOwner lists bookings of the calling user's items.
// @Summary List bookings of owned items
// @Description List bookings placed on the caller's items, newest start first, narrowed by state.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param state query string false "Listing state (ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED)"
// @Param from query int false "Index of the first result"
// @Param size query int false "Page size"
// @Success 200 {array} dto.BookingResponse "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/owner [get]
func (handler *Handler) GetBookingsByOwner(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByOwner")
	defer scope.End()

	state, page, err := listingParams(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.ListByOwner(ctx, middleware.UserID(ctx), state, page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Owner bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// listingParams reads the state and pagination params shared by the two
// booking listings. The state token is upcased here; an absent state means
// ALL. Pagination params are validated before the state is applied.
func listingParams(request *http.Request) (model.StateFilter, gDto.PageRequest, error) {
	rawState := request.URL.Query().Get(constant.RequestParamState)
	if rawState == "" {
		rawState = string(model.StateAll)
	}

	state, err := model.ParseStateFilter(strings.ToUpper(rawState))
	if err != nil {
		return state, gDto.PageRequest{}, err
	}

	page, err := gDto.ParsePageRequest(request)
	if err != nil {
		return state, page, err
	}

	if err := page.Validate(); err != nil {
		return state, page, err
	}

	return state, page, nil
}

func pathID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.Validationf("invalid %s: %s", name, raw) //nolint:wrapcheck
	}

	return id, nil
}
