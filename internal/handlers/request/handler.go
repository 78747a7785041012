package request

import (
	"gearshare/infras/otel"
	"gearshare/internal/domains/request/model/dto"
	"gearshare/internal/domains/request/service"
	"gearshare/shared/constant"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"
	"gearshare/shared/validator"
	"gearshare/transport/http/middleware"
	"gearshare/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Request
	otel    otel.Otel
}

func New(service service.Request, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRequest)
		routerGroup.Get("/", handler.GetOwnRequests)
		routerGroup.Get("/all", handler.GetOtherRequests)
		routerGroup.Get("/{requestId}", handler.GetRequestByID)
	})
}

// CreateRequest posts a new item request.
// @Summary Create an item request
// @Description Ask the community for an item that is not listed yet.
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param request body dto.CreateRequestRequest true "Create Request Request"
// @Success 201 {object} dto.RequestResponse "Request created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests [post]
func (handler *Handler) CreateRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRequest")
	defer scope.End()

	req := dto.CreateRequestRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	itemRequest, err := handler.service.Create(ctx, req, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item request")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item request created successfully")

	response.WithJSON(writer, http.StatusCreated, itemRequest)
}

// GetOwnRequests lists the caller's requests with the items answering them.
// @Summary List own item requests
// @Description List the caller's item requests, newest first, each with the items offered for it.
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Success 200 {array} dto.RequestResponse "List of requests"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests [get]
func (handler *Handler) GetOwnRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnRequests")
	defer scope.End()

	requests, err := handler.service.ListOwn(ctx, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own item requests")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item requests retrieved successfully")

	response.WithJSON(writer, http.StatusOK, requests)
}

// GetOtherRequests pages through other users' requests.
// @Summary List other users' item requests
// @Description Page through requests posted by other users. Without both from and size the list is empty.
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param from query int false "Index of the first result"
// @Param size query int false "Page size"
// @Success 200 {array} dto.RequestResponse "List of requests"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests/all [get]
func (handler *Handler) GetOtherRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOtherRequests")
	defer scope.End()

	page, err := gDto.ParsePageRequest(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := page.Validate(); err != nil {
		response.WithError(writer, err)

		return
	}

	requests, err := handler.service.ListOthers(ctx, middleware.UserID(ctx), page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get other item requests")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item requests retrieved successfully")

	response.WithJSON(writer, http.StatusOK, requests)
}

// GetRequestByID retrieves a single request with its items.
// @Summary Get an item request by ID
// @Description Retrieve a single item request with the items offered for it.
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param requestId path int true "Request ID"
// @Success 200 {object} dto.RequestResponse "Request details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests/{requestId} [get]
func (handler *Handler) GetRequestByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequestByID")
	defer scope.End()

	requestID, err := pathID(request, constant.RequestParamRequestID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	itemRequest, err := handler.service.Get(ctx, requestID, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get item request by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item request retrieved successfully")

	response.WithJSON(writer, http.StatusOK, itemRequest)
}

func pathID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.Validationf("invalid %s: %s", name, raw) //nolint:wrapcheck
	}

	return id, nil
}
