package item

import (
	"gearshare/infras/otel"
	commentDto "gearshare/internal/domains/comment/model/dto"
	commentService "gearshare/internal/domains/comment/service"
	"gearshare/internal/domains/item/model/dto"
	"gearshare/internal/domains/item/service"
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
	service        service.Item
	commentService commentService.Comment
	otel           otel.Otel
}

func New(service service.Item, commentService commentService.Comment, otel otel.Otel) Handler {
	return Handler{
		service:        service,
		commentService: commentService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Get("/", handler.GetOwnItems)
		routerGroup.Get("/search", handler.SearchItems)
		routerGroup.Get("/{itemId}", handler.GetItemByID)
		routerGroup.Patch("/{itemId}", handler.UpdateItem)
		routerGroup.Post("/{itemId}/comment", handler.AddComment)
	})
}

// CreateItem registers a new item owned by the calling user.
// @Summary Create an item
// @Description Register a new item for sharing, optionally answering an existing item request.
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param request body dto.CreateItemRequest true "Create Item Request"
// @Success 201 {object} dto.ItemResponse "Item created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items [post]
func (handler *Handler) CreateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	req := dto.CreateItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	item, err := handler.service.Create(ctx, req, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item created successfully")

	response.WithJSON(writer, http.StatusCreated, item)
}

// UpdateItem patches an item's name, description or availability.
// @Summary Update an item
// @Description Patch an item. Only the owner may update it; the request binding cannot change.
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param itemId path int true "Item ID"
// @Param request body dto.UpdateItemRequest true "Update Item Request"
// @Success 200 {object} dto.ItemResponse "Item updated"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/{itemId} [patch]
func (handler *Handler) UpdateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	itemID, err := pathID(request, constant.RequestParamItemID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	item, err := handler.service.Update(ctx, req, itemID, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item updated successfully")

	response.WithJSON(writer, http.StatusOK, item)
}

// GetItemByID retrieves an item with its comments.
// @Summary Get an item by ID
// @Description Retrieve an item with its comments. The owner also sees the booking schedule.
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param itemId path int true "Item ID"
// @Success 200 {object} dto.ItemDetailResponse "Item details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/{itemId} [get]
func (handler *Handler) GetItemByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	itemID, err := pathID(request, constant.RequestParamItemID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	item, err := handler.service.Get(ctx, itemID, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get item by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item retrieved successfully")

	response.WithJSON(writer, http.StatusOK, item)
}

// GetOwnItems lists the calling user's items with schedules and comments.
// @Summary List own items
// @Description List the caller's items with their booking schedules and comments.
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param from query int false "Index of the first result"
// @Param size query int false "Page size"
// @Success 200 {array} dto.ItemDetailResponse "List of items"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items [get]
func (handler *Handler) GetOwnItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnItems")
	defer scope.End()

	page, err := pageRequest(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	items, err := handler.service.ListByOwner(ctx, middleware.UserID(ctx), page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own items")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Items retrieved successfully")

	response.WithJSON(writer, http.StatusOK, items)
}

// SearchItems finds available items by text.
// @Summary Search items
// @Description Search available items by name or description. A blank query yields an empty list.
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param text query string false "Search text"
// @Param from query int false "Index of the first result"
// @Param size query int false "Page size"
// @Success 200 {array} dto.ItemResponse "Matching items"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/search [get]
func (handler *Handler) SearchItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchItems")
	defer scope.End()

	page, err := pageRequest(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	text := request.URL.Query().Get(constant.RequestParamText)

	items, err := handler.service.Search(ctx, text, page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search items")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Items searched successfully")

	response.WithJSON(writer, http.StatusOK, items)
}

// AddComment leaves a comment on an item the caller has booked before.
// @Summary Comment on an item
// @Description Leave a comment. Only users with a completed approved booking of the item may comment.
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user ID"
// @Param itemId path int true "Item ID"
// @Param request body commentDto.CreateCommentRequest true "Create Comment Request"
// @Success 201 {object} commentDto.CommentResponse "Comment added"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/{itemId}/comment [post]
func (handler *Handler) AddComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddComment")
	defer scope.End()

	itemID, err := pathID(request, constant.RequestParamItemID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := commentDto.CreateCommentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	comment, err := handler.commentService.Add(ctx, req, itemID, middleware.UserID(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add comment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Comment added successfully")

	response.WithJSON(writer, http.StatusCreated, comment)
}

func pageRequest(request *http.Request) (gDto.PageRequest, error) {
	page, err := gDto.ParsePageRequest(request)
	if err != nil {
		return page, err
	}

	return page, page.Validate()
}

func pathID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.Validationf("invalid %s: %s", name, raw) //nolint:wrapcheck
	}

	return id, nil
}
