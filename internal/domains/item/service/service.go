package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"gearshare/config"
	"gearshare/infras/otel"
	bookingModel "gearshare/internal/domains/booking/model"
	bookingRepo "gearshare/internal/domains/booking/repository"
	commentModel "gearshare/internal/domains/comment/model"
	commentDto "gearshare/internal/domains/comment/model/dto"
	commentRepo "gearshare/internal/domains/comment/repository"
	"gearshare/internal/domains/item/model"
	"gearshare/internal/domains/item/model/dto"
	"gearshare/internal/domains/item/repository"
	requestModel "gearshare/internal/domains/request/model"
	requestRepo "gearshare/internal/domains/request/repository"
	userModel "gearshare/internal/domains/user/model"
	userRepo "gearshare/internal/domains/user/repository"
	"gearshare/shared"
	"gearshare/shared/cache"
	"gearshare/shared/clock"
	"gearshare/shared/constant"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheSearchItem = "item:search"
)

type Item interface {
	Create(ctx context.Context, req dto.CreateItemRequest, ownerID int64) (dto.ItemResponse, error)
	Update(ctx context.Context, req dto.UpdateItemRequest, itemID, ownerID int64) (dto.ItemResponse, error)
	Get(ctx context.Context, itemID, callerID int64) (dto.ItemDetailResponse, error)
	ListByOwner(ctx context.Context, ownerID int64, page gDto.PageRequest) ([]dto.ItemDetailResponse, error)
	Search(ctx context.Context, text string, page gDto.PageRequest) ([]dto.ItemResponse, error)
}

type serviceImpl struct {
	repo        repository.Item
	userRepo    userRepo.User
	requestRepo requestRepo.Request
	bookingRepo bookingRepo.Booking
	commentRepo commentRepo.Comment
	cfg         *config.Config
	cache       cache.RedisCache
	clock       clock.Clock
	otel        otel.Otel
}

func New(
	repo repository.Item,
	userRepo userRepo.User,
	requestRepo requestRepo.Request,
	bookingRepo bookingRepo.Booking,
	commentRepo commentRepo.Comment,
	cfg *config.Config,
	cache cache.RedisCache,
	clock clock.Clock,
	otel otel.Otel,
) Item {
	return &serviceImpl{
		repo:        repo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		cfg:         cfg,
		cache:       cache,
		clock:       clock,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest, ownerID int64) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(ownerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if owner exists")

		return res, fmt.Errorf("failed to check if owner exists: %w", err)
	}

	if !exist {
		return res, failure.NotFoundf("user %d not found", ownerID) //nolint:wrapcheck
	}

	if req.RequestID != nil {
		exist, err := s.requestRepo.Exist(ctx, shared.FilterByID(*req.RequestID, requestModel.FieldID, requestModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if request exists")

			return res, fmt.Errorf("failed to check if request exists: %w", err)
		}

		if !exist {
			return res, failure.NotFoundf("request %d not found", *req.RequestID) //nolint:wrapcheck
		}
	}

	item := req.ToModel(ownerID)

	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		log.Error().Err(err).Msg("failed to create item")

		return res, fmt.Errorf("failed to create item: %w", err)
	}

	item.ID = id
	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheSearchItem)
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItemRequest, itemID, ownerID int64) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(itemID, model.FieldID, model.TableName)

	item, found, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("item %d not found", itemID) //nolint:wrapcheck
	}

	if item.OwnerID != ownerID {
		return res, failure.Forbidden("only the owner can edit an item") //nolint:wrapcheck
	}

	// The request binding is fixed at creation time.
	if req.RequestID != nil && (!item.RequestID.Valid || item.RequestID.Int64 != *req.RequestID) {
		return res, failure.Validation("request binding cannot be changed") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req)
	if len(updatedFields) > 0 {
		if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update item")

			return res, fmt.Errorf("failed to update item: %w", err)
		}
	}

	if req.Name != "" {
		item.Name = req.Name
	}

	if req.Description != "" {
		item.Description = req.Description
	}

	if req.Available != nil {
		item.Available = *req.Available
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheSearchItem)
	}()

	return res, nil
}

// Get returns the item detail. Booking slots are only visible to the owner,
// every viewer gets the comments.
func (s *serviceImpl) Get(ctx context.Context, itemID, callerID int64) (res dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, found, err := s.repo.Get(ctx, shared.FilterByID(itemID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("item %d not found", itemID) //nolint:wrapcheck
	}

	comments, err := s.commentRepo.GetAll(
		ctx,
		gDto.Pageable{SortBy: commentModel.TableName + "." + commentModel.FieldCreatedAt, SortDir: gDto.SortDirDesc},
		filterByItemIDs(commentModel.FieldItemID, commentModel.TableName, itemID),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item comments")

		return res, fmt.Errorf("failed to get item comments: %w", err)
	}

	res.FromModel(item)
	res.Comments = commentDto.FromModels(comments)

	if item.OwnerID == callerID {
		schedules, err := s.loadSchedules(ctx, itemID)
		if err != nil {
			return res, err
		}

		applySchedule(&res, schedules[itemID])
	}

	return res, nil
}

// ListByOwner returns everything the owner shares, each item with its
// comments and booking slots, from one batch fetch per relation.
func (s *serviceImpl) ListByOwner(ctx context.Context, ownerID int64, page gDto.PageRequest) (res []dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(ownerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if owner exists")

		return res, fmt.Errorf("failed to check if owner exists: %w", err)
	}

	if !exist {
		return res, failure.NotFoundf("user %d not found", ownerID) //nolint:wrapcheck
	}

	ownerFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOwnerID,
				Operator: gDto.FilterOperatorEq,
				Value:    ownerID,
				Table:    model.TableName,
			},
		},
	}

	items, err := s.repo.GetAll(ctx, page.Pageable(model.TableName+"."+model.FieldID, gDto.SortDirAsc), ownerFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items")

		return res, fmt.Errorf("failed to get items: %w", err)
	}

	res = make([]dto.ItemDetailResponse, len(items))
	if len(items) == 0 {
		return res, nil
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	schedules, err := s.loadSchedules(ctx, itemIDs...)
	if err != nil {
		return res, err
	}

	comments, err := s.commentRepo.GetAll(
		ctx,
		gDto.Pageable{SortBy: commentModel.TableName + "." + commentModel.FieldCreatedAt, SortDir: gDto.SortDirDesc},
		filterByItemIDs(commentModel.FieldItemID, commentModel.TableName, itemIDs...),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item comments")

		return res, fmt.Errorf("failed to get item comments: %w", err)
	}

	commentsByItem := make(map[int64][]commentDto.CommentResponse)
	for _, comment := range comments {
		commentsByItem[comment.ItemID] = append(commentsByItem[comment.ItemID], commentDto.CommentResponse{
			ID:         comment.ID,
			Text:       comment.Text,
			AuthorName: comment.AuthorName,
			Created:    comment.CreatedAt,
		})
	}

	for i, item := range items {
		res[i].FromModel(item)
		res[i].Comments = commentsByItem[item.ID]

		if res[i].Comments == nil {
			res[i].Comments = []commentDto.CommentResponse{}
		}

		applySchedule(&res[i], schedules[item.ID])
	}

	return res, nil
}

// Search finds available items whose name or description contains the text.
// Blank text short-circuits to an empty result.
func (s *serviceImpl) Search(ctx context.Context, text string, page gDto.PageRequest) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(text) == "" {
		return []dto.ItemResponse{}, nil
	}

	cacheKey := shared.BuildCacheKey(cacheSearchItem, text, pageCacheKey(page))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for item search")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAvailable,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						ArgName:  "name_text",
						Field:    model.FieldName,
						Operator: gDto.FilterOperatorLike,
						Value:    text,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "description_text",
						Field:    model.FieldDescription,
						Operator: gDto.FilterOperatorLike,
						Value:    text,
						Table:    model.TableName,
					},
				},
			},
		},
	}

	items, err := s.repo.GetAll(ctx, page.Pageable(model.TableName+"."+model.FieldID, gDto.SortDirAsc), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search items")

		return res, fmt.Errorf("failed to search items: %w", err)
	}

	res = dto.FromModels(items)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save item search to cache")
		}
	}()

	return res, nil
}

// loadSchedules fetches the approved bookings of the given items in one
// query and reduces them into per-item last/next slots.
func (s *serviceImpl) loadSchedules(ctx context.Context, itemIDs ...int64) (map[int64]bookingModel.Schedule, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldItemID,
				Operator: gDto.FilterOperatorIn,
				Value:    itemIDs,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(bookingModel.StatusApproved),
				Table:    bookingModel.TableName,
			},
		},
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.Pageable{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item bookings")

		return nil, fmt.Errorf("failed to get item bookings: %w", err)
	}

	return bookingModel.BuildSchedule(bookings, s.clock.Now()), nil
}

func applySchedule(res *dto.ItemDetailResponse, schedule bookingModel.Schedule) {
	if schedule.Last != nil {
		res.LastBooking = &dto.BookingRef{ID: schedule.Last.ID, BookerID: schedule.Last.BookerID}
	}

	if schedule.Next != nil {
		res.NextBooking = &dto.BookingRef{ID: schedule.Next.ID, BookerID: schedule.Next.BookerID}
	}
}

func filterByItemIDs(field, table string, itemIDs ...int64) gDto.FilterGroup {
	if len(itemIDs) == 1 {
		return gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    field,
					Operator: gDto.FilterOperatorEq,
					Value:    itemIDs[0],
					Table:    table,
				},
			},
		}
	}

	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorIn,
				Value:    itemIDs,
				Table:    table,
			},
		},
	}
}

func pageCacheKey(page gDto.PageRequest) string {
	if !page.Paginated() {
		return "all"
	}

	return fmt.Sprintf("%d:%d", *page.From, *page.Size)
}
