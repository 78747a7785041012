package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"gearshare/config"
	"gearshare/infras/otel"
	itemModel "gearshare/internal/domains/item/model"
	itemDto "gearshare/internal/domains/item/model/dto"
	itemRepo "gearshare/internal/domains/item/repository"
	"gearshare/internal/domains/request/model"
	"gearshare/internal/domains/request/model/dto"
	"gearshare/internal/domains/request/repository"
	userModel "gearshare/internal/domains/user/model"
	userRepo "gearshare/internal/domains/user/repository"
	"gearshare/shared"
	"gearshare/shared/clock"
	"gearshare/shared/constant"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"

	"github.com/rs/zerolog/log"
)

type Request interface {
	Create(ctx context.Context, req dto.CreateRequestRequest, requestorID int64) (dto.RequestResponse, error)
	Get(ctx context.Context, requestID, callerID int64) (dto.RequestResponse, error)
	ListOwn(ctx context.Context, requestorID int64) ([]dto.RequestResponse, error)
	ListOthers(ctx context.Context, callerID int64, page gDto.PageRequest) ([]dto.RequestResponse, error)
}

type serviceImpl struct {
	repo     repository.Request
	userRepo userRepo.User
	itemRepo itemRepo.Item
	cfg      *config.Config
	clock    clock.Clock
	otel     otel.Otel
}

func New(
	repo repository.Request,
	userRepo userRepo.User,
	itemRepo itemRepo.Item,
	cfg *config.Config,
	clock clock.Clock,
	otel otel.Otel,
) Request {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		itemRepo: itemRepo,
		cfg:      cfg,
		clock:    clock,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRequestRequest, requestorID int64) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkUserExists(ctx, requestorID); err != nil {
		return res, err
	}

	request := req.ToModel(requestorID, s.clock.Now())

	id, err := s.repo.Insert(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("failed to create request")

		return res, fmt.Errorf("failed to create request: %w", err)
	}

	request.ID = id
	res.FromModel(request, nil)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, requestID, callerID int64) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkUserExists(ctx, callerID); err != nil {
		return res, err
	}

	request, found, err := s.repo.Get(ctx, shared.FilterByID(requestID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get request")

		return res, fmt.Errorf("failed to get request: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("request %d not found", requestID) //nolint:wrapcheck
	}

	responses, err := s.attachItems(ctx, []model.Request{request})
	if err != nil {
		return res, err
	}

	return responses[0], nil
}

// ListOwn returns the caller's own requests, newest first.
func (s *serviceImpl) ListOwn(ctx context.Context, requestorID int64) (res []dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListOwn")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkUserExists(ctx, requestorID); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRequestorID,
				Operator: gDto.FilterOperatorEq,
				Value:    requestorID,
				Table:    model.TableName,
			},
		},
	}

	requests, err := s.repo.GetAll(ctx, gDto.Pageable{SortBy: model.SortFieldCreatedAt, SortDir: gDto.SortDirDesc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get requests")

		return res, fmt.Errorf("failed to get requests: %w", err)
	}

	return s.attachItems(ctx, requests)
}

// ListOthers pages through other users' requests. Without both pagination
// params the listing is empty rather than unbounded.
func (s *serviceImpl) ListOthers(ctx context.Context, callerID int64, page gDto.PageRequest) (res []dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListOthers")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkUserExists(ctx, callerID); err != nil {
		return res, err
	}

	if !page.Paginated() {
		return []dto.RequestResponse{}, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRequestorID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    callerID,
				Table:    model.TableName,
			},
		},
	}

	requests, err := s.repo.GetAll(ctx, page.Pageable(model.SortFieldCreatedAt, gDto.SortDirDesc), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get requests")

		return res, fmt.Errorf("failed to get requests: %w", err)
	}

	return s.attachItems(ctx, requests)
}

func (s *serviceImpl) checkUserExists(ctx context.Context, userID int64) error {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFoundf("user %d not found", userID) //nolint:wrapcheck
	}

	return nil
}

// attachItems joins the offered items onto the requests with one batch
// fetch keyed by request id.
func (s *serviceImpl) attachItems(ctx context.Context, requests []model.Request) ([]dto.RequestResponse, error) {
	res := make([]dto.RequestResponse, len(requests))
	if len(requests) == 0 {
		return res, nil
	}

	requestIDs := make([]int64, len(requests))
	for i, request := range requests {
		requestIDs[i] = request.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    itemModel.FieldRequestID,
				Operator: gDto.FilterOperatorIn,
				Value:    requestIDs,
				Table:    itemModel.TableName,
			},
		},
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.Pageable{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get request items")

		return res, fmt.Errorf("failed to get request items: %w", err)
	}

	itemsByRequest := make(map[int64][]itemDto.ItemResponse)

	for _, item := range items {
		if !item.RequestID.Valid {
			continue
		}

		var itemRes itemDto.ItemResponse

		itemRes.FromModel(item)
		itemsByRequest[item.RequestID.Int64] = append(itemsByRequest[item.RequestID.Int64], itemRes)
	}

	for i, request := range requests {
		res[i].FromModel(request, itemsByRequest[request.ID])
	}

	return res, nil
}
