package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"gearshare/config"
	"gearshare/infras/otel"
	bookingModel "gearshare/internal/domains/booking/model"
	bookingRepo "gearshare/internal/domains/booking/repository"
	"gearshare/internal/domains/comment/model/dto"
	"gearshare/internal/domains/comment/repository"
	itemModel "gearshare/internal/domains/item/model"
	itemRepo "gearshare/internal/domains/item/repository"
	userModel "gearshare/internal/domains/user/model"
	userRepo "gearshare/internal/domains/user/repository"
	"gearshare/shared"
	"gearshare/shared/clock"
	"gearshare/shared/constant"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"

	"github.com/rs/zerolog/log"
)

type Comment interface {
	Add(ctx context.Context, req dto.CreateCommentRequest, itemID, authorID int64) (dto.CommentResponse, error)
}

type serviceImpl struct {
	repo        repository.Comment
	userRepo    userRepo.User
	itemRepo    itemRepo.Item
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	clock       clock.Clock
	otel        otel.Otel
}

func New(
	repo repository.Comment,
	userRepo userRepo.User,
	itemRepo itemRepo.Item,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	clock clock.Clock,
	otel otel.Otel,
) Comment {
	return &serviceImpl{
		repo:        repo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		clock:       clock,
		otel:        otel,
	}
}

// Add posts a comment on an item. Only users who actually rented the item,
// through an approved booking that has already ended, may comment.
func (s *serviceImpl) Add(ctx context.Context, req dto.CreateCommentRequest, itemID, authorID int64) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer scope.TraceIfError(err)

	author, found, err := s.userRepo.Get(ctx, shared.FilterByID(authorID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get author")

		return res, fmt.Errorf("failed to get author: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("user %d not found", authorID) //nolint:wrapcheck
	}

	exist, err := s.itemRepo.Exist(ctx, shared.FilterByID(itemID, itemModel.FieldID, itemModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if item exists")

		return res, fmt.Errorf("failed to check if item exists: %w", err)
	}

	if !exist {
		return res, failure.NotFoundf("item %d not found", itemID) //nolint:wrapcheck
	}

	now := s.clock.Now()

	completedBooking := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    itemID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldBookerID,
				Operator: gDto.FilterOperatorEq,
				Value:    authorID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(bookingModel.StatusApproved),
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldEndAt,
				Operator: gDto.FilterOperatorLessThan,
				Value:    now,
				Table:    bookingModel.TableName,
			},
		},
	}

	rented, err := s.bookingRepo.Exist(ctx, completedBooking)
	if err != nil {
		log.Error().Err(err).Msg("failed to check completed bookings")

		return res, fmt.Errorf("failed to check completed bookings: %w", err)
	}

	if !rented {
		return res, failure.Validationf("user %d has not completed a booking of item %d", authorID, itemID) //nolint:wrapcheck
	}

	comment := req.ToModel(itemID, authorID, now)

	id, err := s.repo.Insert(ctx, comment)
	if err != nil {
		log.Error().Err(err).Msg("failed to create comment")

		return res, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.ID = id
	comment.AuthorName = author.Name

	res.FromModel(comment)

	return res, nil
}
