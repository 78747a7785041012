package service_test

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gearshare/config"
	"gearshare/infras/otel/mocks"
	itemMocks "gearshare/internal/domains/item/mocks"
	itemModel "gearshare/internal/domains/item/model"
	requestMocks "gearshare/internal/domains/request/mocks"
	"gearshare/internal/domains/request/model"
	"gearshare/internal/domains/request/model/dto"
	"gearshare/internal/domains/request/service"
	userMocks "gearshare/internal/domains/user/mocks"
	"gearshare/shared/clock"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type requestFixture struct {
	repo     *requestMocks.MockRequest
	userRepo *userMocks.MockUser
	itemRepo *itemMocks.MockItem
	svc      service.Request
}

func newRequestFixture(t *testing.T) requestFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := requestFixture{
		repo:     requestMocks.NewMockRequest(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		itemRepo: itemMocks.NewMockItem(ctrl),
	}

	f.svc = service.New(f.repo, f.userRepo, f.itemRepo, &config.Config{}, clock.NewFixed(testNow), mocks.NewOtel())

	return f
}

func TestRequestService_Create(t *testing.T) {
	t.Run("successful creation stamps the clock", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), model.Request{Description: "Need a drill", RequestorID: 2, CreatedAt: testNow}).
			Return(int64(3), nil)

		res, err := f.svc.Create(context.Background(), dto.CreateRequestRequest{Description: "Need a drill"}, 2)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), res.ID)
		assert.Equal(t, testNow, res.Created)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("unknown requestor", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Create(context.Background(), dto.CreateRequestRequest{Description: "Need a drill"}, 99)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRequestService_Get(t *testing.T) {
	request := model.Request{ID: 3, Description: "Need a drill", RequestorID: 2, CreatedAt: testNow}

	t.Run("returns request with offered items", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(request, true, nil)
		f.itemRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]itemModel.Item{
				{ID: 5, Name: "Drill", Available: true, OwnerID: 1, RequestID: sql.NullInt64{Int64: 3, Valid: true}},
			}, nil)

		res, err := f.svc.Get(context.Background(), 3, 7)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), res.ID)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, int64(5), res.Items[0].ID)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Request{}, false, nil)

		_, err := f.svc.Get(context.Background(), 404, 7)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown caller", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Get(context.Background(), 3, 99)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRequestService_ListOwn(t *testing.T) {
	f := newRequestFixture(t)

	f.userRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gDto.Pageable{SortBy: model.SortFieldCreatedAt, SortDir: gDto.SortDirDesc}, gomock.Any()).
		Return([]model.Request{
			{ID: 3, Description: "Need a drill", RequestorID: 2, CreatedAt: testNow},
			{ID: 4, Description: "Need a ladder", RequestorID: 2, CreatedAt: testNow.Add(-time.Hour)},
		}, nil)
	f.itemRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]itemModel.Item{}, nil)

	res, err := f.svc.ListOwn(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, res, 2)
	assert.NotNil(t, res[0].Items)
	assert.Empty(t, res[0].Items)
}

func TestRequestService_ListOthers(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	t.Run("without pagination the listing is empty", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		res, err := f.svc.ListOthers(context.Background(), 2, gDto.PageRequest{})

		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("half a page request is still unpaginated", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		res, err := f.svc.ListOthers(context.Background(), 2, gDto.PageRequest{From: intPtr(0)})

		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("paginated listing excludes own requests", func(t *testing.T) {
		f := newRequestFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, page gDto.Pageable, filter gDto.FilterGroup, _ ...string) ([]model.Request, error) {
				assert.Equal(t, 10, page.Limit)
				assert.Equal(t, 0, page.Offset)

				predicate, ok := filter.Filters[0].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, gDto.FilterOperatorNotEq, predicate.Operator)

				return []model.Request{{ID: 4, Description: "Need a ladder", RequestorID: 3, CreatedAt: testNow}}, nil
			})
		f.itemRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]itemModel.Item{}, nil)

		res, err := f.svc.ListOthers(context.Background(), 2, gDto.PageRequest{From: intPtr(0), Size: intPtr(10)})

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, int64(4), res[0].ID)
	})
}
