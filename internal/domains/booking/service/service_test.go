package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gearshare/config"
	"gearshare/infras/otel/mocks"
	bookingMocks "gearshare/internal/domains/booking/mocks"
	"gearshare/internal/domains/booking/model"
	"gearshare/internal/domains/booking/model/dto"
	"gearshare/internal/domains/booking/service"
	itemMocks "gearshare/internal/domains/item/mocks"
	itemModel "gearshare/internal/domains/item/model"
	userMocks "gearshare/internal/domains/user/mocks"
	userModel "gearshare/internal/domains/user/model"
	eventMocks "gearshare/internal/events/mocks"
	"gearshare/shared/clock"
	gDto "gearshare/shared/dto"
	"gearshare/shared/failure"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type bookingFixture struct {
	repo      *bookingMocks.MockBooking
	userRepo  *userMocks.MockUser
	itemRepo  *itemMocks.MockItem
	publisher *eventMocks.MockPublisher
	svc       service.Booking
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := bookingFixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		userRepo:  userMocks.NewMockUser(ctrl),
		itemRepo:  itemMocks.NewMockItem(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
	}

	f.svc = service.New(f.repo, f.userRepo, f.itemRepo, &config.Config{}, clock.NewFixed(testNow), f.publisher, mocks.NewOtel())

	return f
}

func TestBookingService_Create(t *testing.T) {
	booker := userModel.User{ID: 2, Name: "Booker", Email: "booker@example.com"}
	item := itemModel.Item{ID: 5, Name: "Drill", Available: true, OwnerID: 1}

	validReq := dto.CreateBookingRequest{
		ItemID: 5,
		Start:  testNow.Add(time.Hour),
		End:    testNow.Add(2 * time.Hour),
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		bookerID  int64
		setupMock func(f bookingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:     "successful creation",
			req:      validReq,
			bookerID: 2,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(7), nil)
				f.publisher.EXPECT().
					PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name:     "unknown booker",
			req:      validReq,
			bookerID: 99,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown item",
			req:      validReq,
			bookerID: 2,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(itemModel.Item{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "item not available",
			req:      validReq,
			bookerID: 2,
			setupMock: func(f bookingFixture) {
				unavailable := item
				unavailable.Available = false

				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unavailable, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "owner booking own item answers 404",
			req:      validReq,
			bookerID: 1,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: 1, Name: "Owner"}, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "start in the past",
			req: dto.CreateBookingRequest{
				ItemID: 5,
				Start:  testNow.Add(-time.Hour),
				End:    testNow.Add(time.Hour),
			},
			bookerID: 2,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end before start",
			req: dto.CreateBookingRequest{
				ItemID: 5,
				Start:  testNow.Add(2 * time.Hour),
				End:    testNow.Add(time.Hour),
			},
			bookerID: 2,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "zero length booking",
			req: dto.CreateBookingRequest{
				ItemID: 5,
				Start:  testNow.Add(time.Hour),
				End:    testNow.Add(time.Hour),
			},
			bookerID: 2,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "repository error",
			req:      validReq,
			bookerID: 2,
			setupMock: func(f bookingFixture) {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booker, true, nil)
				f.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(item, true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req, tt.bookerID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(7), res.ID)
			assert.Equal(t, string(model.StatusWaiting), res.Status)
			assert.Equal(t, dto.BookingItemRef{ID: 5, Name: "Drill"}, res.Item)
			assert.Equal(t, dto.BookingUserRef{ID: 2, Name: "Booker"}, res.Booker)
		})
	}
}

func TestBookingService_Create_AllowsOverlap(t *testing.T) {
	// Overlapping bookings are legal: the service never inspects existing
	// bookings of the item, the owner arbitrates on approval.
	f := newBookingFixture(t)

	f.userRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(userModel.User{ID: 2, Name: "Booker"}, true, nil)
	f.itemRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(itemModel.Item{ID: 5, Name: "Drill", Available: true, OwnerID: 1}, true, nil)
	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(int64(8), nil)
	f.publisher.EXPECT().
		PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())

	res, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		ItemID: 5,
		Start:  testNow.Add(time.Hour),
		End:    testNow.Add(2 * time.Hour),
	}, 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(8), res.ID)
}

func TestBookingService_Approve(t *testing.T) {
	waiting := model.Booking{
		ID:          7,
		StartAt:     testNow.Add(time.Hour),
		EndAt:       testNow.Add(2 * time.Hour),
		Status:      model.StatusWaiting,
		ItemID:      5,
		BookerID:    2,
		ItemOwnerID: 1,
		ItemName:    "Drill",
		BookerName:  "Booker",
	}

	tests := []struct {
		name       string
		callerID   int64
		approved   bool
		setupMock  func(f bookingFixture)
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name:     "owner approves",
			callerID: 1,
			approved: true,
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(waiting, true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: string(model.StatusApproved)}, gomock.Any()).
					Return(nil)
				f.publisher.EXPECT().
					PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())
			},
			wantStatus: string(model.StatusApproved),
		},
		{
			name:     "owner rejects",
			callerID: 1,
			approved: false,
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(waiting, true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: string(model.StatusRejected)}, gomock.Any()).
					Return(nil)
				f.publisher.EXPECT().
					PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())
			},
			wantStatus: string(model.StatusRejected),
		},
		{
			name:     "unknown booking",
			callerID: 1,
			approved: true,
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "booker cannot approve and gets 404",
			callerID: 2,
			approved: true,
			setupMock: func(f bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(waiting, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "already approved",
			callerID: 1,
			approved: true,
			setupMock: func(f bookingFixture) {
				settled := waiting
				settled.Status = model.StatusApproved

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(settled, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "already rejected",
			callerID: 1,
			approved: false,
			setupMock: func(f bookingFixture) {
				settled := waiting
				settled.Status = model.StatusRejected

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(settled, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Approve(context.Background(), 7, tt.callerID, tt.approved)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	booking := model.Booking{
		ID:          7,
		Status:      model.StatusWaiting,
		ItemID:      5,
		BookerID:    2,
		ItemOwnerID: 1,
	}

	tests := []struct {
		name     string
		callerID int64
		found    bool
		wantErr  bool
	}{
		{name: "booker sees the booking", callerID: 2, found: true},
		{name: "owner sees the booking", callerID: 1, found: true},
		{name: "stranger gets 404", callerID: 3, found: true, wantErr: true},
		{name: "unknown booking", callerID: 2, found: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			returned := model.Booking{}
			if tt.found {
				returned = booking
			}

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(returned, tt.found, nil)

			res, err := f.svc.Get(context.Background(), 7, tt.callerID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(7), res.ID)
		})
	}
}

func TestBookingService_List_StateFilters(t *testing.T) {
	// Each listing state adds its own predicates on top of the perspective
	// filter; ALL adds none.
	tests := []struct {
		name        string
		state       model.StateFilter
		wantFilters int
	}{
		{name: "all", state: model.StateAll, wantFilters: 1},
		{name: "current", state: model.StateCurrent, wantFilters: 3},
		{name: "past", state: model.StatePast, wantFilters: 2},
		{name: "future", state: model.StateFuture, wantFilters: 2},
		{name: "waiting", state: model.StateWaiting, wantFilters: 2},
		{name: "rejected", state: model.StateRejected, wantFilters: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			f.userRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil)
			f.repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, page gDto.Pageable, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
					assert.Equal(t, model.SortFieldStartAt, page.SortBy)
					assert.Equal(t, gDto.SortDirDesc, page.SortDir)
					assert.Len(t, filter.Filters, tt.wantFilters)

					return []model.Booking{}, nil
				})

			_, err := f.svc.ListByBooker(context.Background(), 2, tt.state, gDto.PageRequest{})

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_List(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	t.Run("unknown user", func(t *testing.T) {
		f := newBookingFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.ListByBooker(context.Background(), 99, model.StateAll, gDto.PageRequest{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("pagination lands on the page holding from", func(t *testing.T) {
		f := newBookingFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, page gDto.Pageable, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, 3, page.Limit)
				assert.Equal(t, 0, page.Offset)

				return []model.Booking{}, nil
			})

		_, err := f.svc.ListByBooker(context.Background(), 2, model.StateAll, gDto.PageRequest{From: intPtr(2), Size: intPtr(3)})

		assert.NoError(t, err)
	})

	t.Run("owner listing maps rows", func(t *testing.T) {
		f := newBookingFixture(t)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{
				{ID: 7, Status: model.StatusWaiting, ItemID: 5, BookerID: 2, ItemName: "Drill", BookerName: "Booker"},
			}, nil)

		res, err := f.svc.ListByOwner(context.Background(), 1, model.StateAll, gDto.PageRequest{})

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, int64(7), res[0].ID)
		assert.Equal(t, "Drill", res[0].Item.Name)
	})
}
