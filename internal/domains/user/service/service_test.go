package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gearshare/config"
	"gearshare/infras/otel/mocks"
	bookingMocks "gearshare/internal/domains/booking/mocks"
	itemMocks "gearshare/internal/domains/item/mocks"
	requestMocks "gearshare/internal/domains/request/mocks"
	userMocks "gearshare/internal/domains/user/mocks"
	"gearshare/internal/domains/user/model"
	"gearshare/internal/domains/user/model/dto"
	"gearshare/internal/domains/user/service"
	cacheMocks "gearshare/shared/cache/mocks"
	"gearshare/shared/failure"
)

type userFixture struct {
	repo        *userMocks.MockUser
	bookingRepo *bookingMocks.MockBooking
	itemRepo    *itemMocks.MockItem
	requestRepo *requestMocks.MockRequest
	cache       *cacheMocks.MockRedisCache
	svc         service.User
}

func newUserFixture(t *testing.T) userFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := userFixture{
		repo:        userMocks.NewMockUser(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		itemRepo:    itemMocks.NewMockItem(ctrl),
		requestRepo: requestMocks.NewMockRequest(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.bookingRepo, f.itemRepo, f.requestRepo, cfg, f.cache, mocks.NewOtel())

	// Cache writes and invalidations run on detached goroutines, so the
	// expectations stay loose.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestUserService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		f := newUserFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), model.User{Name: "Alice", Email: "alice@example.com"}).
			Return(int64(1), nil)

		res, err := f.svc.Create(context.Background(), dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})

		assert.NoError(t, err)
		assert.Equal(t, dto.UserResponse{ID: 1, Name: "Alice", Email: "alice@example.com"}, res)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newUserFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(int64(0), failure.Conflict("email already in use"))

		_, err := f.svc.Create(context.Background(), dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache miss falls back to repository", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), "user:get:1", gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: 1, Name: "Alice", Email: "alice@example.com"}, true, nil)

		res, err := f.svc.Get(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "Alice", res.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, false, nil)

		_, err := f.svc.Get(context.Background(), 99)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	t.Run("cache miss lists from repository", func(t *testing.T) {
		f := newUserFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), "user:gets:all", gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.User{
				{ID: 1, Name: "Alice", Email: "alice@example.com"},
				{ID: 2, Name: "Bob", Email: "bob@example.com"},
			}, nil)

		res, err := f.svc.GetAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, int64(2), res[1].ID)
	})
}

func TestUserService_Update(t *testing.T) {
	existing := model.User{ID: 1, Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func(f userFixture)
		wantErr   bool
		wantCode  int
		wantRes   dto.UserResponse
	}{
		{
			name: "updates both fields",
			req:  dto.UpdateUserRequest{Name: "Alicia", Email: "alicia@example.com"},
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), map[string]any{"name": "Alicia", "email": "alicia@example.com"}, gomock.Any()).
					Return(nil)
			},
			wantRes: dto.UserResponse{ID: 1, Name: "Alicia", Email: "alicia@example.com"},
		},
		{
			name: "blank fields keep current values",
			req:  dto.UpdateUserRequest{Name: "Alicia"},
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), map[string]any{"name": "Alicia"}, gomock.Any()).
					Return(nil)
			},
			wantRes: dto.UserResponse{ID: 1, Name: "Alicia", Email: "alice@example.com"},
		},
		{
			name: "empty patch touches nothing",
			req:  dto.UpdateUserRequest{},
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, true, nil)
			},
			wantRes: dto.UserResponse{ID: 1, Name: "Alice", Email: "alice@example.com"},
		},
		{
			name: "unknown user",
			req:  dto.UpdateUserRequest{Name: "Alicia"},
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "duplicate email",
			req:  dto.UpdateUserRequest{Email: "bob@example.com"},
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.Conflict("email already in use"))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(context.Background(), tt.req, 1)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRes, res)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f userFixture)
		wantErr   bool
		wantCode  int
		wantMsg   string
	}{
		{
			name: "successful deletion",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.itemRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.bookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.requestRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown user",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "user still owns items",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.itemRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "cannot delete user with existing items",
		},
		{
			name: "user still has bookings",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.itemRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.bookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "cannot delete user with existing bookings",
		},
		{
			name: "user still has requests",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.itemRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.bookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.requestRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "cannot delete user with existing requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), 1)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}
