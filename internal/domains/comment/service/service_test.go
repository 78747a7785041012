package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gearshare/config"
	"gearshare/infras/otel/mocks"
	bookingMocks "gearshare/internal/domains/booking/mocks"
	commentMocks "gearshare/internal/domains/comment/mocks"
	"gearshare/internal/domains/comment/model/dto"
	"gearshare/internal/domains/comment/service"
	itemMocks "gearshare/internal/domains/item/mocks"
	userMocks "gearshare/internal/domains/user/mocks"
	userModel "gearshare/internal/domains/user/model"
	"gearshare/shared/clock"
	"gearshare/shared/failure"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type commentFixture struct {
	repo        *commentMocks.MockComment
	userRepo    *userMocks.MockUser
	itemRepo    *itemMocks.MockItem
	bookingRepo *bookingMocks.MockBooking
	svc         service.Comment
}

func newCommentFixture(t *testing.T) commentFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := commentFixture{
		repo:        commentMocks.NewMockComment(ctrl),
		userRepo:    userMocks.NewMockUser(ctrl),
		itemRepo:    itemMocks.NewMockItem(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
	}

	f.svc = service.New(f.repo, f.userRepo, f.itemRepo, f.bookingRepo, &config.Config{}, clock.NewFixed(testNow), mocks.NewOtel())

	return f
}

func TestCommentService_Add(t *testing.T) {
	author := userModel.User{ID: 2, Name: "Booker", Email: "booker@example.com"}
	req := dto.CreateCommentRequest{Text: "Works great"}

	t.Run("renter comments after a completed booking", func(t *testing.T) {
		f := newCommentFixture(t)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(author, true, nil)
		f.itemRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.bookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(int64(1), nil)

		res, err := f.svc.Add(context.Background(), req, 5, 2)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
		assert.Equal(t, "Works great", res.Text)
		assert.Equal(t, "Booker", res.AuthorName)
		assert.Equal(t, testNow, res.Created)
	})

	t.Run("unknown author", func(t *testing.T) {
		f := newCommentFixture(t)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, false, nil)

		_, err := f.svc.Add(context.Background(), req, 5, 99)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newCommentFixture(t)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(author, true, nil)
		f.itemRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Add(context.Background(), req, 404, 2)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("no completed booking", func(t *testing.T) {
		f := newCommentFixture(t)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(author, true, nil)
		f.itemRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.bookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Add(context.Background(), req, 5, 2)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "user 2 has not completed a booking of item 5")
	})
}
