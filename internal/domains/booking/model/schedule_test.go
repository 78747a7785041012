package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gearshare/internal/domains/booking/model"
)

func TestBuildSchedule(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	approved := func(id, itemID int64, start, end time.Time) model.Booking {
		return model.Booking{
			ID:      id,
			ItemID:  itemID,
			Status:  model.StatusApproved,
			StartAt: start,
			EndAt:   end,
		}
	}

	t.Run("picks nearest future and latest past", func(t *testing.T) {
		bookings := []model.Booking{
			approved(1, 10, now.Add(-72*time.Hour), now.Add(-48*time.Hour)),
			approved(2, 10, now.Add(-24*time.Hour), now.Add(-12*time.Hour)),
			approved(3, 10, now.Add(48*time.Hour), now.Add(72*time.Hour)),
			approved(4, 10, now.Add(12*time.Hour), now.Add(24*time.Hour)),
		}

		schedules := model.BuildSchedule(bookings, now)

		assert.Len(t, schedules, 1)
		assert.Equal(t, int64(2), schedules[10].Last.ID)
		assert.Equal(t, int64(4), schedules[10].Next.ID)
	})

	t.Run("running booking counts as last", func(t *testing.T) {
		bookings := []model.Booking{
			approved(1, 10, now.Add(-time.Hour), now.Add(time.Hour)),
		}

		schedules := model.BuildSchedule(bookings, now)

		assert.Equal(t, int64(1), schedules[10].Last.ID)
		assert.Nil(t, schedules[10].Next)
	})

	t.Run("only approved bookings count", func(t *testing.T) {
		waiting := approved(1, 10, now.Add(time.Hour), now.Add(2*time.Hour))
		waiting.Status = model.StatusWaiting

		rejected := approved(2, 10, now.Add(-2*time.Hour), now.Add(-time.Hour))
		rejected.Status = model.StatusRejected

		schedules := model.BuildSchedule([]model.Booking{waiting, rejected}, now)

		assert.Empty(t, schedules)
	})

	t.Run("groups by item", func(t *testing.T) {
		bookings := []model.Booking{
			approved(1, 10, now.Add(time.Hour), now.Add(2*time.Hour)),
			approved(2, 20, now.Add(-2*time.Hour), now.Add(-time.Hour)),
		}

		schedules := model.BuildSchedule(bookings, now)

		assert.Len(t, schedules, 2)
		assert.Nil(t, schedules[10].Last)
		assert.Equal(t, int64(1), schedules[10].Next.ID)
		assert.Equal(t, int64(2), schedules[20].Last.ID)
		assert.Nil(t, schedules[20].Next)
	})

	t.Run("no bookings", func(t *testing.T) {
		schedules := model.BuildSchedule(nil, now)

		assert.Empty(t, schedules)
	})
}
