package dto

import (
	"gearshare/internal/domains/booking/model"
	"time"
)

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start"  validate:"required"`
	End    time.Time `json:"end"    validate:"required"`
}

func (r *CreateBookingRequest) ToModel(bookerID int64) model.Booking {
	return model.Booking{
		StartAt:  r.Start,
		EndAt:    r.End,
		Status:   model.StatusWaiting,
		ItemID:   r.ItemID,
		BookerID: bookerID,
	}
}

type BookingItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingUserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64          `json:"id"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Status string         `json:"status"`
	Booker BookingUserRef `json:"booker"`
	Item   BookingItemRef `json:"item"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Start = model.StartAt
	r.End = model.EndAt
	r.Status = string(model.Status)
	r.Booker = BookingUserRef{ID: model.BookerID, Name: model.BookerName}
	r.Item = BookingItemRef{ID: model.ItemID, Name: model.ItemName}
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
