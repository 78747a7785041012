package dto

import (
	"database/sql"
	commentDto "gearshare/internal/domains/comment/model/dto"
	"gearshare/internal/domains/item/model"
)

type CreateItemRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=512"`
	Available   *bool  `json:"available"   validate:"required"`
	RequestID   *int64 `json:"requestId"   validate:"omitempty,gt=0"`
}

func (r *CreateItemRequest) ToModel(ownerID int64) model.Item {
	item := model.Item{
		Name:        r.Name,
		Description: r.Description,
		Available:   *r.Available,
		OwnerID:     ownerID,
	}

	if r.RequestID != nil {
		item.RequestID = sql.NullInt64{Int64: *r.RequestID, Valid: true}
	}

	return item
}

// UpdateItemRequest carries partial updates, only the fields with db tags
// ever reach the database. The request binding is immutable, it is kept
// here so the service can reject attempts to change it.
type UpdateItemRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=255"`
	Description string `db:"description" json:"description" validate:"omitempty,max=512"`
	Available   *bool  `db:"available"   json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Available = model.Available

	if model.RequestID.Valid {
		requestID := model.RequestID.Int64
		r.RequestID = &requestID
	}
}

func FromModels(models []model.Item) []ItemResponse {
	res := make([]ItemResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// BookingRef is the short booking projection shown on owner item views.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemDetailResponse is the item as seen on GET. Booking slots are only
// filled in for the owner, everyone else gets nulls.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingRef                  `json:"lastBooking"`
	NextBooking *BookingRef                  `json:"nextBooking"`
	Comments    []commentDto.CommentResponse `json:"comments"`
}
