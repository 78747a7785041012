package dto

import (
	itemDto "gearshare/internal/domains/item/model/dto"
	"gearshare/internal/domains/request/model"
	"time"
)

type CreateRequestRequest struct {
	Description string `json:"description" validate:"required,max=512"`
}

func (r *CreateRequestRequest) ToModel(requestorID int64, created time.Time) model.Request {
	return model.Request{
		Description: r.Description,
		RequestorID: requestorID,
		CreatedAt:   created,
	}
}

// RequestResponse is the request together with the items offered for it.
// Items is always present, an unanswered request carries an empty list.
type RequestResponse struct {
	ID          int64                  `json:"id"`
	Description string                 `json:"description"`
	Created     time.Time              `json:"created"`
	Items       []itemDto.ItemResponse `json:"items"`
}

func (r *RequestResponse) FromModel(model model.Request, items []itemDto.ItemResponse) {
	r.ID = model.ID
	r.Description = model.Description
	r.Created = model.CreatedAt

	r.Items = items
	if r.Items == nil {
		r.Items = []itemDto.ItemResponse{}
	}
}
