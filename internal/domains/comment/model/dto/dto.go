package dto

import (
	"gearshare/internal/domains/comment/model"
	"time"
)

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=1024"`
}

func (r *CreateCommentRequest) ToModel(itemID, authorID int64, created time.Time) model.Comment {
	return model.Comment{
		Text:      r.Text,
		ItemID:    itemID,
		AuthorID:  authorID,
		CreatedAt: created,
	}
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func (r *CommentResponse) FromModel(model model.Comment) {
	r.ID = model.ID
	r.Text = model.Text
	r.AuthorName = model.AuthorName
	r.Created = model.CreatedAt
}

func FromModels(models []model.Comment) []CommentResponse {
	res := make([]CommentResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
