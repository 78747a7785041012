package dto

import (
	"gearshare/internal/domains/user/model"
)

type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=512"`
}

func (r *CreateUserRequest) ToModel() model.User {
	return model.User{
		Name:  r.Name,
		Email: r.Email,
	}
}

// UpdateUserRequest carries partial updates. Zero fields are left untouched,
// so the db tags here drive shared.TransformFields.
type UpdateUserRequest struct {
	Name  string `db:"name"  json:"name"  validate:"omitempty,max=255"`
	Email string `db:"email" json:"email" validate:"omitempty,email,max=512"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
}

func FromModels(models []model.User) []UserResponse {
	res := make([]UserResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
