package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"gearshare/infras/otel"
	"gearshare/infras/postgres"
	"gearshare/internal/domains/comment/model"
	gDto "gearshare/shared/dto"
	gRepo "gearshare/shared/repository"
)

type Comment interface {
	Insert(ctx context.Context, model model.Comment) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Comment, bool, error)
	GetAll(ctx context.Context, page gDto.Pageable, filter gDto.FilterGroup, columns ...string) ([]model.Comment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Comment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Comment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Comment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
