package model

import "time"

const (
	TableName  = "requests"
	EntityName = "request"

	FieldID          = "id"
	FieldDescription = "description"
	FieldRequestorID = "requestor_id"
	FieldCreatedAt   = "created_at"

	SortFieldCreatedAt = TableName + "." + FieldCreatedAt
)

type Request struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	RequestorID int64     `db:"requestor_id"`
	CreatedAt   time.Time `db:"created_at"`
}
