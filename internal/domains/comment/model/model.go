package model

import "time"

const (
	TableName  = "comments"
	EntityName = "comment"

	FieldID        = "id"
	FieldText      = "text"
	FieldItemID    = "item_id"
	FieldAuthorID  = "author_id"
	FieldCreatedAt = "created_at"
)

// Comment carries the author's name alongside the row so listings do not
// need a second query per comment.
type Comment struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	ItemID    int64     `db:"item_id"`
	AuthorID  int64     `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`

	AuthorName string `db:"author_name" table:"users" column:"name"`
}

func (Comment) GetJoinQuery() string {
	return "JOIN users ON users.id = comments.author_id"
}
