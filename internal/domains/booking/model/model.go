package model

import "time"

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID       = "id"
	FieldStartAt  = "start_at"
	FieldEndAt    = "end_at"
	FieldStatus   = "status"
	FieldItemID   = "item_id"
	FieldBookerID = "booker_id"

	SortFieldStartAt = TableName + "." + FieldStartAt
)

// Booking is the bookings row joined with its item and booker, so a single
// select carries everything the response shapes need.
type Booking struct {
	ID       int64     `db:"id"`
	StartAt  time.Time `db:"start_at"`
	EndAt    time.Time `db:"end_at"`
	Status   Status    `db:"status"`
	ItemID   int64     `db:"item_id"`
	BookerID int64     `db:"booker_id"`

	ItemName      string `db:"item_name"      table:"items" column:"name"`
	ItemAvailable bool   `db:"item_available" table:"items" column:"available"`
	ItemOwnerID   int64  `db:"item_owner_id"  table:"items" column:"owner_id"`
	BookerName    string `db:"booker_name"    table:"users" column:"name"`
	BookerEmail   string `db:"booker_email"   table:"users" column:"email"`
}

func (Booking) GetJoinQuery() string {
	return "JOIN items ON items.id = bookings.item_id JOIN users ON users.id = bookings.booker_id"
}
