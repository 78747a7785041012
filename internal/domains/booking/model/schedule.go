package model

import "time"

// Schedule is the pair of bookings surfaced on owner item views: the most
// recent approved booking that has started, and the nearest approved one
// that has not.
type Schedule struct {
	Last *Booking
	Next *Booking
}

// BuildSchedule derives per-item schedules from a flat batch of bookings.
// Only APPROVED bookings count. A booking belongs to Last when it started
// at or before now (even if it is still running), and to Next when it
// starts strictly after now.
func BuildSchedule(bookings []Booking, now time.Time) map[int64]Schedule {
	schedules := make(map[int64]Schedule)

	for i := range bookings {
		booking := bookings[i]
		if booking.Status != StatusApproved {
			continue
		}

		schedule := schedules[booking.ItemID]

		if booking.StartAt.After(now) {
			if schedule.Next == nil || booking.StartAt.Before(schedule.Next.StartAt) {
				schedule.Next = &booking
			}
		} else {
			if schedule.Last == nil || booking.EndAt.After(schedule.Last.EndAt) {
				schedule.Last = &booking
			}
		}

		schedules[booking.ItemID] = schedule
	}

	return schedules
}
