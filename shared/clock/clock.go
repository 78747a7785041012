package clock

import (
	"gearshare/config"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock supplies "now" to every service that compares booking windows
// against the current instant. Injecting it keeps the time rules testable.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type appClock struct {
	location *time.Location
}

// New builds a Clock in the configured IANA timezone, falling back to UTC.
func New(cfg *config.Config) Clock {
	tz := cfg.App.Timezone
	if tz == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return &appClock{location: time.UTC}
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", tz).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Europe/Moscow', 'UTC', 'America/New_York'")

		return &appClock{location: time.UTC}
	}

	log.Info().
		Str("timezone", tz).
		Str("location", loc.String()).
		Msg("Application timezone initialized")

	return &appClock{location: loc}
}

func (c *appClock) Now() time.Time {
	return time.Now().In(c.location)
}

func (c *appClock) Location() *time.Location {
	return c.location
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func NewFixed(instant time.Time) *Fixed {
	return &Fixed{Instant: instant}
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

func (f *Fixed) Location() *time.Location {
	return f.Instant.Location()
}
