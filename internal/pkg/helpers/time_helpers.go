package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// AddDays returns t shifted by the given number of days. Recurring study
// sessions use fixed day intervals rather than calendar-aware months.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
