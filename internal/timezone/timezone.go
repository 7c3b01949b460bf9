package timezone

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// FromOffset returns a fixed zone for an offset in seconds east of UTC,
// named like "UTC+05:30". OpenWeather reports city offsets this way.
func FromOffset(seconds int) *time.Location {
	if seconds == 0 {
		return time.UTC
	}
	return time.FixedZone(Label(seconds), seconds)
}

func Label(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// LocalTime converts a unix timestamp to wall time at the given offset.
func LocalTime(unix int64, offsetSeconds int) time.Time {
	return time.Unix(unix, 0).In(FromOffset(offsetSeconds))
}

func LocalDate(unix int64, offsetSeconds int) string {
	return LocalTime(unix, offsetSeconds).Format(DateLayout)
}
