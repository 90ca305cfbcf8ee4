package metadata

import "time"

// TimeSentFormat is the canonical wire format for the time_sent header.
const TimeSentFormat = time.RFC3339Nano

// legacy formats accepted when parsing time_sent values stamped by older
// senders.
var timeSentFallbacks = []string{
	time.RFC3339,
	"2006-01-02 15:04:05.000000 Z07:00",
	"2006-01-02 15:04:05",
}

// FormatTimeSent renders t as a time_sent header value. Zero times render as
// the empty string so callers can skip stamping the header.
func FormatTimeSent(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeSentFormat)
}

// ParseTimeSent parses a time_sent header value. The canonical format is
// tried first, then the legacy fallbacks.
func ParseTimeSent(s string) (time.Time, error) {
	if t, err := time.Parse(TimeSentFormat, s); err == nil {
		return t, nil
	}

	for _, format := range timeSentFallbacks {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Layout:  TimeSentFormat,
		Value:   s,
		Message: "cannot parse as time_sent timestamp",
	}
}
