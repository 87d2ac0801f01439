package presence

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedTimestamp means a stored activity timestamp matched none of the
// known encodings. It never escapes the presence listing; the affected user
// is simply shown as offline.
var ErrMalformedTimestamp = errors.New("presence: malformed activity timestamp")

// instantLayouts are tried in order. New rows are written as RFC 3339; the
// two space-separated layouts cover rows written by the previous
// implementation, with and without sub-second precision.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// ParseInstant декодує мітку часу, пробуючи відомі формати по черзі.
func ParseInstant(raw string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
}
