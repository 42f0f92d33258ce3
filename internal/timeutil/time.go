// Package timeutil provides a JSON time type accepting both RFC 3339
// strings and Unix epoch seconds.
package timeutil

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type Time time.Time

// UnmarshalJSON accepts an RFC 3339 string, an integer epoch, or the
// null/{} placeholders some producers emit for an unset time.
func (t *Time) UnmarshalJSON(b []byte) error {
	switch s := string(b); {
	case s == "null" || s == "{}":
		return nil
	case s[0] == '"':
		parsed, err := time.Parse(`"`+time.RFC3339+`"`, s)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	default:
		epoch, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*t = Time(time.Unix(epoch, 0))
	}
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

func (t Time) Time() time.Time {
	return time.Time(t)
}
