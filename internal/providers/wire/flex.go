package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// flexString accepts JSON strings, numbers and null. Upstream ids arrive as
// either depending on whether the BFF or a service answered.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*s = ""
		return nil
	}
	if raw[0] == '"' {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(raw)
	return nil
}

// flexInt decodes a count such as a quantity or a stock level. It accepts JSON
// numbers, numeric strings and null. Text that is not a number, a negative
// value or one too large for an int decodes to zero rather than failing the
// collection.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = 0
	text := strings.TrimSpace(string(s))
	if v, err := strconv.Atoi(text); err == nil {
		if v > 0 {
			*n = flexInt(v)
		}
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || f <= 0 || f >= float64(math.MaxInt) {
		return nil
	}
	*n = flexInt(f)
	return nil
}

func first(values ...flexString) string {
	for _, v := range values {
		if s := strings.TrimSpace(string(v)); s != "" {
			return s
		}
	}
	return ""
}
