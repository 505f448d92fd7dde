package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number accepts a JSON number or a numeric string. Anything else, including
// null, leaves it unset.
type Number struct {
	value float64
	set   bool
}

// NewNumber returns a set Number.
func NewNumber(v float64) Number {
	return Number{value: v, set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		text = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.value, n.set = v, true
	return nil
}

// Float returns the value and whether one was supplied.
func (n Number) Float() (float64, bool) {
	return n.value, n.set
}

// Int returns the value when it is a whole number within float64's exact
// integer range.
func (n Number) Int() (int64, bool) {
	if !n.set || n.value != math.Trunc(n.value) || math.Abs(n.value) > 1<<53 {
		return 0, false
	}
	return int64(n.value), true
}
