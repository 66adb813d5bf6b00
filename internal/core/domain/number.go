package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field the backend passes through from upstream, where
// it may arrive as a JSON number or as a string. Numeric strings are parsed;
// any other string is kept verbatim in Text.
type Number struct {
	Value float64
	Valid bool
	Text  string
}

// NumberOf returns a valid Number holding f.
func NumberOf(f float64) Number {
	return Number{Value: f, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.Value, n.Valid = f, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// objects, lists and booleans carry no usable value
		return nil
	}
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		n.Value, n.Valid = f, true
		return nil
	}
	n.Text = s
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	switch {
	case n.Valid:
		return json.Marshal(n.Value)
	case n.Text != "":
		return json.Marshal(n.Text)
	default:
		return []byte("null"), nil
	}
}

// IsZero reports whether the field was absent or null.
func (n Number) IsZero() bool {
	return !n.Valid && n.Text == ""
}

// Float returns the numeric value, if there is one.
func (n Number) Float() (float64, bool) {
	return n.Value, n.Valid
}

// Int returns the value when it is a whole number.
func (n Number) Int() (int64, bool) {
	if !n.Valid || n.Value != math.Trunc(n.Value) {
		return 0, false
	}
	return int64(n.Value), true
}

// String renders the value in its shortest form, or the raw text when the
// backend sent something that is not a number. It is "" for a missing value.
func (n Number) String() string {
	if n.Valid {
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}
	return n.Text
}
