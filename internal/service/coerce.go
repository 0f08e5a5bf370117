package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotNumeric = errors.New("value is not numeric")

// Loose holds a raw JSON value from a request body. Numeric fields accept both
// JSON numbers and strings holding a number.
type Loose []byte

func (l *Loose) UnmarshalJSON(b []byte) error {
	*l = append((*l)[0:0], b...)
	return nil
}

// Present reports whether the field was supplied with a non-null value.
func (l Loose) Present() bool {
	v := bytes.TrimSpace(l)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}

// Supplied reports whether the field appeared in the input at all, null included.
func (l Loose) Supplied() bool {
	return len(bytes.TrimSpace(l)) > 0
}

// Blank reports whether the field is null or a string holding only whitespace.
func (l Loose) Blank() bool {
	if !l.Supplied() {
		return false
	}
	if !l.Present() {
		return true
	}
	s, ok := l.Text()
	return ok && strings.TrimSpace(s) == ""
}

// Truthy follows the usual loose truthiness rules: absent, null, false, 0 and ""
// are falsy, everything else is truthy.
func (l Loose) Truthy() bool {
	if !l.Present() {
		return false
	}
	v := string(bytes.TrimSpace(l))
	switch v {
	case "false", `""`:
		return false
	}
	if d, err := decimal.NewFromString(v); err == nil && d.IsZero() {
		return false
	}
	return true
}

// Text returns the value when it is a JSON string.
func (l Loose) Text() (string, bool) {
	if !l.Present() {
		return "", false
	}
	var s string
	if err := json.Unmarshal(l, &s); err != nil {
		return "", false
	}
	return s, true
}

// Decimal converts a JSON number or numeric string.
func (l Loose) Decimal() (decimal.Decimal, error) {
	if !l.Present() {
		return decimal.Zero, errNotNumeric
	}
	v := strings.TrimSpace(string(l))
	if s, ok := l.Text(); ok {
		v = strings.TrimSpace(s)
	} else if strings.HasPrefix(v, `"`) {
		return decimal.Zero, errNotNumeric
	}
	if v == "" {
		return decimal.Zero, errNotNumeric
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, errNotNumeric
	}
	return d, nil
}

// Int converts the value to a whole number.
func (l Loose) Int() (int, error) {
	d, err := l.Decimal()
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || !d.Equal(decimal.NewFromInt(d.IntPart())) {
		return 0, errNotNumeric
	}
	return int(d.IntPart()), nil
}

// Float converts the value to a float64.
func (l Loose) Float() (float64, error) {
	d, err := l.Decimal()
	if err != nil {
		return 0, err
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNotNumeric
	}
	return f, nil
}
