// Package ledger defines the core transaction types shared across the
// reconciliation pipeline.
//
// A Transaction is an immutable snapshot of a record as fetched from the
// Lunch Money API. Updates never mutate a Transaction in place; they are
// expressed as UpdateFields carrying only the new values for the fields
// being changed.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by the Lunch Money API.
const DateLayout = "2006-01-02"

// Date is a calendar date (no time-of-day component) that marshals to and
// from the API's YYYY-MM-DD representation.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// Today returns the current date, truncated to midnight UTC.
func Today() Date {
	now := time.Now().UTC()
	return Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Equal reports whether two dates fall on the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

// AddDays returns the date shifted by n days (negative n moves backwards).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Transaction is a single ledger transaction as returned by the API.
//
// Raw holds the verbatim JSON object the record was decoded from, including
// passthrough fields this module never interprets. Snapshots persist Raw so
// that rollback works from the exact original representation.
type Transaction struct {
	ID     int64  `json:"id"`
	Amount string `json:"amount"`
	Payee  string `json:"payee"`
	Date   Date   `json:"date"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and retains the original bytes.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Transaction(a)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the verbatim original bytes when present, falling back
// to the typed fields for records constructed in code.
func (t Transaction) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	type alias Transaction
	return json.Marshal(alias(t))
}

// UpdateFields carries the new values for the mutable fields of a
// transaction update. Only payee and date are ever rewritten.
type UpdateFields struct {
	Payee string `json:"payee"`
	Date  Date   `json:"date"`
}

// Snapshot maps transaction ids to their full original records, captured
// immediately before any write so the change can be reverted.
type Snapshot map[int64]Transaction
