package task

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	stampLayout = "2006-01-02 15:04:05"
)

// Date is a calendar date with no time component. It scans from both
// native DATE columns (postgres returns time.Time) and ISO text
// (sqlite stores dates as TEXT), and always binds as YYYY-MM-DD text.
type Date struct {
	time.Time
}

// ParseDate accepts exactly the YYYY-MM-DD layout.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// NullDate is the scan target for nullable due_date columns.
type NullDate struct {
	Date  Date
	Valid bool
}

func (n *NullDate) Scan(src interface{}) error {
	if src == nil {
		*n = NullDate{}
		return nil
	}
	switch v := src.(type) {
	case time.Time:
		n.Date = Date{Time: v}
		n.Valid = true
		return nil
	case string:
		return n.scanText(v)
	case []byte:
		return n.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NullDate", src)
	}
}

func (n *NullDate) scanText(value string) error {
	// SQLite may hand back a full timestamp for a date column.
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	d, err := ParseDate(value)
	if err != nil {
		return err
	}
	n.Date = d
	n.Valid = true
	return nil
}

func (n NullDate) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Date.Value()
}

// Stamp is a store-assigned timestamp, read-only from the entity's
// perspective. Same cross-driver scanning rules as Date.
type Stamp struct {
	time.Time
}

func (s Stamp) String() string {
	return s.Format(stampLayout)
}

// NullStamp is the scan target for created_at/updated_at columns.
type NullStamp struct {
	Stamp Stamp
	Valid bool
}

func (n *NullStamp) Scan(src interface{}) error {
	if src == nil {
		*n = NullStamp{}
		return nil
	}
	switch v := src.(type) {
	case time.Time:
		n.Stamp = Stamp{Time: v}
		n.Valid = true
		return nil
	case string:
		return n.scanText(v)
	case []byte:
		return n.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NullStamp", src)
	}
}

func (n *NullStamp) scanText(value string) error {
	for _, layout := range []string{stampLayout, time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			n.Stamp = Stamp{Time: t}
			n.Valid = true
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", value)
}

func (n NullStamp) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Stamp.Format(stampLayout), nil
}
