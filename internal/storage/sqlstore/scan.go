package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mcoot/gamestore/internal/model"
)

// timeLayouts are the textual forms SQLite drivers use for DATE and
// TIMESTAMP columns.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	model.DateLayout,
}

// nullTime scans DATE and TIMESTAMP columns whether the driver hands back a
// time.Time, a string or raw bytes.
type nullTime struct {
	Time  time.Time
	Valid bool
}

func (n *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v, true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	case int64:
		n.Time, n.Valid = time.Unix(v, 0).UTC(), true
		return nil
	default:
		return fmt.Errorf("unsupported time value %T", src)
	}
}

func (n *nullTime) parse(value string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			n.Time, n.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("unrecognised time value %q", value)
}

func (n nullTime) ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// dateArg renders an optional calendar date the way both dialects accept it.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(model.DateLayout)
}

func nullableID[T ~int64](id *T) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}

func idPtr[T ~int64](v sql.NullInt64) *T {
	if !v.Valid {
		return nil
	}
	id := T(v.Int64)
	return &id
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
