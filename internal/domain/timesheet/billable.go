package timesheet

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BillableFlag is the two-state billable marker carried by timesheets and
// their time logs. The wire and storage form is 0/1.
type BillableFlag uint8

const (
	NotBillable BillableFlag = 0
	Billable    BillableFlag = 1
)

// ParseBillable converts any external representation into a BillableFlag.
// nil, zero numbers, false, and the strings "", "0", "false", "no", "off"
// map to NotBillable; non-zero numbers, true, "1", "true", "yes", "on" and
// "y" map to Billable. Any other string is NotBillable.
func ParseBillable(v any) BillableFlag {
	if parseFlag(v) {
		return Billable
	}
	return NotBillable
}

// parseFlag reads a loosely typed check field value. It accepts the same
// inputs as ParseBillable and is shared by every 0/1 field on the document.
func parseFlag(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case BillableFlag:
		return val != NotBillable
	case *BillableFlag:
		return val != nil && *val != NotBillable
	case bool:
		return val
	case *bool:
		return val != nil && *val
	case int:
		return val != 0
	case int8:
		return val != 0
	case int16:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case *int:
		return val != nil && *val != 0
	case uint:
		return val != 0
	case uint8:
		return val != 0
	case uint16:
		return val != 0
	case uint32:
		return val != 0
	case uint64:
		return val != 0
	case float32:
		return floatFlag(float64(val))
	case float64:
		return floatFlag(val)
	case json.Number:
		return stringFlag(val.String())
	case string:
		return stringFlag(val)
	case *string:
		return val != nil && stringFlag(*val)
	default:
		return false
	}
}

func floatFlag(f float64) bool {
	return !math.IsNaN(f) && f != 0
}

func stringFlag(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "0", "false", "no", "off", "n":
		return false
	case "1", "true", "yes", "on", "y":
		return true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatFlag(f)
	}
	return false
}

// Int returns the 0/1 wire value
func (b BillableFlag) Int() int {
	if b == Billable {
		return 1
	}
	return 0
}

// Bool reports whether the flag is Billable
func (b BillableFlag) Bool() bool {
	return b == Billable
}

// String implements fmt.Stringer
func (b BillableFlag) String() string {
	if b == Billable {
		return "billable"
	}
	return "not_billable"
}

// MarshalJSON encodes the flag as 0 or 1
func (b BillableFlag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(b.Int())), nil
}

// UnmarshalJSON accepts any JSON scalar and converts it with ParseBillable
func (b *BillableFlag) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("billable flag: %w", err)
	}
	*b = ParseBillable(raw)
	return nil
}

// Value implements driver.Valuer
func (b BillableFlag) Value() (driver.Value, error) {
	return int64(b.Int()), nil
}

// Scan implements sql.Scanner
func (b *BillableFlag) Scan(src any) error {
	if bs, ok := src.([]byte); ok {
		src = string(bs)
	}
	*b = ParseBillable(src)
	return nil
}
