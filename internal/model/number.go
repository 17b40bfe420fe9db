package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Number is a calculated metric. NaN and ±Inf mark an undefined value:
// they are written as JSON null and stored as SQL NULL.
type Number float64

// Undefined returns a Number that carries no value.
func Undefined() Number {
	return Number(math.NaN())
}

// Defined reports whether n holds a finite value.
func (n Number) Defined() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Value implements driver.Valuer.
func (n Number) Value() (driver.Value, error) {
	if !n.Defined() {
		return nil, nil
	}
	return float64(n), nil
}

// Scan implements sql.Scanner.
func (n *Number) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = Undefined()
	case float64:
		*n = Number(v)
	case int64:
		*n = Number(v)
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("scan number: %w", err)
		}
		*n = Number(f)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("scan number: %w", err)
		}
		*n = Number(f)
	default:
		return fmt.Errorf("scan number: unsupported type %T", src)
	}
	return nil
}
