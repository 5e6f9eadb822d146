package core

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Amount an unsigned 64-bit balance in the smallest token unit.
// It is persisted as a numeric string since database/sql rejects uint64
// values with the high bit set.
type Amount uint64

// Uint64 the raw value
func (a Amount) Uint64() uint64 {
	return uint64(a)
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// Value implements driver.Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner
func (a *Amount) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = 0
	case int64:
		if v < 0 {
			return fmt.Errorf("negative amount %d", v)
		}
		*a = Amount(v)
	case []byte:
		return a.parse(string(v))
	case string:
		return a.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into Amount", src)
	}

	return nil
}

func (a *Amount) parse(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*a = Amount(v)
	return nil
}
