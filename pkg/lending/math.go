package lending

import (
	"math/bits"

	"defilend/core"
)

// AddUint64 checked addition, fails with core.ErrOverflow instead of wrapping
func AddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, core.ErrOverflow
	}

	return sum, nil
}

// SubUint64 checked subtraction, fails with core.ErrUnderflow instead of wrapping
func SubUint64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, core.ErrUnderflow
	}

	return diff, nil
}
