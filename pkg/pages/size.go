package pages

import (
	"fmt"
	"math"
)

var sizeUnits = [...]string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB"}

// sizeOverflowUnit is used once every unit in sizeUnits has been exhausted.
const sizeOverflowUnit = "Yi"

// KiB formats a size that is already counted in kibibytes, moving up the
// binary units while the magnitude is at least 1024. The sign is kept.
func KiB(num float64) string {
	for _, unit := range sizeUnits {
		if math.Abs(num) < 1024 {
			return fmt.Sprintf("%3.1f %s", num, unit)
		}
		num /= 1024
	}
	return fmt.Sprintf("%.1f %s", num, sizeOverflowUnit)
}

// Bytes formats a byte count, e.g. 1536 as "1.5 KiB".
func Bytes(n int64) string {
	return KiB(float64(n) / 1024)
}
