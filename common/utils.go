package common

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// BonesPerHNT is the number of indivisible units in one HNT.
const BonesPerHNT = 100_000_000

// FormatCount prints small counts as is and large ones with an SI suffix,
// e.g. 2500000 as "2.5 M".
func FormatCount(n uint64) string {
	if n < 1000 {
		return strconv.FormatUint(n, 10)
	}
	return humanize.SIWithDigits(float64(n), 2, "")
}

func FormatDC(fee uint64) string {
	return humanize.Comma(int64(fee))
}

func FormatHNT(bones uint64) string {
	return humanize.CommafWithDigits(float64(bones)/BonesPerHNT, 8) + " HNT"
}

func FormatHeight(height uint64) string {
	return humanize.Comma(int64(height))
}

// FormatBlockTime renders an absolute UTC time followed by a relative one,
// e.g. "2019-12-18 20:13:20 UTC (3 years ago)".
func FormatBlockTime(t time.Time) string {
	if t.Unix() <= 0 {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", t.UTC().Format("2006-01-02 15:04:05 MST"), humanize.Time(t))
}

// ShortHash keeps the head and tail of long hashes for narrow outputs.
func ShortHash(hash string, keep int) string {
	if keep <= 0 || len(hash) <= 2*keep+3 {
		return hash
	}
	return hash[:keep] + "..." + hash[len(hash)-keep:]
}
