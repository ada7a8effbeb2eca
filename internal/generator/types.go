package generator

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// Table is a generated record collection that can be written as a delimited file.
type Table interface {
	// Name returns the table name used in logs and manifests
	Name() string

	// Header returns the column names in output order
	Header() []string

	// Len returns the number of records
	Len() int

	// Row returns the string fields of record i, aligned with Header
	Row(i int) []string
}

// TimestampLayout is the layout used for every timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// seedStream is the second PCG word; the configured seed supplies the first.
const seedStream = 0x7461626c6567656e

// NewSource returns a locally owned random source for the given seed.
// Two sources built from the same seed produce identical sequences.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seedStream))
}

func formatTime(t time.Time) string {
	return t.Format(TimestampLayout)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
