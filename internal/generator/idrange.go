package generator

import (
	"fmt"
	"math/rand/v2"
)

// IDRange is an inclusive range of record identifiers.
type IDRange struct {
	Min int
	Max int
}

// RangeOf returns the id range 1..count of a table with count records.
func RangeOf(count int) IDRange {
	return IDRange{Min: 1, Max: count}
}

// Validate rejects ranges that are empty or reach below the first id.
func (r IDRange) Validate(field string) error {
	if r.Min < 1 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("lower bound must be at least 1, got %d", r.Min)}
	}
	if r.Max < r.Min {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("empty range %s", r)}
	}
	return nil
}

// Contains reports whether id falls inside the range.
func (r IDRange) Contains(id int) bool {
	return id >= r.Min && id <= r.Max
}

// Sample draws an id uniformly from the range. The range must be valid.
func (r IDRange) Sample(src *rand.Rand) int {
	return r.Min + src.IntN(r.Max-r.Min+1)
}

func (r IDRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}
