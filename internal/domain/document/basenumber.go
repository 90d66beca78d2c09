package document

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// BaseNumber format: YYYY-NNNN (e.g. 2025-0001). Immutable once
// allocated, unique within its year, monotonically increasing.
// Full number format: YYYY-NNNN-PREFIX (e.g. 2025-0001-ENQ).
var (
	baseNumberPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)
	fullNumberPattern = regexp.MustCompile(`^(\d{4}-\d{4})-(ENQ|QUO|ORD|INV|DEL|PAID)$`)
)

// Allocation is the result of allocating a fresh base number
type Allocation struct {
	BaseNumber     string
	Prefix         Prefix
	FullNumber     string
	SequenceNumber int64
}

// SequenceAllocator issues immutable year-scoped sequential identifiers.
// Implementations must be race-free: concurrent callers never receive
// the same sequence number. Allocation is the only globally shared
// mutable resource in the engine, so implementations serialize it at
// the datastore.
type SequenceAllocator interface {
	Allocate(ctx context.Context, prefix Prefix) (*Allocation, error)
}

// FormatBaseNumber renders a year and sequence number as YYYY-NNNN
func FormatBaseNumber(year int, seq int64) string {
	return fmt.Sprintf("%d-%04d", year, seq)
}

// FormatFullNumber appends the stage prefix to a base number
func FormatFullNumber(baseNumber string, prefix Prefix) string {
	return baseNumber + "-" + prefix.String()
}

// ValidateBaseNumber checks YYYY-NNNN format
func ValidateBaseNumber(baseNumber string) bool {
	return baseNumberPattern.MatchString(baseNumber)
}

// ValidateFullNumber checks YYYY-NNNN-PREFIX format
func ValidateFullNumber(fullNumber string) bool {
	return fullNumberPattern.MatchString(fullNumber)
}

// ExtractBaseNumber returns the YYYY-NNNN part of a full number, or ""
// if the input is not a valid full number
func ExtractBaseNumber(fullNumber string) string {
	m := fullNumberPattern.FindStringSubmatch(fullNumber)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractPrefix returns the stage prefix of a full number, or "" if the
// input is not a valid full number
func ExtractPrefix(fullNumber string) Prefix {
	m := fullNumberPattern.FindStringSubmatch(fullNumber)
	if m == nil {
		return ""
	}
	return Prefix(m[2])
}

// BaseNumberYear returns the year component of a base number, or 0 for
// invalid input
func BaseNumberYear(baseNumber string) int {
	if !ValidateBaseNumber(baseNumber) {
		return 0
	}
	var year int
	_, _ = fmt.Sscanf(strings.SplitN(baseNumber, "-", 2)[0], "%d", &year)
	return year
}
