package persistence

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

// SequenceCounter is the year-scoped counter row behind base-number
// allocation. One row per year, keyed BASE_NUMBER_{year}.
type SequenceCounter struct {
	Key       string `gorm:"primaryKey"`
	Year      int    `gorm:"not null"`
	Value     int64  `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the database table name
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}

// GormSequenceAllocator implements document.SequenceAllocator on a
// row-locked counter table. The SELECT FOR UPDATE on the counter row
// serializes concurrent allocations at the database, so two callers can
// never observe the same value. Transient failures (serialization
// aborts, lock timeouts) are retried with jittered backoff up to the
// configured budget, then surface as ALLOCATION_FAILED.
type GormSequenceAllocator struct {
	db         *gorm.DB
	maxRetries int
	baseDelay  time.Duration
	now        func() time.Time
}

// NewGormSequenceAllocator creates a new GormSequenceAllocator.
// maxRetries <= 0 falls back to 3 attempts.
func NewGormSequenceAllocator(db *gorm.DB, maxRetries int) *GormSequenceAllocator {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &GormSequenceAllocator{
		db:         db,
		maxRetries: maxRetries,
		baseDelay:  25 * time.Millisecond,
		now:        time.Now,
	}
}

// Allocate issues the next base number for the current year
func (a *GormSequenceAllocator) Allocate(ctx context.Context, prefix document.Prefix) (*document.Allocation, error) {
	if !prefix.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid prefix %q", prefix))
	}

	year := a.now().Year()
	key := fmt.Sprintf("BASE_NUMBER_%d", year)

	var lastErr error
	for attempt := 0; attempt < a.maxRetries; attempt++ {
		if attempt > 0 {
			delay := a.baseDelay<<uint(attempt-1) + time.Duration(rand.Int63n(int64(a.baseDelay)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		seq, err := a.nextValue(ctx, key, year)
		if err == nil {
			base := document.FormatBaseNumber(year, seq)
			return &document.Allocation{
				BaseNumber:     base,
				Prefix:         prefix,
				FullNumber:     document.FormatFullNumber(base, prefix),
				SequenceNumber: seq,
			}, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", shared.ErrAllocationFailed, lastErr)
}

// nextValue increments the counter row under a row lock, creating the
// row for a fresh year. The first allocation of a year yields 1.
func (a *GormSequenceAllocator) nextValue(ctx context.Context, key string, year int) (int64, error) {
	var next int64
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter SequenceCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).
			First(&counter).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			counter = SequenceCounter{Key: key, Year: year, Value: 0}
			// Another allocator may create the row between our lookup
			// and insert; the unique key makes that a retryable error
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		}

		counter.Value++
		counter.UpdatedAt = a.now()
		if err := tx.Model(&SequenceCounter{}).
			Where("key = ?", key).
			Updates(map[string]interface{}{
				"value":      counter.Value,
				"updated_at": counter.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		next = counter.Value
		return nil
	})
	return next, err
}
