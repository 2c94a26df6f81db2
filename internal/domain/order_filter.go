package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderFilter has AND semantics across fields, OR semantics within each field slice
type OrderFilter struct {
	IDs         []uuid.UUID
	CustomerIDs []uuid.UUID
	Statuses    []OrderStatus
	CreatedAt   *TimeRange
	Limit       int
}

const (
	DefaultOrderFilterLimit = 100
	MaxOrderFilterLimit     = 1000
)

// EffectiveLimit is the row cap applied to a search: the default for zero,
// never more than MaxOrderFilterLimit.
func (f OrderFilter) EffectiveLimit() int {
	if f.Limit == 0 {
		return DefaultOrderFilterLimit
	}
	return min(f.Limit, MaxOrderFilterLimit)
}

func (f OrderFilter) Validate() error {
	if len(f.IDs) == 0 && len(f.CustomerIDs) == 0 && len(f.Statuses) == 0 && f.CreatedAt == nil {
		return errors.New("all fields are empty")
	}

	if f.CreatedAt != nil {
		if err := f.CreatedAt.Validate(); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}

	if f.Limit < 0 {
		return errors.New("limit is negative")
	}

	return nil
}

type TimeRange struct {
	Before *time.Time
	After  *time.Time
}

func (t TimeRange) Validate() error {
	if t.Before == nil && t.After == nil {
		return errors.New("both Before and After are nil")
	}

	if t.Before != nil && t.After != nil {
		if t.Before.Before(*t.After) {
			return fmt.Errorf("before is before After")
		}
	}

	return nil
}
