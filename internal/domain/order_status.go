package domain

import (
	"fmt"
	"sort"
)

type OrderStatus string

// remember to add new statuses to the orderTransitions map
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions lists the statuses reachable from each status.
// Terminal statuses have no outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled},
	OrderStatusPaid:      nil,
	OrderStatusFulfilled: nil,
	OrderStatusCancelled: nil,
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; ok {
		return status, nil
	}

	return "", ValidationErrorf("invalid order status %q", s)
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(orderTransitions))
	for status := range orderTransitions {
		result = append(result, status)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether next is directly reachable from s.
// Re-applying the same status is not a transition and returns false.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TransitionPlan describes the side effects a status change triggers.
type TransitionPlan struct {
	From OrderStatus
	To   OrderStatus

	// NoOp is set when To equals From; nothing is written.
	NoOp bool

	DeductStock  bool
	ReverseStats bool
}

// PlanTransition validates the move from current to next and returns the
// side effects it requires.
func PlanTransition(current, next OrderStatus) (TransitionPlan, error) {
	plan := TransitionPlan{From: current, To: next}

	if _, ok := orderTransitions[next]; !ok {
		return plan, ValidationErrorf("invalid order status %q", next)
	}

	if current == next {
		plan.NoOp = true
		return plan, nil
	}

	if !current.CanTransitionTo(next) {
		return plan, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, next)
	}

	plan.DeductStock = next == OrderStatusFulfilled
	plan.ReverseStats = next == OrderStatusCancelled

	return plan, nil
}
