// Package lifecycle models the order status vocabulary: the forward
// delivery path, the cancellation rule, and the timeline the order
// detail screen renders.
package lifecycle

import (
	"errors"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// forward is the delivery path, in order. cancelled sits outside it.
var forward = []domain.Status{
	domain.StatusPending,
	domain.StatusConfirmed,
	domain.StatusPreparing,
	domain.StatusOutForDelivery,
	domain.StatusDelivered,
}

var labels = map[domain.Status]string{
	domain.StatusPending:        "Order Placed",
	domain.StatusConfirmed:      "Confirmed",
	domain.StatusPreparing:      "Preparing",
	domain.StatusOutForDelivery: "Out for Delivery",
	domain.StatusDelivered:      "Delivered",
}

var ErrInvalidTransition = errors.New("invalid status transition")

// index returns the position of s on the forward path, or -1 for
// cancelled/unknown.
func index(s domain.Status) int {
	for i, st := range forward {
		if st == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether no further transition is defined from s.
func Terminal(s domain.Status) bool {
	return s == domain.StatusDelivered || s == domain.StatusCancelled
}

// Cancellable reports whether the order may still be cancelled. Once
// preparation has begun the kitchen is committed and cancellation is no
// longer offered.
func Cancellable(s domain.Status) bool {
	return s == domain.StatusPending || s == domain.StatusConfirmed
}

// CanTransition validates an admin-issued status change. Movement along
// the forward path may skip steps but never goes backwards; cancellation
// is only reachable while Cancellable; terminal states are final.
func CanTransition(from, to domain.Status) bool {
	if Terminal(from) || from == to {
		return false
	}
	if to == domain.StatusCancelled {
		return Cancellable(from)
	}
	fi, ti := index(from), index(to)
	if fi < 0 || ti < 0 {
		return false
	}
	return ti > fi
}

// Transition applies CanTransition as an error-returning check.
func Transition(from, to domain.Status) (domain.Status, error) {
	if !CanTransition(from, to) {
		return from, ErrInvalidTransition
	}
	return to, nil
}

// Step is one rendered row of the status timeline.
type Step struct {
	Status    domain.Status
	Label     string
	Completed bool
}

// Timeline is what the order detail screen renders. A cancelled order
// keeps the forward steps it actually reached and carries a distinct
// terminal marker instead of pretending cancellation is a delivery step.
type Timeline struct {
	Steps     []Step
	Cancelled bool
}

// TimelineFor derives the timeline for the current status. A step is
// completed when the status is at or beyond its position on the forward
// path. For cancelled orders only "Order Placed" is completed: the
// stored status no longer says how far the order got before the cancel.
func TimelineFor(current domain.Status) Timeline {
	pos := index(current)
	cancelled := current == domain.StatusCancelled
	if cancelled {
		pos = 0
	}
	steps := make([]Step, 0, len(forward))
	for i, st := range forward {
		steps = append(steps, Step{
			Status:    st,
			Label:     labels[st],
			Completed: i <= pos,
		})
	}
	return Timeline{Steps: steps, Cancelled: cancelled}
}
