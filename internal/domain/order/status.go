// internal/domain/order/status.go
package order

// Status is the order lifecycle state. Transitions are forward-only
// (Pending -> Shipped -> Delivered) except Pending -> Cancelled.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var statusRank = map[Status]int{
	StatusPending:   0,
	StatusShipped:   1,
	StatusDelivered: 2,
}

// CanTransition reports whether s -> to is a legal lifecycle move.
// Cancelled is terminal and only reachable from Pending.
func (s Status) CanTransition(to Status) bool {
	if !s.Valid() || !to.Valid() || s == to {
		return false
	}
	if to == StatusCancelled {
		return s == StatusPending
	}
	if s == StatusCancelled {
		return false
	}
	return statusRank[to] > statusRank[s]
}
