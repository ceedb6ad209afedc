package shop

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every legal order status, in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Valid reports membership in the status enumeration. Transition edges are
// intentionally not enforced here; an admin may move an order back to an
// earlier status to correct a mistake.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
