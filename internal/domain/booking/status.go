package booking

import "github.com/BruksfildServices01/booking-engine/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// BusyStatuses are the statuses that occupy the provider's time.
var BusyStatuses = []Status{StatusPending, StatusConfirmed}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return st, true
	}
	return "", false
}

func (s Status) IsBusy() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	_, ok := transitions[s]
	return !ok
}

// ===============================
// Validations
// ===============================

// CanTransition rejects moves out of terminal states; reviving a cancelled
// booking could overlap whatever took its slot.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrValidation("invalid_state", "This booking can no longer change to that status.")
}

func InitialStatus() Status {
	return StatusPending
}

func BusyStatusStrings() []string {
	out := make([]string, 0, len(BusyStatuses))
	for _, s := range BusyStatuses {
		out = append(out, string(s))
	}
	return out
}
