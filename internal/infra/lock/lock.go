package lock

import (
	"context"
	"errors"
	"fmt"
)

// ErrWaitExceeded means another writer held the key for the whole wait
// budget.
var ErrWaitExceeded = errors.New("lock wait exceeded")

// Locker serialises writers that share a key. The returned release func is
// safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// SlotKey scopes admission locks to one provider's calendar day.
func SlotKey(providerID uint, date string) string {
	return fmt.Sprintf("booking:lock:%d:%s", providerID, date)
}
