package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LocalLocker is an in-process keyed mutex for single-instance deployments.
type LocalLocker struct {
	wait time.Duration

	mu   sync.Mutex
	keys map[string]*localKey
}

type localKey struct {
	sem  chan struct{}
	refs int
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		wait: wait,
		keys: make(map[string]*localKey),
	}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	k := l.ref(key)

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case k.sem <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, k)
		return nil, fmt.Errorf("%w: %s: %v", ErrWaitExceeded, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-k.sem
			l.unref(key, k)
		})
	}, nil
}

func (l *LocalLocker) ref(key string) *localKey {
	l.mu.Lock()
	defer l.mu.Unlock()

	k, ok := l.keys[key]
	if !ok {
		k = &localKey{sem: make(chan struct{}, 1)}
		l.keys[key] = k
	}
	k.refs++
	return k
}

// unref drops idle keys so the map does not grow with every date ever booked.
func (l *LocalLocker) unref(key string, k *localKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k.refs--
	if k.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
