package state

import (
	"context"
	"sync"
	"time"

	"github.com/entroverse/entroverse-api/internal/logger"
)

// Verifier debounces the reward verification sweep per user. Every mutation
// re-arms the timer, so a burst of completions produces one sweep after the
// burst settles rather than one per mutation.
type Verifier struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	debounce time.Duration
	sweep    func(ctx context.Context, userID string)
	closed   bool
	wg       sync.WaitGroup
}

// NewVerifier creates a verifier that runs sweep after debounce of quiet time
func NewVerifier(debounce time.Duration, sweep func(ctx context.Context, userID string)) *Verifier {
	return &Verifier{
		timers:   make(map[string]*time.Timer),
		debounce: debounce,
		sweep:    sweep,
	}
}

// Schedule arms or re-arms the user's sweep timer.
func (v *Verifier) Schedule(userID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if timer, ok := v.timers[userID]; ok {
		timer.Reset(v.debounce)
		return
	}
	v.timers[userID] = time.AfterFunc(v.debounce, func() {
		v.fire(userID)
	})
}

func (v *Verifier) fire(userID string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	delete(v.timers, userID)
	v.wg.Add(1)
	v.mu.Unlock()
	defer v.wg.Done()

	v.sweep(context.Background(), userID)
}

// Shutdown cancels pending timers and waits for in-flight sweeps.
func (v *Verifier) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v.mu.Lock()
	if !v.closed {
		v.closed = true
		for userID, timer := range v.timers {
			timer.Stop()
			log.Debug("Cancelled pending verification sweep", "user_id", userID)
		}
		v.timers = make(map[string]*time.Timer)
	}
	v.mu.Unlock()

	done := make(chan struct{})
	go func() {
		v.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn("Verifier shutdown timeout")
		return ctx.Err()
	}
}
