// Package payment bridges the external payment provider into the booking
// flow: a process-wide credential loader, a REST client for order
// create/capture, and a per-draft checkout session that suppresses provider
// callbacks arriving after the session is torn down.
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type LoadState string

const (
	StateUnloaded LoadState = "unloaded"
	StateLoading  LoadState = "loading"
	StateReady    LoadState = "ready"
	StateFailed   LoadState = "failed"
)

// DefaultLoadTimeout bounds a single credential load attempt.
const DefaultLoadTimeout = 10 * time.Second

// Token is a provider access credential with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// TokenSource performs the actual credential fetch against the provider.
type TokenSource interface {
	FetchToken(ctx context.Context) (Token, error)
}

// Loader is the process-wide provider bootstrap. The credential is fetched
// once and shared by every checkout; callers arriving mid-load subscribe and
// wait instead of starting a second fetch. A failed load is terminal until
// Reload is called — there is no silent auto-retry.
type Loader struct {
	mu      sync.Mutex
	state   LoadState
	token   Token
	waiters []chan error

	source  TokenSource
	timeout time.Duration
	log     *zap.Logger
}

func NewLoader(source TokenSource, log *zap.Logger) *Loader {
	return &Loader{
		state:   StateUnloaded,
		source:  source,
		timeout: DefaultLoadTimeout,
		log:     log.With(zap.String("component", "payment_loader")),
	}
}

// State reports the current load state.
func (l *Loader) State() LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Reload clears a failed state so the next Ensure retries the fetch.
// It is the manual-reload action; it does nothing while a load is running.
func (l *Loader) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateFailed {
		l.state = StateUnloaded
		l.log.Info("Payment provider credentials reset for reload")
	}
}

// Ensure returns a valid access token, starting the load if necessary and
// waiting for an in-flight one. An expired token is fetched again; a failed
// state is returned as an error until Reload.
func (l *Loader) Ensure(ctx context.Context) (string, error) {
	l.mu.Lock()

	if l.state == StateReady && time.Now().Before(l.token.ExpiresAt) {
		token := l.token.AccessToken
		l.mu.Unlock()
		return token, nil
	}

	if l.state == StateFailed {
		l.mu.Unlock()
		return "", fmt.Errorf("payment provider load failed: reload required")
	}

	if l.state != StateLoading {
		// ready-but-expired falls through here as well
		l.state = StateLoading
		go l.load()
	}

	done := make(chan error, 1)
	l.waiters = append(l.waiters, done)
	l.mu.Unlock()

	select {
	case err := <-done:
		if err != nil {
			return "", err
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateReady {
		return "", fmt.Errorf("payment provider not ready")
	}
	return l.token.AccessToken, nil
}

func (l *Loader) load() {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	token, err := l.source.FetchToken(ctx)

	l.mu.Lock()
	if err != nil {
		l.state = StateFailed
		l.log.Error("Payment provider credential load failed", zap.Error(err))
		err = fmt.Errorf("load payment provider credentials: %w", err)
	} else {
		l.state = StateReady
		l.token = token
		l.log.Info("Payment provider credentials loaded",
			zap.Time("expires_at", token.ExpiresAt))
	}
	waiters := l.waiters
	l.waiters = nil
	l.mu.Unlock()

	for _, w := range waiters {
		w <- err
	}
}
