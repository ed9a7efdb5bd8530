// Package idempotency guards mutating endpoints against duplicate
// submissions. A client sends the same idempotency key on retries; the
// first request runs, later ones replay the stored response instead of
// re-executing.
package idempotency

import (
	"context"
	"errors"
	"strings"
	"time"
)

type DecisionType string

const (
	// DecisionAcquired means this request holds the key and should execute.
	DecisionAcquired DecisionType = "acquired"

	// DecisionReplay means a completed response is stored for this key.
	DecisionReplay DecisionType = "replay"

	// DecisionInProgress means another request holds the key right now.
	DecisionInProgress DecisionType = "in_progress"

	// DecisionConflict means the key was reused with a different payload.
	DecisionConflict DecisionType = "conflict"
)

// Request identifies one guarded attempt. Scope partitions keys between
// users so one client cannot replay another's response.
type Request struct {
	Scope       string
	Key         string
	RequestHash string
	LockTTL     time.Duration
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Scope) == "" {
		return errors.New("idempotency: scope is required")
	}
	if strings.TrimSpace(r.Key) == "" {
		return errors.New("idempotency: key is required")
	}
	if strings.TrimSpace(r.RequestHash) == "" {
		return errors.New("idempotency: request hash is required")
	}
	return nil
}

// Decision is the outcome of Acquire. Body and ContentType are populated
// only for DecisionReplay.
type Decision struct {
	Type        DecisionType
	StatusCode  int
	Body        []byte
	ContentType string
}

// StoredResponse is the handler output persisted for future replays.
type StoredResponse struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

type Store interface {
	Acquire(ctx context.Context, request Request) (Decision, error)
	Complete(ctx context.Context, request Request, response StoredResponse) error
}
