package store

import (
	"context"
	"errors"
)

var (
	ErrorUnavailable = errors.New("store unavailable")
)

// VisitLog is the client side of the shared list of visit timestamps. New
// entries go to the head, so Range returns the most recent visit first.
type VisitLog interface {
	Pinger

	Push(ctx context.Context, value string) error
	Range(ctx context.Context) ([]string, error)

	// PushAndRange pushes value and reads the list back as one atomic step,
	// so the result always reflects exactly this push.
	PushAndRange(ctx context.Context, value string) ([]string, error)

	Close() error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
