package store

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidContentID indicates a content identifier that does not parse as a CID.
	ErrInvalidContentID = errors.New("invalid content identifier")

	// ErrContentNotFound indicates a Get for a content identifier the store does not hold.
	ErrContentNotFound = errors.New("content not found")

	// ErrContentCorrupted indicates stored bytes that no longer hash to their content
	// identifier.
	ErrContentCorrupted = errors.New("content does not match its identifier")
)

// Store puts and gets opaque payloads by content-derived identifier. Payloads are already
// encrypted envelopes; the store never sees plaintext.
type Store interface {
	// Put stores the payload and returns its content identifier.
	Put(ctx context.Context, payload []byte) (string, error)

	// Get returns the payload stored under the content identifier.
	Get(ctx context.Context, contentID string) ([]byte, error)

	// IsAvailable reports whether the store is currently reachable, so callers can skip
	// store-dependent flows rather than fail hard.
	IsAvailable(ctx context.Context) bool
}
