package session

import (
	"context"

	"bookline/models"
)

// Store manages per-sender dialogue sessions. Implementations must keep
// different senders' sessions fully independent; serialization of messages
// from a single sender is the dialogue engine's job.
type Store interface {
	// GetOrCreate returns the sender's in-progress session, creating one at
	// the welcome step if none exists (or the old one expired).
	GetOrCreate(ctx context.Context, sender string) (*models.Session, error)
	// Save persists the session after a step transition.
	Save(ctx context.Context, s *models.Session) error
	// Reset discards all collected fields and returns the session to the
	// welcome step.
	Reset(ctx context.Context, sender string) (*models.Session, error)
	// Delete removes the session entirely, as after a successful commit.
	Delete(ctx context.Context, sender string) error
}
