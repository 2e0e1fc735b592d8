package ports

import (
	"context"
	"time"

	"bumsfarm/internal/domain"
)

// QuarantineRecord is one permanently invalidated session.
type QuarantineRecord struct {
	Label         domain.SessionLabel
	Reason        string
	QuarantinedAt time.Time
}

// SessionQuarantine persists identities whose credentials were permanently
// rejected so the fleet never starts them again.
type SessionQuarantine interface {
	Quarantine(ctx context.Context, label domain.SessionLabel, reason string) error
	IsQuarantined(ctx context.Context, label domain.SessionLabel) (bool, error)
	List(ctx context.Context) ([]QuarantineRecord, error)
}
