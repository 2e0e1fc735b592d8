package ports

import (
	"context"

	"bumsfarm/internal/domain"
)

// CredentialSource produces the short-lived authorization material for one
// identity. Acquire fails with domain.ErrInvalidSession when the session is
// permanently rejected and domain.ErrProxyConfig when the transport cannot
// be established; any other error is transient.
type CredentialSource interface {
	Acquire(ctx context.Context) (domain.Credentials, error)
}

// ChannelJoiner joins and mutes a Telegram channel on behalf of the
// identity. Best effort: implementations log failures and return nil.
type ChannelJoiner interface {
	JoinAndMute(ctx context.Context, link string) error
}

// ProfileRenamer appends a suffix to the identity's display name.
// Idempotent: a suffix already present is a no-op.
type ProfileRenamer interface {
	AppendNameSuffix(ctx context.Context, suffix string) error
}
