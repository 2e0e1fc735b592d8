package domain

import "errors"

var (
	// ErrInvalidSession marks a credential the messaging platform rejected
	// outright. The only recovery is replacing the session material.
	ErrInvalidSession = errors.New("invalid session")

	// ErrProxyConfig marks a transport that cannot be established at all,
	// as opposed to one that is flaking.
	ErrProxyConfig = errors.New("proxy configuration error")

	// ErrUnavailable is the catch-all for a remote call that completed but
	// produced no usable result (bad envelope, malformed payload). Callers
	// treat it as "try again next cycle".
	ErrUnavailable = errors.New("result unavailable")

	ErrSessionQuarantined = errors.New("session quarantined")
	ErrNoComboAnswer      = errors.New("no combo answer on file")
)
