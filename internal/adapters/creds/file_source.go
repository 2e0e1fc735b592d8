// Package creds supplies identity credentials from a local sessions file,
// the way every Go farmer in the wild does: the web-app payload is exported
// once from the messaging client and pasted into a line of sessions.txt.
package creds

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

// LoadSessions parses a sessions file. Each non-comment line is
// "label|referralID|initData[|proxy]"; malformed lines are skipped with a
// warning so one typo does not take down the whole fleet.
func LoadSessions(path string, logger *zap.Logger) ([]domain.Credentials, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sessions file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sessions []domain.Credentials
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 3 || len(parts) > 4 {
			logger.Warn("skipping malformed session line", zap.String("line", line))
			continue
		}

		entry := domain.Credentials{
			Label:      domain.SessionLabel(strings.TrimSpace(parts[0])),
			ReferralID: strings.TrimSpace(parts[1]),
			InitData:   strings.TrimSpace(parts[2]),
		}
		if len(parts) == 4 {
			entry.Proxy = strings.TrimSpace(parts[3])
		}
		if entry.Label == "" || entry.InitData == "" {
			logger.Warn("skipping session line with empty label or payload", zap.String("line", line))
			continue
		}
		sessions = append(sessions, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sessions file: %w", err)
	}

	return sessions, nil
}

// NormalizeProxy validates a proxy spec and returns it in URL form.
// Supported schemes are http, https and socks5; a bare host:port defaults
// to http. Anything else is a configuration error.
func NormalizeProxy(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	scheme := "http"
	rest := raw
	if idx := strings.Index(raw, "://"); idx >= 0 {
		scheme = strings.ToLower(raw[:idx])
		rest = raw[idx+3:]
	}
	if scheme != "http" && scheme != "https" && scheme != "socks5" {
		return "", fmt.Errorf("%w: unsupported proxy scheme %q", domain.ErrProxyConfig, scheme)
	}
	if rest == "" || !strings.Contains(rest, ":") {
		return "", fmt.Errorf("%w: proxy %q has no host:port", domain.ErrProxyConfig, raw)
	}

	return scheme + "://" + rest, nil
}

// FileSource hands out one identity's pre-exported credentials. Acquire
// re-checks the quarantine each cycle so an operator can retire a session
// while the fleet is running.
type FileSource struct {
	creds      domain.Credentials
	quarantine ports.SessionQuarantine
}

var _ ports.CredentialSource = (*FileSource)(nil)

func NewFileSource(creds domain.Credentials, quarantine ports.SessionQuarantine) *FileSource {
	return &FileSource{creds: creds, quarantine: quarantine}
}

func (s *FileSource) Acquire(ctx context.Context) (domain.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return domain.Credentials{}, err
	}

	if s.quarantine != nil {
		quarantined, err := s.quarantine.IsQuarantined(ctx, s.creds.Label)
		if err != nil {
			return domain.Credentials{}, fmt.Errorf("check quarantine: %w", err)
		}
		if quarantined {
			return domain.Credentials{}, fmt.Errorf("%w: %w: %s", domain.ErrInvalidSession, domain.ErrSessionQuarantined, s.creds.Label)
		}
	}

	if s.creds.InitData == "" {
		return domain.Credentials{}, fmt.Errorf("%w: empty web-app payload for %s", domain.ErrInvalidSession, s.creds.Label)
	}

	creds := s.creds
	if creds.Proxy != "" {
		normalized, err := NormalizeProxy(creds.Proxy)
		if err != nil {
			return domain.Credentials{}, err
		}
		creds.Proxy = normalized
	}

	return creds, nil
}
