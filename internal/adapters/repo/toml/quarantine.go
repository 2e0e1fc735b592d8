// Package toml persists the session quarantine: identities whose
// credentials were permanently rejected, kept on disk so restarts never
// resurrect them.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

const (
	quarantinePathKey  = "files.quarantine"
	quarantineFileMode = 0o600
	quarantineDirMode  = 0o700
	tempFilePattern    = ".quarantine-*.toml.tmp"
	schemaVersion      = 1
)

type QuarantineRepository struct {
	path  string
	mu    *sync.RWMutex
	clock ports.Clock
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionQuarantine = (*QuarantineRepository)(nil)

func NewQuarantineRepository(cfg *viper.Viper, clock ports.Clock) (*QuarantineRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	cfg.SetDefault(quarantinePathKey, "quarantine.toml")
	path := cfg.GetString(quarantinePathKey)
	if path == "" {
		return nil, errors.New("quarantine path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve quarantine path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &QuarantineRepository{path: absPath, mu: lockForPath(absPath), clock: clock}, nil
}

type fileSchema struct {
	Version  int            `toml:"version"`
	Sessions []recordSchema `toml:"sessions"`
}

type recordSchema struct {
	Label         string `toml:"label"`
	Reason        string `toml:"reason"`
	QuarantinedAt string `toml:"quarantined_at"`
}

func (f *fileSchema) applyDefaults() {
	if f.Version == 0 {
		f.Version = schemaVersion
	}
}

func (f fileSchema) validateVersion() error {
	if f.Version != 0 && f.Version != schemaVersion {
		return fmt.Errorf("unsupported quarantine file version %d", f.Version)
	}
	return nil
}

func (r *QuarantineRepository) Quarantine(ctx context.Context, label domain.SessionLabel, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	record := recordSchema{
		Label:         string(label),
		Reason:        reason,
		QuarantinedAt: r.clock.Now().UTC().Format(time.RFC3339),
	}

	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].Label == record.Label {
			file.Sessions[i] = record
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, record)
	}

	return r.writeSchema(file)
}

func (r *QuarantineRepository) IsQuarantined(ctx context.Context, label domain.SessionLabel) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return false, err
	}

	for _, entry := range file.Sessions {
		if entry.Label == string(label) {
			return true, nil
		}
	}
	return false, nil
}

func (r *QuarantineRepository) List(ctx context.Context) ([]ports.QuarantineRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]ports.QuarantineRecord, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		records = append(records, ports.QuarantineRecord{
			Label:         domain.SessionLabel(entry.Label),
			Reason:        entry.Reason,
			QuarantinedAt: parseTime(entry.QuarantinedAt),
		})
	}
	return records, nil
}

func (r *QuarantineRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read quarantine file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode quarantine file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *QuarantineRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), quarantineDirMode); err != nil {
		return fmt.Errorf("create quarantine directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode quarantine file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp quarantine file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp quarantine file: %w", err)
	}
	if err := tempFile.Chmod(quarantineFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp quarantine file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp quarantine file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace quarantine file: %w", err)
	}
	cleanup = false

	return nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
