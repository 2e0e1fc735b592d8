package answers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"bumsfarm/internal/ports"
)

// TaskAnswers is the youtube-codes.json store: completion codes keyed by
// exact task name, with a second list holding codes the server rejected so
// they are never resubmitted.
type TaskAnswers struct {
	path string
	mu   *sync.Mutex
}

var _ ports.TaskAnswerStore = (*TaskAnswers)(nil)

func NewTaskAnswers(path string) *TaskAnswers {
	return &TaskAnswers{path: path, mu: lockForPath(path)}
}

type taskCodeEntry struct {
	Name string          `json:"name"`
	Code json.RawMessage `json:"code"`
}

type taskCodesFile struct {
	Codes          []taskCodeEntry `json:"codes"`
	IncorrectCodes []taskCodeEntry `json:"incorrect_codes"`
}

func (s *TaskAnswers) read() (taskCodesFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return taskCodesFile{}, nil
		}
		return taskCodesFile{}, fmt.Errorf("read task codes file: %w", err)
	}

	var file taskCodesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return taskCodesFile{}, fmt.Errorf("decode task codes file: %w", err)
	}
	return file, nil
}

// Code returns the answer code seeded for the named task. Codes appear in
// the file as either JSON strings or bare numbers; both come back as the
// string to submit.
func (s *TaskAnswers) Code(taskName string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return "", false
	}

	for _, entry := range file.Codes {
		if strings.TrimSpace(entry.Name) == taskName {
			return decodeCode(entry.Code), true
		}
	}
	return "", false
}

func decodeCode(raw json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	return strings.TrimSpace(string(raw))
}

// MarkIncorrect moves the named entry from codes to incorrect_codes and
// rewrites the file, so a human can see which seeds went stale.
func (s *TaskAnswers) MarkIncorrect(taskName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}

	kept := file.Codes[:0:0]
	moved := false
	for _, entry := range file.Codes {
		if !moved && strings.TrimSpace(entry.Name) == taskName {
			file.IncorrectCodes = append(file.IncorrectCodes, entry)
			moved = true
			continue
		}
		kept = append(kept, entry)
	}
	if !moved {
		return nil
	}
	file.Codes = kept

	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("encode task codes file: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
