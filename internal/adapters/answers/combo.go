package answers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

// ComboAnswers is the combo.json store: a human seeds the 3-part daily
// answer, the loop consumes it, and a rejected answer is cleared so stale
// guesses are never burned twice.
type ComboAnswers struct {
	path string
	mu   *sync.Mutex
}

var _ ports.ComboAnswerStore = (*ComboAnswers)(nil)

func NewComboAnswers(path string) *ComboAnswers {
	return &ComboAnswers{path: path, mu: lockForPath(path)}
}

type comboFile struct {
	Combo []string `json:"combo"`
}

func (s *ComboAnswers) Get() ([3]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return [3]string{}, domain.ErrNoComboAnswer
		}
		return [3]string{}, fmt.Errorf("read combo file: %w", err)
	}

	var file comboFile
	if err := json.Unmarshal(data, &file); err != nil {
		return [3]string{}, fmt.Errorf("decode combo file: %w", err)
	}
	if len(file.Combo) != 3 {
		return [3]string{}, domain.ErrNoComboAnswer
	}

	return [3]string{file.Combo[0], file.Combo[1], file.Combo[2]}, nil
}

func (s *ComboAnswers) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(comboFile{Combo: []string{}}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode combo file: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
