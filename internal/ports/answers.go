package ports

import "bumsfarm/internal/domain"

// CardCatalog resolves card ids to display info for log lines.
type CardCatalog interface {
	CardInfo(id string) (domain.CardInfo, bool)
}

// TaskAnswerStore holds pre-seeded completion codes keyed by exact task
// name. MarkIncorrect retires a code the server rejected so it is not
// resubmitted.
type TaskAnswerStore interface {
	Code(taskName string) (string, bool)
	MarkIncorrect(taskName string) error
}

// ComboAnswerStore holds the human-supplied 3-part daily combo answer.
// Clear discards it after a wrong submission, forcing a fresh one to be
// seeded before the next attempt.
type ComboAnswerStore interface {
	Get() ([3]string, error)
	Clear() error
}
