package domain

import (
	"regexp"
	"strings"
)

// TaskType is the dispatch key for task completion.
type TaskType string

const (
	TaskTypeLevel    TaskType = "level"
	TaskTypePwd      TaskType = "pwd"
	TaskTypeNickname TaskType = "nickname_check"
	TaskTypeNormal   TaskType = "normal"
)

// Task is one entry of the remote task list.
type Task struct {
	ID               int
	Name             string
	RewardParty      string
	Type             string
	TaskType         TaskType
	ClassifyName     string
	JumpURL          string
	IsFinish         int
	Qualify          int
	InviteCount      int
	LimitInviteCount int
}

var allowedClassifications = map[string]struct{}{
	"youtube":       {},
	"partner task":  {},
	"welcome task":  {},
	"in-game tasks": {},
}

var allowedTaskTypes = map[TaskType]struct{}{
	TaskTypeLevel:    {},
	TaskTypePwd:      {},
	TaskTypeNickname: {},
	TaskTypeNormal:   {},
}

// Eligible reports whether the task passes all five completion predicates:
// no invite requirement, no invites counted, not finished, qualifying, and
// an allow-listed classification and type.
func (t Task) Eligible() bool {
	if t.LimitInviteCount != 0 || t.InviteCount != 0 {
		return false
	}
	if t.IsFinish != 0 || t.Qualify != 1 {
		return false
	}
	if _, ok := allowedClassifications[strings.ToLower(t.ClassifyName)]; !ok {
		return false
	}
	_, ok := allowedTaskTypes[t.TaskType]
	return ok
}

// EligibleTasks filters a task list down to the completable subset.
func EligibleTasks(tasks []Task) []Task {
	eligible := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Eligible() {
			eligible = append(eligible, task)
		}
	}
	return eligible
}

var telegramLinkPattern = regexp.MustCompile(`^https?://(?:t\.me|telegram\.me|telegram\.dog)/(?:[a-zA-Z0-9_]{4,32}|\+[a-zA-Z0-9_-]{8,18})`)

var joinKeywords = []string{"Subscribe", "Join", "Follow"}

// IsChannelJoinTask reports whether a task asks the account to join a
// Telegram channel: an open-link normal task whose URL matches the Telegram
// link shape and whose name carries a subscribe/join/follow keyword.
func (t Task) IsChannelJoinTask() bool {
	if t.Type != "open_link" || t.TaskType != TaskTypeNormal {
		return false
	}
	if !telegramLinkPattern.MatchString(t.JumpURL) {
		return false
	}
	for _, keyword := range joinKeywords {
		if strings.Contains(t.Name, keyword) {
			return true
		}
	}
	return false
}

// IsNicknameTask reports whether the task is completed by appending the
// game's suffix to the profile name.
func (t Task) IsNicknameTask() bool {
	return t.Type == "open_link" && t.TaskType == TaskTypeNickname
}

// IsAnswerTask reports whether the task needs a pre-seeded answer code
// submitted as its completion password.
func (t Task) IsAnswerTask() bool {
	return strings.EqualFold(t.ClassifyName, "youtube") && t.TaskType == TaskTypePwd
}
