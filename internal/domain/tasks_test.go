package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eligibleTask() Task {
	return Task{
		ID:           1,
		Name:         "Watch the video",
		TaskType:     TaskTypeNormal,
		ClassifyName: "Welcome Task",
		Qualify:      1,
	}
}

func TestEligibleTasksAppliesAllPredicates(t *testing.T) {
	t.Parallel()

	finished := eligibleTask()
	finished.IsFinish = 1

	unqualified := eligibleTask()
	unqualified.Qualify = 0

	badClass := eligibleTask()
	badClass.ClassifyName = "Airdrop"

	badType := eligibleTask()
	badType.TaskType = TaskType("watch_ads")

	inviteGated := eligibleTask()
	inviteGated.LimitInviteCount = 3

	good := eligibleTask()

	filtered := EligibleTasks([]Task{finished, unqualified, badClass, badType, inviteGated, good})
	require.Len(t, filtered, 1)
	assert.Equal(t, good, filtered[0])
}

func TestEligibleTasksClassificationIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	task := eligibleTask()
	task.ClassifyName = "YouTube"
	task.TaskType = TaskTypePwd

	assert.True(t, task.Eligible())
}

func TestIsChannelJoinTask(t *testing.T) {
	t.Parallel()

	task := eligibleTask()
	task.Type = "open_link"
	task.Name = "Join our channel"
	task.JumpURL = "https://t.me/bums_official"
	assert.True(t, task.IsChannelJoinTask())

	task.JumpURL = "https://t.me/+AbCdEfGh1234"
	assert.True(t, task.IsChannelJoinTask())

	task.JumpURL = "https://example.com/bums"
	assert.False(t, task.IsChannelJoinTask())

	task.JumpURL = "https://t.me/bums_official"
	task.Name = "Visit the website"
	assert.False(t, task.IsChannelJoinTask())

	task.Name = "Join our channel"
	task.Type = "in_app"
	assert.False(t, task.IsChannelJoinTask())
}

func TestIsAnswerTask(t *testing.T) {
	t.Parallel()

	task := eligibleTask()
	task.ClassifyName = "Youtube"
	task.TaskType = TaskTypePwd
	assert.True(t, task.IsAnswerTask())

	task.TaskType = TaskTypeNormal
	assert.False(t, task.IsAnswerTask())
}
