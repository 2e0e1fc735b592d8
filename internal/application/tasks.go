package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bumsfarm/internal/domain"
)

// runTasks completes every eligible task, dispatching on its type:
// channel-join links go through the join collaborator, nickname checks
// through the renamer, answer tasks submit a pre-seeded code, everything
// else is finished directly.
func (f *Farmer) runTasks(ctx context.Context, token string) error {
	f.log.Info("checking tasks")

	tasks, err := f.api.TaskList(ctx, token)
	if err != nil {
		f.log.Error("fetching task list failed", zap.Error(err))
		return nil
	}

	eligible := domain.EligibleTasks(tasks)
	if len(eligible) == 0 {
		f.log.Info("no eligible tasks")
		return nil
	}

	for _, task := range eligible {
		switch {
		case task.IsChannelJoinTask():
			// The toggle gates only the join action; the task itself is
			// still reported done.
			if f.cfg.AutoJoinChannels && f.joiner != nil {
				_ = f.joiner.JoinAndMute(ctx, task.JumpURL)
			}
			if err := f.pause(ctx, 5, 10); err != nil {
				return err
			}
			f.finishTask(ctx, token, task, "")

		case task.IsNicknameTask():
			if !f.cfg.AutoNameChange {
				continue
			}
			if f.renamer != nil {
				_ = f.renamer.AppendNameSuffix(ctx, f.cfg.NameSuffix)
			}
			if err := f.pause(ctx, 5, 10); err != nil {
				return err
			}
			f.finishTask(ctx, token, task, "")

		case task.IsAnswerTask():
			if f.taskAnswers == nil {
				continue
			}
			code, ok := f.taskAnswers.Code(task.Name)
			if !ok {
				f.log.Info("no answer code on file", zap.String("task", task.Name))
				continue
			}
			// Retire the code only on a parsed server rejection; a
			// transport failure leaves the seed intact for the next cycle.
			if err := f.finishTask(ctx, token, task, code); errors.Is(err, domain.ErrUnavailable) {
				if err := f.taskAnswers.MarkIncorrect(task.Name); err != nil {
					f.log.Error("retiring rejected answer code failed", zap.Error(err))
				}
			}

		default:
			f.finishTask(ctx, token, task, "")
		}

		if err := f.pause(ctx, 1, 5); err != nil {
			return err
		}
	}

	return nil
}

func (f *Farmer) finishTask(ctx context.Context, token string, task domain.Task, pwd string) error {
	if err := f.api.FinishTask(ctx, token, task.ID, pwd); err != nil {
		f.log.Error("finishing task failed", zap.String("task", task.Name), zap.Error(err))
		return err
	}
	f.log.Info("task finished", zap.String("task", task.Name), zap.String("reward", task.RewardParty))
	return nil
}
