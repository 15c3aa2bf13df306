package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"gebedsrooster/models"
)

const TypeSendReminder = "reminder:send"

// reminderTaskID makes enqueueing the same registration twice a no-op.
func reminderTaskID(registrationID string) string {
	return "reminder:" + registrationID
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload.RegistrationID)),
		asynq.MaxRetry(5),
	}

	return task, opts, nil
}
