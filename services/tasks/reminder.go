package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"nekokin/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// reminderLeadTime is how far before the appointment the reminder fires.
const reminderLeadTime = time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues appointment reminders on the asynq queue.
type ReminderScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewReminderScheduler(client *asynq.Client, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{Client: client, Logger: logger}
}

// ScheduleAppointmentReminder queues a reminder an hour before the visit.
// Appointments already inside the lead window fire immediately.
func (s *ReminderScheduler) ScheduleAppointmentReminder(b *models.Booking) error {
	fireAt := b.BookingDate.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	payload := models.ReminderPayload{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Title:      "Upcoming appointment",
		Body:       fmt.Sprintf("Your appointment is at %s.", b.BookingDate.Format("15:04 on 02/01/2006")),
		FireDate:   b.BookingDate.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.Client.Enqueue(task, opts...)
	if err != nil {
		return err
	}
	s.Logger.Info("appointment reminder queued",
		zap.String("bookingID", b.ID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
