package cron

import (
	"context"
	"encoding/json"
	"time"

	"nekokin/config"
	bookingRepo "nekokin/database/repository/booking"
	"nekokin/models"
	"nekokin/services/tasks"
	"nekokin/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(bookings bookingRepo.BookingRepository) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(bookings, logger))

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers a due reminder. Bookings canceled since the
// reminder was queued are skipped silently.
func handleReminderTask(bookings bookingRepo.BookingRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder task carried an invalid payload", zap.Error(err))
			return err
		}

		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			return err
		}
		if b == nil || b.Status == models.StatusCanceled {
			logger.Info("reminder skipped, booking gone or canceled",
				zap.String("bookingID", p.BookingID))
			return nil
		}

		logger.Info("appointment reminder due",
			zap.String("bookingID", p.BookingID),
			zap.String("customerID", p.CustomerID),
			zap.String("title", p.Title),
			zap.String("body", p.Body),
			zap.String("fireDate", p.FireDate))
		return nil
	}
}
