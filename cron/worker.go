package cron

import (
	"context"
	"time"

	"opaleka/config"
	providerRepo "opaleka/database/repository/provider"
	userRepo "opaleka/database/repository/user"
	"opaleka/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypePaymentReminder = "payment:reminder"

// reminderInterval is the minimum gap between reminders to the same provider.
const reminderInterval = 7 * 24 * time.Hour

// ReminderSink delivers payment reminder emails.
type ReminderSink interface {
	PaymentReminder(user *models.User, paymentStatus string)
}

// InitPaymentReminderWorker runs the async worker and its periodic scheduler
// in the background. The worker sweeps providers still on Free or Unpaid
// standing and nudges them about the activation fee.
func InitPaymentReminderWorker(providers providerRepo.ProviderDetailsRepository, users userRepo.UserRepository, sink ReminderSink) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
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
	mux.HandleFunc(TypePaymentReminder, handlePaymentReminder(providers, users, sink))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@daily", asynq.NewTask(TypePaymentReminder, nil)); err != nil {
		zap.L().Error("failed to register payment reminder schedule", zap.Error(err))
	}

	go func() {
		zap.L().Info("starting payment reminder worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				zap.L().Error("payment reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					zap.L().Fatal("payment reminder worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			zap.L().Error("payment reminder scheduler stopped", zap.Error(err))
		}
	}()
}

func handlePaymentReminder(providers providerRepo.ProviderDetailsRepository, users userRepo.UserRepository, sink ReminderSink) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		detailsList, err := providers.ListNeedingReminder()
		if err != nil {
			zap.L().Error("payment reminder sweep failed", zap.Error(err))
			return err
		}

		now := time.Now().UTC()
		var sent int
		for _, d := range detailsList {
			if d.LastReminderDate != nil && now.Sub(*d.LastReminderDate) < reminderInterval {
				continue
			}
			user, err := users.GetByID(d.UserID)
			if err != nil {
				zap.L().Warn("payment reminder user lookup failed",
					zap.String("userID", d.UserID), zap.Error(err))
				continue
			}
			if user == nil {
				continue
			}

			sink.PaymentReminder(user, d.PaymentStatus)
			if err := providers.StampReminder(d.UserID); err != nil {
				zap.L().Warn("failed to stamp reminder date",
					zap.String("userID", d.UserID), zap.Error(err))
			}
			sent++
		}
		zap.L().Info("payment reminder sweep complete",
			zap.Int("candidates", len(detailsList)), zap.Int("sent", sent))
		return nil
	}
}
