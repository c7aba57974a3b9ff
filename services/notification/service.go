package notification

import (
	"context"
	"encoding/json"
	"time"

	"opaleka/config"
	notificationRepo "opaleka/database/repository/notification"
	"opaleka/models"
	"opaleka/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultService is the production notification dispatcher.
type DefaultService struct {
	Repo   notificationRepo.NotificationRepository
	Mailer *Mailer
}

// NewDefaultService builds the dispatcher.
func NewDefaultService(repo notificationRepo.NotificationRepository, mailer *Mailer) *DefaultService {
	return &DefaultService{Repo: repo, Mailer: mailer}
}

// ListForUser lists a user's notifications, newest first.
func (s *DefaultService) ListForUser(userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID)
}

// MarkRead flags a notification as read.
func (s *DefaultService) MarkRead(id, userID string) error {
	matched, err := s.Repo.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if !matched {
		return utils.NewNotFoundError("notification")
	}
	return nil
}

// UnreadCount counts a user's unread notifications.
func (s *DefaultService) UnreadCount(userID string) (int64, error) {
	return s.Repo.CountUnread(userID)
}

// Delete removes a user's notification.
func (s *DefaultService) Delete(id, userID string) error {
	matched, err := s.Repo.Delete(id, userID)
	if err != nil {
		return err
	}
	if !matched {
		return utils.NewNotFoundError("notification")
	}
	return nil
}

// saveInApp persists a feed entry. Failures are logged only: the triggering
// state transition has already committed.
func (s *DefaultService) saveInApp(userID, title, message string) {
	n := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.Repo.Create(n); err != nil {
		zap.L().Error("failed to persist notification",
			zap.String("userID", userID), zap.Error(err))
	}
}

// sendEmail delivers best-effort email.
func (s *DefaultService) sendEmail(user *models.User, subject, body string, cc ...string) {
	if err := s.Mailer.Send(user.Email, user.Name, subject, body, cc...); err != nil {
		zap.L().Warn("email dispatch failed",
			zap.String("to", user.Email), zap.String("subject", subject), zap.Error(err))
	}
}

// sendPush delivers a best-effort FCM push when the user has a token.
func (s *DefaultService) sendPush(user *models.User, title, body string) {
	if utils.FCMClient == nil || user.FCMToken == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := &messaging.Message{
		Token:        user.FCMToken,
		Notification: &messaging.Notification{Title: title, Body: body},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		zap.L().Warn("push dispatch failed",
			zap.String("userID", user.ID), zap.Error(err))
	}
}

// BookingCreated notifies the provider of a new booking request.
func (s *DefaultService) BookingCreated(b *models.Booking, client, provider *models.User) {
	detail, _ := json.Marshal(map[string]any{
		"serviceName": b.ServiceName,
		"date":        b.Date,
		"time":        b.Time,
		"price":       b.Price,
		"address":     b.Address,
		"clientName":  client.Name,
		"clientEmail": client.Email,
		"clientPhone": client.Phone,
	})
	s.saveInApp(provider.ID, "New Booking Received", string(detail))

	subject, body := newBookingEmail(b, client, provider)
	s.sendEmail(provider, subject, body)
	s.sendPush(provider, "New Booking Received", b.ServiceName)
}

// BookingDecision notifies the client that the provider accepted or rejected.
func (s *DefaultService) BookingDecision(b *models.Booking, client *models.User, accepted bool) {
	title := "Booking Rejected"
	if accepted {
		title = "Booking Confirmed"
	}
	s.saveInApp(client.ID, title, b.ServiceName)

	subject, body := bookingDecisionEmail(b, client, accepted)
	s.sendEmail(client, subject, body)
	s.sendPush(client, title, b.ServiceName)
}

// BookingCompleted invites the client to rate the provider.
func (s *DefaultService) BookingCompleted(b *models.Booking, client, provider *models.User) {
	message := "Your booking for " + b.ServiceName + " has been completed. You can now rate your provider."
	s.saveInApp(client.ID, "Job Completed", message)

	subject, body := bookingCompletedEmail(b, client, provider)
	s.sendEmail(client, subject, body)
	s.sendPush(client, "Job Completed", message)
}

// VerificationOutcome emails the provider their verification result.
func (s *DefaultService) VerificationOutcome(user *models.User, status string) {
	subject, body := verificationOutcomeEmail(user, status, config.AppConfig.ActivationFee)
	s.sendEmail(user, subject, body)
}

// PaymentInsufficient emails a below-threshold payment notice, CCing billing.
func (s *DefaultService) PaymentInsufficient(user *models.User, amount, required float64) {
	subject, body := paymentInsufficientEmail(user, amount, required)
	s.sendEmail(user, subject, body, config.AppConfig.BillingCCEmail)
}

// PaymentConfirmed emails the activation confirmation, CCing billing.
func (s *DefaultService) PaymentConfirmed(user *models.User, amount float64) {
	subject, body := paymentConfirmedEmail(user, amount)
	s.sendEmail(user, subject, body, config.AppConfig.BillingCCEmail)
}

// PaymentReminder nudges a Free or Unpaid provider about activation.
func (s *DefaultService) PaymentReminder(user *models.User, paymentStatus string) {
	subject, body := paymentReminderEmail(user, paymentStatus, config.AppConfig.ActivationFee)
	s.sendEmail(user, subject, body)
}
