package services

import (
	"context"
	"strconv"
	"time"

	"github.com/ChurchSite/models"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 10 * time.Second

// Notifier is told about every public submission. Implementations must not
// fail the request that triggered them.
type Notifier interface {
	MessageReceived(ctx context.Context, m models.Message)
	PrayerRequestReceived(ctx context.Context, p models.PrayerRequest)
}

// NotificationService fans submissions out to email and push. Either
// channel may be nil.
type NotificationService struct {
	Email   *EmailService
	Push    *PushNotificationService
	Timeout time.Duration
}

func (n *NotificationService) MessageReceived(ctx context.Context, m models.Message) {
	ctx, cancel := n.bounded(ctx)
	defer cancel()

	if n.Email.IsReady() {
		if err := n.Email.SendMessageNotification(ctx, m); err != nil {
			log.Error().Err(err).Int("message_id", m.ID).Msg("contact message email failed")
		}
	}
	if n.Push.IsReady() {
		payload := NotificationPayload{
			Title: "New message from " + m.Name,
			Body:  m.Subject,
			Data:  map[string]string{"type": "message", "id": strconv.Itoa(m.ID)},
		}
		if err := n.Push.Broadcast(ctx, payload); err != nil {
			log.Error().Err(err).Int("message_id", m.ID).Msg("contact message push failed")
		}
	}
}

func (n *NotificationService) PrayerRequestReceived(ctx context.Context, p models.PrayerRequest) {
	ctx, cancel := n.bounded(ctx)
	defer cancel()

	if n.Email.IsReady() {
		if err := n.Email.SendPrayerRequestNotification(ctx, p); err != nil {
			log.Error().Err(err).Int("prayer_id", p.ID).Msg("prayer request email failed")
		}
	}
	if n.Push.IsReady() {
		title := "Prayer request from " + p.Name
		if p.IsUrgent {
			title = "Urgent prayer request from " + p.Name
		}
		payload := NotificationPayload{
			Title: title,
			Body:  p.Message,
			Data:  map[string]string{"type": "prayer", "id": strconv.Itoa(p.ID)},
		}
		if p.IsPrivate {
			payload.Body = "A private prayer request was submitted."
		}
		if p.IsUrgent {
			payload.Priority = "high"
		}
		if err := n.Push.Broadcast(ctx, payload); err != nil {
			log.Error().Err(err).Int("prayer_id", p.ID).Msg("prayer request push failed")
		}
	}
}

// bounded detaches from the request's cancellation but caps the total time
// spent on outbound calls.
func (n *NotificationService) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := n.Timeout
	if timeout == 0 {
		timeout = notifyTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
