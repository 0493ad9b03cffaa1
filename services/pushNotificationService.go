package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/rs/zerolog/log"
)

type NotificationPayload struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// PushNotificationService sends FCM notifications to every device an
// administrator registered.
type PushNotificationService struct {
	fcm    multicastSender
	tokens *store.Collection[models.PushToken, *models.PushToken]
}

func NewPushNotificationService(ctx context.Context, app *firebase.App, tokens *store.Collection[models.PushToken, *models.PushToken]) (*PushNotificationService, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging client: %w", err)
	}
	return &PushNotificationService{fcm: client, tokens: tokens}, nil
}

func (s *PushNotificationService) IsReady() bool {
	return s != nil && s.fcm != nil
}

// Broadcast sends payload to all registered devices and forgets tokens FCM
// reports as unregistered.
func (s *PushNotificationService) Broadcast(ctx context.Context, payload NotificationPayload) error {
	if !s.IsReady() {
		return fmt.Errorf("FCM client not initialized")
	}

	registered := s.tokens.List(ctx, nil)
	if len(registered) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(registered))
	for _, t := range registered {
		tokens = append(tokens, t.Token)
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "normal",
		},
	}
	if payload.Priority == "high" {
		message.Android.Priority = "high"
		message.APNS = &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
		}
	}

	response, err := s.fcm.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM multicast: %w", err)
	}

	var stale []string
	for i, r := range response.Responses {
		if r.Success {
			continue
		}
		log.Warn().Err(r.Error).Str("platform", registered[i].Platform).Msg("push delivery failed")
		if messaging.IsUnregistered(r.Error) {
			stale = append(stale, tokens[i])
		}
	}
	if len(stale) > 0 {
		s.forget(ctx, stale)
	}

	log.Info().Int("success", response.SuccessCount).Int("failure", response.FailureCount).Msg("push notification sent")
	return nil
}

func (s *PushNotificationService) forget(ctx context.Context, stale []string) {
	drop := make(map[string]bool, len(stale))
	for _, token := range stale {
		drop[token] = true
	}
	err := s.tokens.Mutate(ctx, func(doc *store.Document[models.PushToken]) error {
		kept := doc.Items[:0]
		for _, t := range doc.Items {
			if !drop[t.Token] {
				kept = append(kept, t)
			}
		}
		doc.Items = kept
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to remove unregistered push tokens")
	}
}
