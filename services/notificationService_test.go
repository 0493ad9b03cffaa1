package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/ChurchSite/models"
	"github.com/ChurchSite/store"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmails struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeEmails) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

type fakeFCM struct {
	messages  []*messaging.MulticastMessage
	responses []*messaging.SendResponse
}

func (f *fakeFCM) SendEachForMulticast(_ context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.messages = append(f.messages, message)
	responses := f.responses
	if responses == nil {
		for range message.Tokens {
			responses = append(responses, &messaging.SendResponse{Success: true})
		}
	}
	success := 0
	for _, r := range responses {
		if r.Success {
			success++
		}
	}
	return &messaging.BatchResponse{
		SuccessCount: success,
		FailureCount: len(responses) - success,
		Responses:    responses,
	}, nil
}

func newPushTokens(t *testing.T, tokens ...string) *store.Collection[models.PushToken, *models.PushToken] {
	t.Helper()
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	collection := store.NewCollection[models.PushToken](backend, "push_tokens", nil)
	for _, token := range tokens {
		_, err := collection.Create(context.Background(), models.PushToken{Token: token, Platform: "android", CreatedAt: time.Now()})
		require.NoError(t, err)
	}
	return collection
}

func TestMessageReceivedSendsEmailAndPush(t *testing.T) {
	emails := &fakeEmails{}
	fcm := &fakeFCM{}
	notifier := &NotificationService{
		Email: &EmailService{emails: emails, from: "site@church.org", to: "office@church.org"},
		Push:  &PushNotificationService{fcm: fcm, tokens: newPushTokens(t, "device-a")},
	}

	phone := "555-0100"
	notifier.MessageReceived(context.Background(), models.Message{
		ID: 7, Name: "Jane", Email: "jane@x.com", Phone: &phone, Subject: "Hi", Message: "<b>Hello</b>",
	})

	require.Len(t, emails.sent, 1)
	sent := emails.sent[0]
	assert.Equal(t, []string{"office@church.org"}, sent.To)
	assert.Equal(t, "jane@x.com", sent.ReplyTo)
	assert.Contains(t, sent.Subject, "Hi")
	assert.Contains(t, sent.Html, "&lt;b&gt;Hello&lt;/b&gt;")
	assert.Contains(t, sent.Text, "Phone: 555-0100")

	require.Len(t, fcm.messages, 1)
	assert.Equal(t, []string{"device-a"}, fcm.messages[0].Tokens)
	assert.Equal(t, "7", fcm.messages[0].Data["id"])
}

func TestUrgentPrivatePrayerPush(t *testing.T) {
	fcm := &fakeFCM{}
	notifier := &NotificationService{
		Push: &PushNotificationService{fcm: fcm, tokens: newPushTokens(t, "device-a", "device-b")},
	}

	notifier.PrayerRequestReceived(context.Background(), models.PrayerRequest{
		ID: 3, Name: "Sam", Message: "please pray", IsUrgent: true, IsPrivate: true,
	})

	require.Len(t, fcm.messages, 1)
	msg := fcm.messages[0]
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "Urgent prayer request from Sam", msg.Notification.Title)
	assert.NotContains(t, msg.Notification.Body, "please pray")
}

func TestNotifierToleratesFailuresAndMissingChannels(t *testing.T) {
	notifier := &NotificationService{
		Email: &EmailService{emails: &fakeEmails{err: errors.New("rate limited")}, to: "office@church.org"},
	}

	assert.NotPanics(t, func() {
		notifier.MessageReceived(context.Background(), models.Message{ID: 1})
		notifier.PrayerRequestReceived(context.Background(), models.PrayerRequest{ID: 1, Name: "A"})
	})

	empty := &NotificationService{}
	assert.NotPanics(t, func() {
		empty.MessageReceived(context.Background(), models.Message{ID: 1})
	})
}

func TestBroadcastForgetsUnregisteredTokens(t *testing.T) {
	tokens := newPushTokens(t, "alive", "gone")
	fcm := &fakeFCM{responses: []*messaging.SendResponse{
		{Success: true},
		{Success: false, Error: errors.New("generic failure")},
	}}
	push := &PushNotificationService{fcm: fcm, tokens: tokens}

	require.NoError(t, push.Broadcast(context.Background(), NotificationPayload{Title: "t", Body: "b"}))

	// a generic failure keeps the token; only unregistered devices are dropped
	assert.Len(t, tokens.List(context.Background(), nil), 2)
}

func TestBroadcastWithoutDevices(t *testing.T) {
	fcm := &fakeFCM{}
	push := &PushNotificationService{fcm: fcm, tokens: newPushTokens(t)}

	require.NoError(t, push.Broadcast(context.Background(), NotificationPayload{Title: "t"}))
	assert.Empty(t, fcm.messages)
}
