package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response *rest.Response
	err      error
	sent     []*mail.SGMailV3
}

func (f *fakeClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	return f.response, f.err
}

func newTestSender(client *fakeClient) *SendGridSender {
	return &SendGridSender{client: client, from: mail.NewEmail("Stores", "no-reply@example.com")}
}

func TestSendRegistrationEmail(t *testing.T) {
	client := &fakeClient{response: &rest.Response{StatusCode: 202}}
	sender := newTestSender(client)

	require.NoError(t, sender.SendRegistrationEmail(context.Background(), "alice@example.com", "alice"))
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	assert.Equal(t, registrationSubject, msg.Subject)
	assert.Equal(t, "no-reply@example.com", msg.From.Address)
	require.Len(t, msg.Personalizations, 1)
	require.Len(t, msg.Personalizations[0].To, 1)
	assert.Equal(t, "alice@example.com", msg.Personalizations[0].To[0].Address)
	require.Len(t, msg.Content, 2)
	assert.Contains(t, msg.Content[0].Value, "alice")
}

func TestSendRegistrationEmail_EscapesHTML(t *testing.T) {
	msg := registrationMessage(mail.NewEmail("", "x@example.com"), "bob@example.com", "<b>bob</b>")

	require.Len(t, msg.Content, 2)
	assert.NotContains(t, msg.Content[1].Value, "<b>bob</b>")
	assert.Contains(t, msg.Content[1].Value, "&lt;b&gt;bob&lt;/b&gt;")
}

func TestSendRegistrationEmail_Failures(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{"transport error", &fakeClient{err: errors.New("dial tcp: timeout")}},
		{"rejected", &fakeClient{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestSender(tt.client).SendRegistrationEmail(context.Background(), "alice@example.com", "alice")
			assert.Error(t, err)
		})
	}
}
