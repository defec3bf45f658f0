// Package notification fans a message out over one or more channels. A
// notification names its channels in Via and implements the matching
// To<Channel> method for each.
//
//	type PickupAccepted struct{ Pickup models.PickupRequest }
//
//	func (n *PickupAccepted) Via() []string { return []string{"mail", "slack"} }
//	func (n *PickupAccepted) ToMail() notification.MailData {
//	    return notification.MailData{Subject: "Pickup accepted", Body: "..."}
//	}
//	func (n *PickupAccepted) ToSlack() notification.SlackData {
//	    return notification.SlackData{Text: "Pickup #7 accepted"}
//	}
//
//	notification.Send(seller.Email, &PickupAccepted{Pickup: p})
package notification

import (
	"fmt"
	"time"

	apphttp "github.com/ecotrackhq/ecotrack/pkg/http"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/mail"
)

// Notification names the channels a message goes out on: "mail", "slack",
// "webhook".
type Notification interface {
	Via() []string
}

// Mailable supplies the mail channel payload.
type Mailable interface {
	ToMail() MailData
}

// Slackable supplies the Slack channel payload.
type Slackable interface {
	ToSlack() SlackData
}

// Webhookable supplies the webhook channel payload.
type Webhookable interface {
	ToWebhook() WebhookData
}

// MailData is an email message. To overrides the notifiable address when set.
type MailData struct {
	To      string
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// SlackData posts to an incoming webhook. WebhookURL overrides the default.
type SlackData struct {
	WebhookURL  string
	Text        string
	Attachments []SlackAttachment
}

// SlackAttachment is one attachment block.
type SlackAttachment struct {
	Color  string `json:"color,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// WebhookData POSTs an arbitrary JSON payload.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

var defaultSlackWebhook string

// SetSlackWebhook configures the default Slack incoming webhook URL.
func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// Send pushes n through every channel it names, collecting per-channel
// failures without aborting the rest.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed", "channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync runs Send in a goroutine and logs any failures.
func SendAsync(address string, n Notification) {
	go func() {
		for _, err := range Send(address, n) {
			logger.Error("notification: async error", "error", err)
		}
	}()
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())
	case "slack":
		s, ok := n.(Slackable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Slackable", n)
		}
		return sendSlack(s.ToSlack())
	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())
	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	body := d.Body
	if body == "" {
		body = d.Text
	}
	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

type slackPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

func sendSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = defaultSlackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: slack webhook URL not configured")
	}

	resp, err := apphttp.Post(url).
		Body(slackPayload{Text: d.Text, Attachments: d.Attachments}).
		Timeout(5 * time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("notification: slack returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	resp, err := apphttp.Post(d.URL).
		Headers(d.Headers).
		Body(d.Payload).
		Timeout(10 * time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("notification: webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
