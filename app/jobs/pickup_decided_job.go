// Package jobs holds the queued background work dispatched by the
// application services' event listeners.
package jobs

import (
	"fmt"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/pkg/event"
	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/notification"
	"github.com/ecotrackhq/ecotrack/pkg/queue"
)

// PickupDecidedJob notifies a seller that an admin decided on their
// pickup request. It runs on the queue so the decision endpoint never
// waits on SMTP.
type PickupDecidedJob struct {
	PickupID uint    `json:"pickup_id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Material string  `json:"material"`
	Quantity float64 `json:"quantity"`
	Status   string  `json:"status"`
	Reason   string  `json:"reason,omitempty"`
	Schedule string  `json:"schedule,omitempty"`
	Driver   string  `json:"driver,omitempty"`
}

// Handle sends the decision notification.
func (j PickupDecidedJob) Handle() error {
	errs := notification.Send(j.Email, pickupDecisionNotification{job: j})
	if len(errs) > 0 {
		return fmt.Errorf("notify pickup %d: %v", j.PickupID, errs[0])
	}
	return nil
}

type pickupDecisionNotification struct {
	job PickupDecidedJob
}

func (n pickupDecisionNotification) Via() []string { return []string{"mail"} }

func (n pickupDecisionNotification) ToMail() notification.MailData {
	j := n.job

	subject := fmt.Sprintf("Your pickup request #%d was %s", j.PickupID, j.Status)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your pickup request for %.2f %s has been <b>%s</b>.</p>",
		j.Name, j.Quantity, j.Material, j.Status,
	)
	if j.Status == models.PickupRejected && j.Reason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", j.Reason)
	}
	if j.Status == models.PickupAccepted && j.Schedule != "" {
		body += fmt.Sprintf("<p>Collection is scheduled for %s", j.Schedule)
		if j.Driver != "" {
			body += fmt.Sprintf("; your driver is %s", j.Driver)
		}
		body += ".</p>"
	}

	return notification.MailData{Subject: subject, Body: body}
}

// Register wires the job type into the queue and subscribes it to the
// pickup decision events. Call once at boot.
func Register() {
	queue.Register(fmt.Sprintf("%T", PickupDecidedJob{}), func() queue.Job {
		return &PickupDecidedJob{}
	})

	dispatch := func(status string) event.Handler {
		return func(payload interface{}) {
			pickup, ok := payload.(models.PickupRequest)
			if !ok || pickup.User.Email == "" {
				return
			}
			job := PickupDecidedJob{
				PickupID: pickup.ID,
				Email:    pickup.User.Email,
				Name:     pickup.User.FirstName,
				Material: pickup.Material.Name,
				Quantity: pickup.Quantity,
				Status:   status,
				Reason:   pickup.RejectionReason,
				Schedule: pickup.ScheduledTime,
				Driver:   pickup.DriverName,
			}
			if err := queue.Dispatch(job); err != nil {
				logger.Error("jobs: dispatch pickup decision", "pickup_id", pickup.ID, "error", err)
			}
		}
	}

	event.Listen(event.PickupAccepted, dispatch(models.PickupAccepted))
	event.Listen(event.PickupRejected, dispatch(models.PickupRejected))
	event.Listen(event.PickupCompleted, dispatch(models.PickupCompleted))
}
