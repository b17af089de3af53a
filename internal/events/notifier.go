package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

const jobPostedSubject = "New job posted"

// FormatJobPostedMessage builds the email body sent to the operator list
func FormatJobPostedMessage(data JobPostedData) string {
	return fmt.Sprintf("%s is hiring for %s. They have %d vacancies. Apply before duedate of %s",
		data.CompanyName, data.Title, data.Openings, data.DueDate)
}

// JobPostedNotifier consumes job.posted events and mails the recipients.
// Delivery failures are logged and the message is acked.
type JobPostedNotifier struct {
	subscriber  message.Subscriber
	mailer      Mailer
	recipients  []string
	topicPrefix string
	logger      *slog.Logger
}

func NewJobPostedNotifier(subscriber message.Subscriber, mailer Mailer, recipients []string, topicPrefix string, logger *slog.Logger) *JobPostedNotifier {
	return &JobPostedNotifier{
		subscriber:  subscriber,
		mailer:      mailer,
		recipients:  recipients,
		topicPrefix: topicPrefix,
		logger:      logger,
	}
}

// Run blocks until ctx is done or the subscription closes
func (n *JobPostedNotifier) Run(ctx context.Context) error {
	messages, err := n.subscriber.Subscribe(ctx, Topic(n.topicPrefix, EventJobPosted))
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", EventJobPosted, err)
	}

	n.logger.Info("Job notifier started", "recipients", len(n.recipients))
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			n.handle(ctx, msg)
			msg.Ack()
		}
	}
}

func (n *JobPostedNotifier) handle(ctx context.Context, msg *message.Message) {
	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		n.logger.Error("Dropping malformed event", "message_id", msg.UUID, "error", err)
		return
	}

	var data JobPostedData
	if err := event.Decode(&data); err != nil {
		n.logger.Error("Dropping malformed event", "event_id", event.ID, "error", err)
		return
	}

	if err := n.mailer.Send(ctx, n.recipients, jobPostedSubject, FormatJobPostedMessage(data)); err != nil {
		n.logger.Error("Failed to send job notification", "job_id", data.JobID, "error", err)
		return
	}
	n.logger.Info("Job notification sent", "job_id", data.JobID, "recipients", len(n.recipients))
}
