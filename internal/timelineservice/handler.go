package timelineservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/openclassware/blogd/internal/common"
)

var templateForKey = map[string]string{
	string(common.PostPublishedKey):  "post_published.html",
	string(common.PostSubmittedKey):  "post_submitted.html",
	string(common.CommentCreatedKey): "comment_created.html",
}

func NewTimelineService(mb common.MessageConsumer, host, username, password, sender, recipient string, port int, logger *slog.Logger) *TimelineService {
	ctx, cancel := context.WithCancel(context.Background())
	return &TimelineService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		recipient: recipient,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SendEditorialDigest consumes the timeline queue and mails each event to the
// editorial inbox. The template is picked by routing key.
func (s *TimelineService) SendEditorialDigest() {
	msgs, err := s.mb.Consume(common.PostPublishedKey, common.BlogExchange, common.TimelineQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				templateFile, ok := templateForKey[msg.RoutingKey]
				if !ok {
					s.logger.Error("unknown routing key", slog.String("key", msg.RoutingKey))
					msg.Ack(false)
					continue
				}

				var event Event
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				// exponential backoff with jitter
				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.recipient, event, templateFile)
					if err == nil {
						s.logger.Info("timeline email sent", slog.String("key", msg.RoutingKey), slog.String("blogId", event.BlogID))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying timeline email", slog.String("key", msg.RoutingKey), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send timeline email", slog.String("key", msg.RoutingKey), slog.String("blogId", event.BlogID))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendEditorialDigest due to context cancellation")
				return
			}
		}
	}()
}

func (s *TimelineService) Close() {
	s.cancel()
}
