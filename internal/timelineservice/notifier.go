package timelineservice

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/openclassware/blogd/internal/common"
)

// Notifier publishes timeline events. Publishing is best-effort: a broker
// failure is logged and swallowed so a notification can never fail the
// editorial action that triggered it.
type Notifier struct {
	mb     common.MessageProducer
	logger *slog.Logger
}

func NewNotifier(mb common.MessageProducer, logger *slog.Logger) *Notifier {
	return &Notifier{mb: mb, logger: logger}
}

func (n *Notifier) NotifyPostPublished(ctx context.Context, e Event) {
	n.publish(ctx, common.PostPublishedKey, e)
}

func (n *Notifier) NotifyPostSubmitted(ctx context.Context, e Event) {
	n.publish(ctx, common.PostSubmittedKey, e)
}

func (n *Notifier) NotifyCommentCreated(ctx context.Context, e Event) {
	n.publish(ctx, common.CommentCreatedKey, e)
}

func (n *Notifier) publish(ctx context.Context, key common.BindingKey, e Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		n.logger.Error("could not marshal timeline event", slog.String("error", err.Error()))
		return
	}

	if err := n.mb.Publish(ctx, msg, key, common.BlogExchange); err != nil {
		n.logger.Error("could not publish timeline event", slog.String("key", string(key)), slog.String("error", err.Error()))
	}
}
