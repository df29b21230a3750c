package timelineservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openclassware/blogd/internal/common"
)

func TestNotifierPublishesPerKey(t *testing.T) {
	producer := new(MockMessageProducer)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	n := NewNotifier(producer, logger)

	ctx := context.Background()
	event := Event{BlogID: "b1", PostID: "p1", Username: "alice", DeepLink: "/blog#/view/b1/p1"}

	n.NotifyPostSubmitted(ctx, event)
	n.NotifyPostPublished(ctx, event)
	n.NotifyCommentCreated(ctx, event)

	published := producer.Published()
	assert.Len(t, published, 3)
	assert.Equal(t, common.PostSubmittedKey, published[0].key)
	assert.Equal(t, common.PostPublishedKey, published[1].key)
	assert.Equal(t, common.CommentCreatedKey, published[2].key)

	var decoded Event
	assert.NoError(t, json.Unmarshal(published[0].body, &decoded))
	assert.Equal(t, event, decoded)
}
