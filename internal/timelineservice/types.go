package timelineservice

import (
	"bytes"
	"context"
	"sync"

	"github.com/go-mail/mail/v2"

	"github.com/openclassware/blogd/internal/common"
)

// Event is the notification payload published on every submit, publish and
// comment action and consumed by the timeline feed.
type Event struct {
	BlogID    string `json:"blogId"`
	PostID    string `json:"postId"`
	BlogTitle string `json:"blogTitle"`
	PostTitle string `json:"postTitle"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	DeepLink  string `json:"deepLink"`
}

type TimelineService struct {
	mb        common.MessageConsumer
	m         Mailer
	recipient string
	logger    TimelineLogger
	ctx       context.Context
	cancel    context.CancelFunc
}

type TimelineLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}
